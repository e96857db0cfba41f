package tokenstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcredis.RedisContainer
	addr      string
}

func (s *RedisStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := tcredis.Run(s.ctx,
		"redis:7.2",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err, "failed to start redis container")
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379/tcp")
	s.Require().NoError(err)
	s.addr = fmt.Sprintf("%s:%s", host, port.Port())
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.container != nil {
		s.NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RedisStoreTestSuite) TestConformance() {
	store, err := NewRedisStore(s.ctx, RedisOptions{Addr: s.addr, Prefix: "conformance:"})
	s.Require().NoError(err)
	defer store.Close()

	exerciseStore(s.T(), store)
}

func (s *RedisStoreTestSuite) TestPrefixIsolation() {
	t := s.T()
	a, err := NewRedisStore(s.ctx, RedisOptions{Addr: s.addr, Prefix: "a:"})
	require.NoError(t, err)
	defer a.Close()
	b, err := NewRedisStore(s.ctx, RedisOptions{Addr: s.addr, Prefix: "b:"})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Set(s.ctx, DefaultKey, "only-in-a"))

	_, err = b.Get(s.ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)

	raw := redis.NewClient(&redis.Options{Addr: s.addr})
	defer raw.Close()
	v, err := raw.Get(s.ctx, "a:"+DefaultKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "only-in-a", v)
}

func (s *RedisStoreTestSuite) TestUnreachable() {
	ctx, cancel := context.WithTimeout(s.ctx, 2*time.Second)
	defer cancel()

	_, err := NewRedisStore(ctx, RedisOptions{Addr: "127.0.0.1:1"})

	s.Error(err)
}

func TestRedisStoreTestSuite(t *testing.T) {
	if os.Getenv("TOKENSTORE_SKIP_CONTAINER_TESTS") != "" {
		t.Skip("TOKENSTORE_SKIP_CONTAINER_TESTS is set")
	}
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	suite.Run(t, new(RedisStoreTestSuite))
}
