package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocommerce-admin/internal/apiclient"
	"github.com/abgdnv/gocommerce-admin/internal/config"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/abgdnv/gocommerce-admin/internal/tokenstore"
	"github.com/abgdnv/gocommerce-admin/pkg/bootstrap"
	"github.com/spf13/cobra"
)

// cli holds flag values and the collaborators built once per invocation.
type cli struct {
	configFile string
	baseURL    string
	debug      bool
	jsonOut    bool

	cfg      *config.Config
	logger   *slog.Logger
	store    tokenstore.Store
	tokens   tokenstore.Source
	client   *apiclient.Client
	products product.ProductService
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "catalogadmin",
		Short:         "Admin panel for the product catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "path to the YAML config file")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "override the catalog API base URL")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "enable debug logging and HTTP dumps")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of a table")

	root.AddCommand(newProductsCmd(c))
	root.AddCommand(newLoginCmd(c))
	root.AddCommand(newTokenCmd(c))
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.baseURL != "" {
		cfg.API.BaseURL = c.baseURL
		if err := cfg.API.Validate(); err != nil {
			return err
		}
	}
	if c.debug {
		cfg.Log.Level = "debug"
		cfg.API.Debug = true
	}
	c.cfg = cfg
	c.logger = bootstrap.NewLogger(cfg.Log.Level, cmd.ErrOrStderr())
	c.logger.Debug("Configuration loaded", "config", cfg.String())

	store, err := tokenstore.Open(cmd.Context(), cfg.TokenStore)
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}
	c.store = store
	c.tokens = tokenstore.Source{Store: store, Key: cfg.TokenStore.Key}

	client, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithHTTPTimeout(cfg.API.Timeout),
		apiclient.WithTokenSource(c.tokens),
		apiclient.WithLogger(c.logger),
		apiclient.WithDebugLogging(cfg.API.Debug),
		apiclient.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		_ = store.Close()
		return err
	}
	c.client = client
	c.products = product.NewService(client)
	return nil
}

// run executes fn with the loading watcher attached and releases the token store afterwards.
func (c *cli) run(fn func(ctx context.Context) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		defer func() {
			if err := c.store.Close(); err != nil {
				c.logger.Warn("Failed to close token store", "error", err)
			}
		}()
		stop := c.watchLoading(cmd.Context())
		defer stop()
		return fn(cmd.Context())
	}
}

// watchLoading logs every change of the client's loading state at DEBUG until stop is called.
func (c *cli) watchLoading(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		last := false
		for {
			select {
			case <-ctx.Done():
				if last {
					c.logger.Debug("Loading state changed", "loading", c.client.IsLoading())
				}
				return
			case <-ticker.C:
				if now := c.client.IsLoading(); now != last {
					c.logger.Debug("Loading state changed", "loading", now, "in_flight", c.client.Tracker().InFlight())
					last = now
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
