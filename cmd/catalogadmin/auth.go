package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newLoginCmd(c *cli) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the bearer token",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			resp, err := c.client.Do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, nil)
			if err != nil {
				return explain(err)
			}
			var lr loginResponse
			if err := resp.Decode(&lr); err != nil {
				return fmt.Errorf("failed to decode login response: %w", err)
			}
			if lr.Token == "" {
				return errors.New("login response carried no token")
			}
			if err := c.tokens.Save(ctx, lr.Token); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			c.logger.InfoContext(ctx, "Logged in", "username", username, "expires_at", lr.ExpiresAt)
			fmt.Fprintln(cc.OutOrStdout(), "Logged in")
			return nil
		})(cc, args)
	}
	return cmd
}

func newTokenCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored bearer token",
	}

	setCmd := &cobra.Command{
		Use:   "set VALUE",
		Short: "Store a bearer token obtained elsewhere",
		Args:  cobra.ExactArgs(1),
	}
	setCmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			if err := c.tokens.Save(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to store token: %w", err)
			}
			fmt.Fprintln(cc.OutOrStdout(), "Token stored")
			return nil
		})(cc, args)
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token (log out)",
		Args:  cobra.NoArgs,
	}
	clearCmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			if err := c.tokens.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}
			fmt.Fprintln(cc.OutOrStdout(), "Token cleared")
			return nil
		})(cc, args)
	}

	cmd.AddCommand(setCmd, clearCmd)
	return cmd
}
