package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/abgdnv/gocommerce-admin/internal/apiclient"
	"github.com/abgdnv/gocommerce-admin/internal/product"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentStockUpdates bounds the fan-out of `products stock`.
const maxConcurrentStockUpdates = 8

func newProductsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List, inspect and edit catalog products",
	}
	cmd.AddCommand(
		newListCmd(c),
		newGetCmd(c),
		newUpdateCmd(c),
		newStockCmd(c),
		newToggleCmd(c),
		newDeleteCmd(c),
	)
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = c.run(func(ctx context.Context) error {
		list, err := c.products.GetAll(ctx)
		if err != nil {
			return explain(err)
		}
		return c.printProducts(cmd.OutOrStdout(), list)
	})
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			p, err := c.products.GetByID(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			return c.printProduct(cc.OutOrStdout(), p)
		})(cc, args)
	}
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var (
		title, description  string
		price, sellingPrice float64
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit product details",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&price, "price", 0, "new list price")
	cmd.Flags().Float64Var(&sellingPrice, "selling-price", 0, "new selling price")

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		var patch product.ProductPatch
		if cc.Flags().Changed("title") {
			patch.Title = &title
		}
		if cc.Flags().Changed("description") {
			patch.Description = &description
		}
		if cc.Flags().Changed("price") {
			patch.Price = &price
		}
		if cc.Flags().Changed("selling-price") {
			patch.SellingPrice = &sellingPrice
		}
		return c.run(func(ctx context.Context) error {
			if patch.IsEmpty() {
				return errors.New("nothing to update: set at least one of --title, --description, --price, --selling-price")
			}
			p, err := c.products.Update(ctx, args[0], patch)
			if err != nil {
				return explain(err)
			}
			if p == nil {
				fmt.Fprintf(cc.OutOrStdout(), "Product %s updated\n", args[0])
				return nil
			}
			return c.printProduct(cc.OutOrStdout(), p)
		})(cc, args)
	}
	return cmd
}

func newStockCmd(c *cli) *cobra.Command {
	var available bool
	cmd := &cobra.Command{
		Use:   "stock ID...",
		Short: "Set stock availability for one or more products",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().BoolVar(&available, "available", true, "whether the products are in stock")

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			results := make([]*product.Product, len(args))
			var mu sync.Mutex
			var failed []string

			g, gCtx := errgroup.WithContext(ctx)
			g.SetLimit(maxConcurrentStockUpdates)
			for i, id := range args {
				g.Go(func() error {
					p, err := c.products.UpdateStock(gCtx, id, product.StockUpdate{IsAvailable: available})
					if err != nil {
						c.logger.ErrorContext(gCtx, "Stock update failed", "ID", id, "error", err)
						mu.Lock()
						failed = append(failed, id)
						mu.Unlock()
						return nil
					}
					results[i] = p
					return nil
				})
			}
			_ = g.Wait()

			out := cc.OutOrStdout()
			for i, id := range args {
				if results[i] != nil {
					fmt.Fprintf(out, "%s\t%s\n", id, stockLabel(results[i].IsAvailable))
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("stock update failed for %d of %d products: %v", len(failed), len(args), failed)
			}
			return nil
		})(cc, args)
	}
	return cmd
}

func newToggleCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip stock availability of a product",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			current, err := c.products.GetByID(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			p, err := c.products.UpdateStock(ctx, args[0], product.StockUpdate{IsAvailable: !current.IsAvailable})
			if err != nil {
				return explain(err)
			}
			if p == nil {
				fmt.Fprintf(cc.OutOrStdout(), "%s\t%s\n", args[0], stockLabel(!current.IsAvailable))
				return nil
			}
			fmt.Fprintf(cc.OutOrStdout(), "%s\t%s\n", args[0], stockLabel(p.IsAvailable))
			return nil
		})(cc, args)
	}
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")

	cmd.RunE = func(cc *cobra.Command, args []string) error {
		return c.run(func(ctx context.Context) error {
			if !yes {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}
			if err := c.products.DeleteByID(ctx, args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cc.OutOrStdout(), "Product %s deleted\n", args[0])
			return nil
		})(cc, args)
	}
	return cmd
}

// explain adds a hint for statuses an admin can act on. The original error stays wrapped.
func explain(err error) error {
	code, ok := apiclient.StatusCode(err)
	if !ok {
		return err
	}
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (run `catalogadmin login` or `catalogadmin token set`)", err)
	case http.StatusNotFound:
		return fmt.Errorf("%w (no such product)", err)
	}
	return err
}

func stockLabel(available bool) string {
	if available {
		return "in stock"
	}
	return "out of stock"
}
