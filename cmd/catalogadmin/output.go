package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/abgdnv/gocommerce-admin/internal/product"
)

func (c *cli) printProducts(w io.Writer, list []product.Product) error {
	if c.jsonOut {
		return writeJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tSELLING\tSTOCK\tCATEGORY")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
			p.ID, p.Title, p.Price, p.SellingPrice, stockLabel(p.IsAvailable), p.Category.Name)
	}
	return tw.Flush()
}

func (c *cli) printProduct(w io.Writer, p *product.Product) error {
	if c.jsonOut {
		return writeJSON(w, p)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	fmt.Fprintf(tw, "Price:\t%.2f\n", p.Price)
	fmt.Fprintf(tw, "Selling price:\t%.2f\n", p.SellingPrice)
	fmt.Fprintf(tw, "Stock:\t%s\n", stockLabel(p.IsAvailable))
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	for i, img := range p.Images {
		fmt.Fprintf(tw, "Image %d:\t%s\n", i+1, img.Path)
	}
	fmt.Fprintf(tw, "Revision:\t%d\n", p.Version)
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
