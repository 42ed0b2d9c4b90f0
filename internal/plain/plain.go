// Package plain prints the gig list as a table for non-interactive use
package plain

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"gigboard/internal/catalog"
	"gigboard/internal/domain"
	"gigboard/internal/ui/views"
)

// Options controls which gigs are printed and how
type Options struct {
	Search      string
	Limit       int
	Currency    string
	ShowRatings bool
}

// Table renders gigs as a bordered table. Gigs not matching opts.Search are
// left out and at most opts.Limit rows are printed.
func Table(gigs []domain.Gig, opts Options) (string, error) {
	if opts.Search != "" {
		gigs = catalog.Filter(gigs, opts.Search)
	}
	if len(gigs) == 0 {
		return pterm.Yellow("No gigs found") + "\n", nil
	}
	total := len(gigs)
	if opts.Limit > 0 && len(gigs) > opts.Limit {
		gigs = gigs[:opts.Limit]
	}

	header := []string{"#", "Title", "Category", "Seller", "Price", "Delivery"}
	if opts.ShowRatings {
		header = append(header, "Rating")
	}
	data := pterm.TableData{header}
	for _, g := range gigs {
		row := []string{
			fmt.Sprint(g.ID),
			views.Truncate(g.Title, 40),
			g.Category,
			g.SellerName,
			pterm.Green(views.Money(g.Price, opts.Currency)),
			views.Delivery(g.DeliveryTime),
		}
		if opts.ShowRatings {
			row = append(row, views.Rating(g))
		}
		data = append(data, row)
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	out += "\n"
	if len(gigs) < total {
		out += pterm.Gray(fmt.Sprintf("Showing %d of %d gigs", len(gigs), total)) + "\n"
	}
	return out, nil
}

// Print writes the table to w
func Print(w io.Writer, gigs []domain.Gig, opts Options) error {
	out, err := Table(gigs, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
