package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
)

func (a *App) table(fn func(w io.Writer)) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fn(tw)
	_ = tw.Flush()
}

func price(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f MZN", v)
}

func (a *App) Provinces(ctx context.Context) error {
	ps, err := a.catalogService.Provinces(ctx)
	if err != nil {
		return err
	}
	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME")
		for _, p := range ps {
			fmt.Fprintf(w, "%s\t%s\n", p.ID, p.Name)
		}
	})
	return nil
}

// provinceNames is best effort: listings still print without names.
func (a *App) provinceNames(ctx context.Context) map[string]string {
	ps, err := a.catalogService.Provinces(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not load provinces", "error", err)
		return nil
	}
	return models.ProvinceNames(ps)
}

func (a *App) Hosts(ctx context.Context) error {
	hs, err := a.catalogService.Hosts(ctx)
	if err != nil {
		return err
	}
	names := a.provinceNames(ctx)
	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPROVINCE")
		for _, h := range hs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", h.ID, h.Name, names[h.ProvinceID])
		}
	})
	return nil
}

func (a *App) Host(ctx context.Context, id string) error {
	d, err := a.catalogService.HostDetails(ctx, id)
	if err != nil {
		return err
	}
	h := d.Host
	fmt.Fprintf(a.out, "%s (%s)\n", h.Name, d.Provinces[h.ProvinceID])
	if h.Description != "" {
		fmt.Fprintln(a.out, h.Description)
	}
	if h.Phone != "" || h.Email != "" {
		fmt.Fprintf(a.out, "Contact: %s %s\n", h.Phone, h.Email)
	}
	if len(d.Bnbs) == 0 {
		fmt.Fprintln(a.out, "No stays listed.")
		return nil
	}
	a.printBnbs(d.Bnbs, d.Provinces)
	return nil
}

func (a *App) Tours(ctx context.Context) error {
	ts, err := a.catalogService.Tours(ctx)
	if err != nil {
		return err
	}
	names := a.provinceNames(ctx)
	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tTITLE\tPROVINCE\tDURATION\tPRICE")
		for _, t := range ts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, names[t.ProvinceID], t.Duration, price(t.Price))
		}
	})
	return nil
}

func (a *App) Tour(ctx context.Context, id string) error {
	d, err := a.catalogService.TourDetails(ctx, id)
	if err != nil {
		return err
	}
	t := d.Tour
	fmt.Fprintf(a.out, "%s (%s)\n", t.Title, d.Provinces[t.ProvinceID])
	if t.Description != "" {
		fmt.Fprintln(a.out, t.Description)
	}
	fmt.Fprintf(a.out, "Duration: %s\nPrice: %s\n", t.Duration, price(t.Price))
	return nil
}

func (a *App) Bnbs(ctx context.Context) error {
	bs, err := a.catalogService.Bnbs(ctx)
	if err != nil {
		return err
	}
	a.printBnbs(bs, a.provinceNames(ctx))
	return nil
}

func (a *App) Bnb(ctx context.Context, id string) error {
	b, err := a.catalogService.Bnb(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (host %s)\n", b.Name, b.HostID)
	if b.Description != "" {
		fmt.Fprintln(a.out, b.Description)
	}
	fmt.Fprintf(a.out, "Rooms: %d\nPrice: %s per night\n", b.Rooms, price(b.Price))
	return nil
}

func (a *App) printBnbs(bs []*models.Bnb, provinces map[string]string) {
	a.table(func(w io.Writer) {
		fmt.Fprintln(w, "ID\tNAME\tPROVINCE\tROOMS\tPRICE")
		for _, b := range bs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", b.ID, b.Name, provinces[b.ProvinceID], b.Rooms, price(b.Price))
		}
	})
}
