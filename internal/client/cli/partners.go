package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/odooclock/internal/client/models"
	"github.com/dmitrijs2005/odooclock/internal/client/services"
)

func printPartners(partners []models.Partner) {
	if len(partners) == 0 {
		printlnFn("No partners found.")
		return
	}
	for _, p := range partners {
		kind := "person"
		if p.IsCompany {
			kind = "company"
		}
		email := string(p.Email)
		if email == "" {
			email = "-"
		}
		printlnFn(fmt.Sprintf("%6d  %-8s  %-30s  %s", p.ID, kind, p.Name, email))
	}
}

// Partners lists partner records.
func (a *App) Partners(ctx context.Context) error {
	partners, err := a.partners.List(ctx, services.PartnerListOptions{})
	if err != nil {
		printlnFn("Partners failed:", err.Error())
		return err
	}
	printPartners(partners)
	return nil
}

// Find searches partners by name, case-insensitively.
func (a *App) Find(ctx context.Context, term string) error {
	partners, err := a.partners.SearchByName(ctx, term, 0)
	if err != nil {
		printlnFn("Find failed:", err.Error())
		return err
	}
	printPartners(partners)
	return nil
}
