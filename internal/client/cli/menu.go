package cli

import (
	"context"
	"fmt"
	"sort"
)

// Menu browses the menu. Without arguments it prints every category with its
// items; with a category id it prints only that category's items.
func (a *App) Menu(ctx context.Context, args []string) error {
	a.setView("menu")

	if len(args) > 0 {
		return a.printMenuItems(ctx, args[0])
	}

	categories, err := a.menu.Categories(ctx)
	if err != nil {
		return err
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Position < categories[j].Position })

	for _, c := range categories {
		fmt.Fprintf(a.out, "%s (%s)\n", c.Name, c.ID)
		if err := a.printMenuItems(ctx, c.ID); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) printMenuItems(ctx context.Context, categoryID string) error {
	items, err := a.menu.Items(ctx, categoryID)
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Fprintf(a.out, "  %s  %-28s %8s", item.ID, item.Name, formatCents(item.Price))
		if !item.Available {
			fmt.Fprint(a.out, "  (unavailable)")
		}
		fmt.Fprintln(a.out)
	}
	return nil
}
