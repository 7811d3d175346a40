package cli

import (
	"context"
	"fmt"

	"github.com/dinebridge/dinebridge/internal/client/models"
)

// Tables prints the floor plan.
func (a *App) Tables(ctx context.Context) error {
	a.setView("tables")

	tables, err := a.tables.List(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Fprintln(a.out, "No tables configured.")
		return nil
	}
	for _, t := range tables {
		fmt.Fprintf(a.out, "%s  #%-3d %d seats  %-9s", t.ID, t.Number, t.Seats, t.Status)
		if t.WaiterID != "" {
			fmt.Fprintf(a.out, "  waiter=%s", t.WaiterID)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// SeatTable changes a table's status ("table t-4 occupied").
func (a *App) SeatTable(ctx context.Context, args []string) error {
	a.setView("tables")

	t, err := a.tables.SetStatus(ctx, args[0], models.TableStatus(args[1]))
	if err != nil {
		fmt.Fprintf(a.out, "Could not update table %s: %v\n", args[0], err)
		return err
	}
	fmt.Fprintf(a.out, "Table #%d is now %s\n", t.Number, t.Status)
	return nil
}
