package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dinebridge/dinebridge/internal/client/models"
)

// formatCents renders a minor-unit amount as "12.50".
func formatCents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Orders lists orders, optionally filtered by status ("orders preparing").
func (a *App) Orders(ctx context.Context, args []string) error {
	a.setView("orders")

	var status models.OrderStatus
	if len(args) > 0 {
		status = models.OrderStatus(args[0])
	}

	orders, err := a.orders.List(ctx, status)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders.")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "%s  table=%s  %-9s  %8s  %s\n",
			o.ID, o.TableID, o.Status, formatCents(o.Total()), o.CreatedAt.Local().Format("15:04"))
	}
	return nil
}

// ShowOrder prints one order in full, items included.
func (a *App) ShowOrder(ctx context.Context, args []string) error {
	a.setView("orders")

	o, err := a.orders.Get(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Could not load order %s: %v\n", args[0], err)
		return err
	}

	fmt.Fprintf(a.out, "Order %s  table=%s  status=%s\n", o.ID, o.TableID, o.Status)
	for _, item := range o.Items {
		fmt.Fprintf(a.out, "  %dx %-24s %8s", item.Quantity, item.Name, formatCents(item.UnitPrice*int64(item.Quantity)))
		if item.Note != "" {
			fmt.Fprintf(a.out, "  (%s)", item.Note)
		}
		fmt.Fprintln(a.out)
	}
	fmt.Fprintf(a.out, "Total: %s\n", formatCents(o.Total()))
	return nil
}

// AdvanceOrder moves an order to a new status ("mark o-17 ready").
func (a *App) AdvanceOrder(ctx context.Context, args []string) error {
	a.setView("orders")

	o, err := a.orders.UpdateStatus(ctx, args[0], models.OrderStatus(args[1]))
	if err != nil {
		fmt.Fprintf(a.out, "Could not update order %s: %v\n", args[0], err)
		return err
	}
	fmt.Fprintf(a.out, "Order %s is now %s\n", o.ID, o.Status)
	return nil
}

// AddOrder creates a new order interactively: it asks for the table and then
// one "<menu item id> [quantity]" line per item.
func (a *App) AddOrder(ctx context.Context) error {
	a.setView("orders")

	tableID, err := getSimpleText(a.reader, "Table id", a.out)
	if err != nil {
		return err
	}

	lines, err := GetLines(a.reader, "Items, one per line: <menu item id> [quantity]", a.out)
	if err != nil {
		return err
	}

	items, err := parseOrderItems(lines)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid item line: %v\n", err)
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items entered, order not created.")
		return nil
	}

	o, err := a.orders.Create(ctx, tableID, items)
	if err != nil {
		fmt.Fprintf(a.out, "Could not create order: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Created order %s for table %s, total %s\n", o.ID, o.TableID, formatCents(o.Total()))
	return nil
}

func parseOrderItems(lines []string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("%q: expected <menu item id> [quantity]", line)
		}
		qty := 1
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%q: quantity must be a positive number", line)
			}
			qty = n
		}
		items = append(items, models.OrderItem{MenuItemID: fields[0], Quantity: qty})
	}
	return items, nil
}
