package cli

import (
	"context"
	"fmt"

	"github.com/dinebridge/dinebridge/internal/client/models"
)

// Watch follows the live order feed until the user presses Enter.
func (a *App) Watch(ctx context.Context) error {
	a.setView("watch")

	fmt.Fprintln(a.out, "Watching live orders, press Enter to stop.")

	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan *models.OrderEvent, 16)
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = a.stream.Run(wctx, events)
	}()

	go func() {
		for {
			select {
			case ev := <-events:
				a.printEvent(ev)
			case <-wctx.Done():
				return
			}
		}
	}()

	_, _ = a.reader.ReadString('\n')
	cancel()
	<-done
	return nil
}

func (a *App) printEvent(ev *models.OrderEvent) {
	fmt.Fprintf(a.out, "[%s] order=%s", ev.Type, ev.OrderID)
	if ev.TableID != "" {
		fmt.Fprintf(a.out, " table=%s", ev.TableID)
	}
	if ev.Status != "" {
		fmt.Fprintf(a.out, " status=%s", ev.Status)
	}
	if ev.Order != nil {
		fmt.Fprintf(a.out, " total=%s", formatCents(ev.Order.Total()))
	}
	fmt.Fprintln(a.out)
}
