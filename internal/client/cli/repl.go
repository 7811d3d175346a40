package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Tables(ctx context.Context) error
	SeatTable(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	ShowOrder(ctx context.Context, args []string) error
	AdvanceOrder(ctx context.Context, args []string) error
	AddOrder(ctx context.Context) error
	Menu(ctx context.Context, args []string) error
	Watch(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the DineBridge terminal.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help               — show available commands
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Logged in:
//	  - help               — show available commands
//	  - tables             — show the floor plan
//	  - table <id> <st>    — change a table's status
//	  - orders [status]    — list orders, newest first
//	  - order <id>         — show one order in full
//	  - mark <id> <st>     — advance an order to a new status
//	  - neworder           — create an order (interactive)
//	  - menu [category]    — browse the menu
//	  - watch              — follow the live order feed
//	  - whoami             — show the signed-in user
//	  - logout             — sign out
//	  - exit | quit        — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("db> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: tables, table, orders, order, mark, neworder, menu, watch, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "tables":
			_ = a.Tables(ctx)

		case "table":
			if len(args) < 2 {
				printlnFn("Usage: table <id> <free|occupied|reserved|cleaning>")
				continue
			}
			_ = a.SeatTable(ctx, args)

		case "orders":
			_ = a.Orders(ctx, args)

		case "order":
			if len(args) == 0 {
				printlnFn("Usage: order <id>")
				continue
			}
			_ = a.ShowOrder(ctx, args)

		case "mark":
			if len(args) < 2 {
				printlnFn("Usage: mark <id> <open|preparing|ready|served|paid|cancelled>")
				continue
			}
			_ = a.AdvanceOrder(ctx, args)

		case "neworder":
			_ = a.AddOrder(ctx)

		case "menu":
			_ = a.Menu(ctx, args)

		case "watch":
			_ = a.Watch(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
