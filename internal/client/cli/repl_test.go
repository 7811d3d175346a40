package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) record(cmd string, args []string) {
	f.calls = append(f.calls, cmd)
	f.args = append(f.args, args)
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", nil)
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", nil)
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error { f.record("whoami", nil); return nil }
func (f *fakeExec) Tables(ctx context.Context) error { f.record("tables", nil); return nil }
func (f *fakeExec) SeatTable(ctx context.Context, args []string) error {
	f.record("table", args)
	return nil
}
func (f *fakeExec) Orders(ctx context.Context, args []string) error {
	f.record("orders", args)
	return nil
}
func (f *fakeExec) ShowOrder(ctx context.Context, args []string) error {
	f.record("order", args)
	return nil
}
func (f *fakeExec) AdvanceOrder(ctx context.Context, args []string) error {
	f.record("mark", args)
	return nil
}
func (f *fakeExec) AddOrder(ctx context.Context) error { f.record("neworder", nil); return nil }
func (f *fakeExec) Menu(ctx context.Context, args []string) error {
	f.record("menu", args)
	return nil
}
func (f *fakeExec) Watch(ctx context.Context) error { f.record("watch", nil); return nil }

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"tables",
		"orders preparing",
		"order o-17",
		"mark o-17 ready",
		"menu",
		"whoami",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "tables", "orders", "order", "mark", "menu", "whoami"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_ArgsArePassedThrough(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("mark o-17 served\ntable t-4 cleaning\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(input))

	if len(exec.calls) != 2 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if got := strings.Join(exec.args[0], " "); got != "o-17 served" {
		t.Fatalf("mark args: %q", got)
	}
	if got := strings.Join(exec.args[1], " "); got != "t-4 cleaning" {
		t.Fatalf("table args: %q", got)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	muteOutput(t)

	input := strings.NewReader("order\nmark o-1\ntable t-1\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
