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
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Reconnect(ctx context.Context) error {
	f.calls = append(f.calls, "reconnect")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Punch(ctx context.Context) error {
	f.calls = append(f.calls, "punch")
	return nil
}
func (f *fakeExec) History(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "history")
	if len(args) > 0 {
		f.arg = args[0]
	}
	return nil
}
func (f *fakeExec) Partners(ctx context.Context) error {
	f.calls = append(f.calls, "partners")
	return nil
}
func (f *fakeExec) Find(ctx context.Context, term string) error {
	f.calls = append(f.calls, "find")
	f.arg = term
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"status",
		"p",
		"history 5",
		"partners",
		"find acme corp",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "status", "punch", "history", "partners", "find"}
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

	// the multi-word find term is joined back together
	if exec.arg != "acme corp" {
		t.Fatalf("find term: got %q", exec.arg)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("find\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
