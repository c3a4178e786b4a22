package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
	todoArgs []string
	err      error
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubExec) isLoggedIn() bool               { return s.loggedIn }
func (s *stubExec) Register(context.Context) error { return s.record("register") }
func (s *stubExec) Login(context.Context) error    { return s.record("login") }
func (s *stubExec) Logout(context.Context) error   { return s.record("logout") }
func (s *stubExec) Me(context.Context) error       { return s.record("me") }
func (s *stubExec) Profile(context.Context) error  { return s.record("profile") }

func (s *stubExec) Mood(_ context.Context, _ []string) error      { return s.record("mood") }
func (s *stubExec) Music(_ context.Context, _ []string) error     { return s.record("music") }
func (s *stubExec) Chat(_ context.Context, _ []string) error      { return s.record("chat") }
func (s *stubExec) Reminders(_ context.Context, _ []string) error { return s.record("reminders") }

func (s *stubExec) Todo(_ context.Context, args []string) error {
	s.todoArgs = args
	return s.record("todo")
}

func runScript(t *testing.T, a *stubExec, script string) []string {
	t.Helper()
	var output []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = strings.TrimSpace(anyToString(arg))
		}
		output = append(output, strings.Join(parts, " "))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "test" }, scanner)
	return output
}

func anyToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestREPL_DispatchesCommands(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "register\nlogin\nme\ntodo add milk\nexit\n")

	assert.Equal(t, []string{"register", "login", "me", "todo"}, a.calls)
	assert.Equal(t, []string{"add", "milk"}, a.todoArgs)
}

func TestREPL_ExitStopsLoop(t *testing.T) {
	a := &stubExec{}
	output := runScript(t, a, "exit\nlogin\n")

	assert.Empty(t, a.calls)
	assert.Contains(t, output, "Bye!")
}

func TestREPL_UnknownCommand(t *testing.T) {
	a := &stubExec{}
	output := runScript(t, a, "frobnicate\nquit\n")

	assert.Contains(t, output, "Unknown command: frobnicate")
}

func TestREPL_HelpDependsOnLogin(t *testing.T) {
	out := runScript(t, &stubExec{loggedIn: false}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "register, login, exit")

	out = runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, "\n"), "todo, mood, music, chat")
}

func TestREPL_ReportsErrors(t *testing.T) {
	a := &stubExec{err: errors.New("Invalid email or password")}
	output := runScript(t, a, "login\nexit\n")

	assert.Contains(t, output, "Error: Invalid email or password")
}

func TestREPL_EOFStopsLoop(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "me\n")
	assert.Equal(t, []string{"me"}, a.calls)
}
