package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn    bool
	sessionLost bool
	loginErr    error

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) consumeSessionLoss() bool {
	lost := f.sessionLost
	f.sessionLost = false
	return lost
}
func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error         { return f.record("whoami") }
func (f *fakeExec) EditProfile(context.Context) error    { return f.record("profile") }
func (f *fakeExec) ChangePassword(context.Context) error { return f.record("passwd") }
func (f *fakeExec) DeleteAccount(context.Context) error  { return f.record("deleteaccount") }
func (f *fakeExec) ListAlerts(context.Context) error     { return f.record("alerts") }
func (f *fakeExec) AddAlert(context.Context) error       { return f.record("addalert") }
func (f *fakeExec) DeleteAlert(_ context.Context, args []string) error {
	f.args = args
	return f.record("delalert")
}
func (f *fakeExec) ListEmployees(context.Context) error { return f.record("employees") }
func (f *fakeExec) AddEmployee(context.Context) error   { return f.record("addemployee") }
func (f *fakeExec) Detect(context.Context) error        { return f.record("detect") }

// capturePrintln records REPL output.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func input(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input(
		"help",
		"login",
		"help",
		"whoami",
		"alerts",
		"delalert 7",
		"employees",
		"addemployee",
		"addalert",
		"profile",
		"passwd",
		"detect",
		"foobar",
		"logout",
		"exit",
		"alerts",
	))

	assert.Equal(t, []string{
		"login", "whoami", "alerts", "delalert", "employees", "addemployee",
		"addalert", "profile", "passwd", "detect", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"7"}, exec.args)

	assert.Contains(t, *out, helpLoggedOut)
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "prepa status> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_ProtectedCommandRequiresLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input("alerts", "alerts", "quit"))

	// The first "alerts" opens the login prompt instead of running.
	assert.Equal(t, []string{"login", "alerts"}, exec.calls)
	assert.Contains(t, *out, "Please log in first.")
}

func TestRunREPL_SessionLossOpensLogin(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loggedIn: true, sessionLost: true}
	runREPL(context.Background(), exec, func() string { return "" }, input("whoami", "exit"))

	assert.Equal(t, []string{"login", "whoami"}, exec.calls)
	assert.Contains(t, *out, "Your session has expired, please log in again.")
}

func TestRunREPL_ErrorsAreReported(t *testing.T) {
	out := capturePrintln(t)

	exec := &fakeExec{loginErr: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, input("login", "register", "exit"))

	assert.Equal(t, []string{"login", "register"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_EOFStops(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("\n\nregister")))

	assert.Equal(t, []string{"register"}, exec.calls)
}
