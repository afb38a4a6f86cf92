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
	consumeSessionLoss() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	WhoAmI(ctx context.Context) error
	EditProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	ListAlerts(ctx context.Context) error
	AddAlert(ctx context.Context) error
	DeleteAlert(ctx context.Context, args []string) error
	ListEmployees(ctx context.Context) error
	AddEmployee(ctx context.Context) error
	Detect(ctx context.Context) error
}

// protected lists the commands that need a session.
var protected = map[string]bool{
	"whoami":        true,
	"profile":       true,
	"passwd":        true,
	"deleteaccount": true,
	"alerts":        true,
	"addalert":      true,
	"delalert":      true,
	"employees":     true,
	"addemployee":   true,
	"detect":        true,
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, profile, passwd, deleteaccount, alerts, addalert, delalert <id>, employees, addemployee, detect, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the prepa CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Before each prompt the REPL checks whether the session was lost since the
// previous command; if so it tells the user and opens the login prompt.
// Protected commands typed without a session open the login prompt instead
// of running.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.consumeSessionLoss() {
			printlnFn("Your session has expired, please log in again.")
			report(a.Login(ctx))
		}

		printlnFn(fmt.Sprintf("prepa %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			report(a.Login(ctx))
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.WhoAmI(ctx))

		case "profile":
			report(a.EditProfile(ctx))

		case "passwd":
			report(a.ChangePassword(ctx))

		case "deleteaccount":
			report(a.DeleteAccount(ctx))

		case "alerts":
			report(a.ListAlerts(ctx))

		case "addalert":
			report(a.AddAlert(ctx))

		case "delalert":
			report(a.DeleteAlert(ctx, args))

		case "employees":
			report(a.ListEmployees(ctx))

		case "addemployee":
			report(a.AddEmployee(ctx))

		case "detect":
			report(a.Detect(ctx))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", describeError(err))
	}
}
