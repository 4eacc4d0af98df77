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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	List(ctx context.Context, query string) error
	Add(ctx context.Context) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, help, exit"
	helpSignedIn  = "Available commands: (l)ist [query], add, done <id>, undo <id>, edit <id>, delete <id>, export, profile, editprofile, logout, help, exit"
)

func helpText(loggedIn bool) string {
	if loggedIn {
		return helpSignedIn
	}
	return helpSignedOut
}

// runREPL starts a simple read–eval–print loop for the taskkeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands that need a session are refused
// while signed out, and register/login are refused while signed in. The loop
// exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("tk> %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText(a.isLoggedIn()))
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register", "login":
			if a.isLoggedIn() {
				printlnFn("Already signed in, logout first")
				continue
			}
			if cmd == "register" {
				_ = a.Register(ctx)
			} else {
				_ = a.Login(ctx)
			}
			continue

		case "logout", "profile", "editprofile", "l", "list", "add", "done", "undo", "edit", "delete", "export":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}

		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "editprofile":
			_ = a.EditProfile(ctx)
		case "l", "list":
			_ = a.List(ctx, strings.Join(args, " "))
		case "add":
			_ = a.Add(ctx)
		case "export":
			_ = a.Export(ctx)
		default:
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			id := args[0]
			switch cmd {
			case "done":
				_ = a.SetCompleted(ctx, id, true)
			case "undo":
				_ = a.SetCompleted(ctx, id, false)
			case "edit":
				_ = a.Edit(ctx, id)
			case "delete":
				_ = a.Delete(ctx, id)
			}
		}
	}
}
