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
	Reconnect(ctx context.Context) error
	Status(ctx context.Context) error
	Punch(ctx context.Context) error
	History(ctx context.Context, args []string) error
	Partners(ctx context.Context) error
	Find(ctx context.Context, term string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the odooclock CLI.
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
//	  - help           — show available commands
//	  - login          — authenticate and save the profile
//	  - reconnect      — resume using the saved profile
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - (s)tatus       — show today's attendance status
//	  - (p)unch        — punch in or out
//	  - history [n]    — show the n most recent records
//	  - partners       — list partners
//	  - find <name>    — search partners by name
//	  - logout         — forget the session and the saved profile
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("oc> %s > ", statusFn()))
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
				printlnFn("Available commands: (s)tatus, (p)unch, history [n], partners, find <name>, logout, exit")
			} else {
				printlnFn("Available commands: login, reconnect, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "reconnect":
			_ = a.Reconnect(ctx)

		case "s", "status":
			_ = a.Status(ctx)

		case "p", "punch":
			_ = a.Punch(ctx)

		case "history":
			_ = a.History(ctx, args)

		case "partners":
			_ = a.Partners(ctx)

		case "find":
			if len(args) == 0 {
				printlnFn("Usage: find <name>")
				continue
			}
			_ = a.Find(ctx, strings.Join(args, " "))

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
