package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Reviewers(ctx context.Context, args []string) error
	Enroll(ctx context.Context, args []string) error
	Submit(ctx context.Context) error
	Draft(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Review(ctx context.Context, args []string) error
}

// runREPL reads a line, parses the first token as the command, and dispatches
// to methods on a. The loop exits on EOF or "exit"/"quit". Command handlers
// read their prompt answers from the same reader, so a pasted script with
// commands and answers interleaved is consumed in order.
//
// Errors returned by command handlers are ignored here; handlers report their
// own failures to the user. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "rpas %s> ", statusFn())
		line, readErr := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: whoami, reviewers <program>, enroll <program> <reviewer>, submit, draft, (l)ist, show <id>, review <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "reviewers":
			_ = a.Reviewers(ctx, args)

		case "enroll":
			_ = a.Enroll(ctx, args)

		case "submit":
			_ = a.Submit(ctx)

		case "draft":
			_ = a.Draft(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "review":
			_ = a.Review(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if readErr != nil {
			return
		}
	}
}
