package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/followupdesk/internal/flagx"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Exec(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the FollowUpDesk CLI.
//
// Each line is split into arguments with shell-like quoting and executed
// through the same command tree as the non-interactive CLI, so
//
//	remarks add 7 "called, will pay Friday"
//
// behaves exactly like the equivalent command line. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help : show available commands
//	  - login : authenticate
//	  - health : check the server
//	  - exit | quit : leave the program
//
//	Logged in:
//	  - records list|get|update|upload|download
//	  - records next|prev|filter (page through or narrow the last listing)
//	  - remarks list|add|update|delete
//	  - whoami, logout, health
//	  - exit | quit : leave the program
//
// Errors are printed and the loop continues; a failed token refresh clears
// the session, so the prompt drops back to the logged-out command set.
func runREPL(ctx context.Context, a execIface, statusFn func(context.Context) string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("fud %s> ", statusFn(ctx)))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		args, serr := flagx.SplitArgs(line)
		if serr != nil {
			printlnFn("Error:", serr)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: records (list, next, prev, filter, get, update, upload, download), remarks (list, add, update, delete), whoami, health, logout, exit")
			} else {
				printlnFn("Available commands: login, health, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if err := a.Exec(ctx, args); err != nil {
			if msg := err.Error(); msg != "" {
				printlnFn(msg)
			}
		}
		if ctx.Err() != nil {
			return
		}
	}
}
