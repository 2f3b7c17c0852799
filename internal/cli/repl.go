package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Demo(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	List(ctx context.Context, filter string) error
	Delete(ctx context.Context, id string) error
	Download(ctx context.Context, id, dest string) error
	Stats(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, demo, stats, exit"
	helpLoggedIn  = "Available commands: upload <path>, (l)ist [all|images|videos], delete <id>, download <id> [dest], whoami, stats, logout, exit"
)

// readLine returns the next line without its trailing newline. A final line
// without a newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// runREPL starts a simple read–eval–print loop for the gophcloud CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                     — show available commands
//	  - register                 — create an account
//	  - login                    — authenticate
//	  - demo                     — log in with the demo account
//	  - exit | quit              — leave the program
//
//	Logged in:
//	  - upload <path>            — upload an image or video
//	  - list [all|images|videos] — show the gallery, newest first
//	  - delete <id>              — delete an entry
//	  - download <id> [dest]     — save an entry's content
//	  - whoami                   — show the current identity
//	  - stats                    — show operation counters
//	  - logout                   — log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("gophcloud %s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "demo":
			_ = a.Demo(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, strings.Join(args, " "))

		case "l", "list":
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			_ = a.List(ctx, filter)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "download":
			if len(args) == 0 {
				printlnFn("Usage: download <id> [dest]")
				continue
			}
			dest := ""
			if len(args) > 1 {
				dest = strings.Join(args[1:], " ")
			}
			_ = a.Download(ctx, args[0], dest)

		case "stats":
			_ = a.Stats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
