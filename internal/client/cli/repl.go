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
	Logout(ctx context.Context) error
	Feed(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Unread(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Vote(ctx context.Context, args []string) error
	Votes(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error
	Bookmark(ctx context.Context, args []string) error
	NewPost(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Menu(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Orbitar terminal client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a' with the remaining tokens as
// arguments. Unknown commands are reported back to the user. The loop exits
// on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                  show available commands
//	  - login                 authenticate
//	  - exit | quit           leave the program
//
//	Logged in:
//	  - help                  show available commands
//	  - feed [source] [page]  show a feed page (site, subs, all, watch)
//	  - open <id>             open a post with its comment tree
//	  - unread [on|off]       toggle unread-only comment view
//	  - reply [commentID]     answer the open post or one of its comments
//	  - edit <commentID>      edit one of your comments
//	  - vote <post|comment|user> <id> <value>
//	  - votes <post|comment|user> <id>
//	  - watch <id> <on|off>
//	  - bookmark <id> <on|off>
//	  - post                  create a post on the current site
//	  - theme [name]          show or set the UI theme
//	  - menu [on|off]         show or set whether the site menu stays open
//	  - status                show session and unread counters
//	  - logout                log out
//	  - exit | quit           leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("orbitar> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: feed, open, unread, reply, edit, vote, votes, watch, bookmark, post, theme, menu, status, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "f", "feed":
			_ = a.Feed(ctx, args)

		case "o", "open":
			_ = a.Open(ctx, args)

		case "unread":
			_ = a.Unread(ctx, args)

		case "r", "reply":
			_ = a.Reply(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "vote":
			_ = a.Vote(ctx, args)

		case "votes":
			_ = a.Votes(ctx, args)

		case "watch":
			_ = a.Watch(ctx, args)

		case "bookmark":
			_ = a.Bookmark(ctx, args)

		case "post":
			_ = a.NewPost(ctx)

		case "theme":
			_ = a.Theme(ctx, args)

		case "menu":
			_ = a.Menu(ctx, args)

		case "status":
			_ = a.Status(ctx)

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
