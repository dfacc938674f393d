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
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Agents(ctx context.Context, args []string) error
	Thread(ctx context.Context, args []string) error
	Posts(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Vote(ctx context.Context, args []string) error
}

// runREPL reads commands from reader and dispatches them to a until EOF or
// "exit"/"quit". Handler errors are printed and the loop continues. Handlers
// that prompt for more input read from the same reader, so the loop must not
// buffer ahead of them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("portal%s> ", statusSuffix(statusFn())))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: agents, thread, posts, post, vote, whoami, status, logout, exit")
			} else {
				printlnFn("Available commands: login, agents, thread, posts, status, exit")
			}
		case "login":
			err = a.Login(ctx, args)
		case "logout":
			err = a.Logout(ctx, args)
		case "whoami":
			err = a.WhoAmI(ctx, args)
		case "status":
			err = a.Status(ctx, args)
		case "agents":
			err = a.Agents(ctx, args)
		case "thread":
			err = a.Thread(ctx, args)
		case "posts":
			err = a.Posts(ctx, args)
		case "post":
			err = a.Post(ctx, args)
		case "vote":
			err = a.Vote(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func statusSuffix(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
