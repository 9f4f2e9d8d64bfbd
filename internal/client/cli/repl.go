package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/flow"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Provinces(ctx context.Context) error
	Hosts(ctx context.Context) error
	Host(ctx context.Context, id string) error
	Tours(ctx context.Context) error
	Tour(ctx context.Context, id string) error
	Bnbs(ctx context.Context) error
	Bnb(ctx context.Context, id string) error
}

const (
	helpGuest    = "Available commands: login, signup, forgot, status, provinces, hosts, host <id>, tours, tour <id>, bnbs, bnb <id>, exit"
	helpLoggedIn = "Available commands: logout, status, provinces, hosts, host <id>, tours, tour <id>, bnbs, bnb <id>, exit"
)

// runREPL starts a simple read–eval–print loop for the booking CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are turned into a single user-facing
// line with flow.UserMessage; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("vk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
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
				printlnFn(helpGuest)
			}

		case "login":
			report(a.Login(ctx))
		case "signup", "register":
			report(a.Signup(ctx))
		case "forgot":
			report(a.Forgot(ctx))
		case "logout":
			report(a.Logout(ctx))
		case "status":
			report(a.Status(ctx))

		case "provinces":
			report(a.Provinces(ctx))
		case "hosts":
			report(a.Hosts(ctx))
		case "tours":
			report(a.Tours(ctx))
		case "bnbs":
			report(a.Bnbs(ctx))

		case "host", "tour", "bnb":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			switch cmd {
			case "host":
				report(a.Host(ctx, args[0]))
			case "tour":
				report(a.Tour(ctx, args[0]))
			case "bnb":
				report(a.Bnb(ctx, args[0]))
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err == nil {
		return
	}
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		for _, line := range strings.Split(verr.Fields.Error(), "; ") {
			printlnFn("-", line)
		}
		return
	}
	printlnFn(flow.UserMessage(err))
}
