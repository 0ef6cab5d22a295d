package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	AddEmployee(ctx context.Context) error
	DeleteEmployee(ctx context.Context, id int) error
	Open(ctx context.Context, id int) error
	AddPost(ctx context.Context) error
	DeletePost(ctx context.Context, id int) error
	ViewPost(ctx context.Context, id int) error
	AddComment(ctx context.Context) error
	DeleteComment(ctx context.Context, id int) error
	Back(ctx context.Context) error
	Refresh(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist                 show employees
  add-employee           create an employee
  delete-employee <id>   delete an employee
  open <id>              show an employee with posts
  add-post               add a post to the open employee
  delete-post <id>       delete a post of the open employee
  view-post <id>         show a post with comments
  add-comment            comment on the open post
  delete-comment <id>    delete a comment of the open post
  back                   go one view up
  refresh                reload from the server
  exit | quit            leave the program`

// runREPL reads commands line by line from in and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report to
// the user and log on their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("eb %s > ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withID := func(fn func(ctx context.Context, id int) error) {
			id, ok := parseID(cmd, args)
			if !ok {
				return
			}
			_ = fn(ctx, id)
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			_ = a.List(ctx)

		case "add-employee":
			_ = a.AddEmployee(ctx)

		case "delete-employee":
			withID(a.DeleteEmployee)

		case "open":
			withID(a.Open)

		case "add-post":
			_ = a.AddPost(ctx)

		case "delete-post":
			withID(a.DeletePost)

		case "view-post":
			withID(a.ViewPost)

		case "add-comment":
			_ = a.AddComment(ctx)

		case "delete-comment":
			withID(a.DeleteComment)

		case "back":
			_ = a.Back(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseID(cmd string, args []string) (int, bool) {
	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		printlnFn("Invalid id:", args[0])
		return 0, false
	}
	return id, true
}
