package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Onboard(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context, id string) error
	Update(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, confirmed bool) error
	Makes(ctx context.Context) error
	AddMake(ctx context.Context) error
	AddModel(ctx context.Context) error
	report(ctx context.Context, err error)
}

const helpText = "Available commands: onboard, (l)ist, search <regNo>, show <id>, update <id>, delete <id>, makes, add-make, add-model, exit"

// runREPL starts a simple read–eval–print loop for the vehireg CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its argument, and dispatches to methods on 'a'. Its own
// messages go to out, the same writer the commands print to. Commands
// that need an id prompt for it when none is given. The loop exits on EOF
// or when the user types "exit" or "quit".
//
// Errors returned by command handlers are passed to a.report and the loop
// continues; a failed command never ends the session.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out io.Writer, showPrompt bool) {
	for {
		if showPrompt {
			printlnFn(out, "vehireg> ")
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		arg := strings.Join(parts[1:], " ")

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(out, helpText)

		case "onboard":
			cmdErr = a.Onboard(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "search":
			cmdErr = a.Search(ctx, arg)

		case "show":
			cmdErr = a.Show(ctx, arg)

		case "update":
			cmdErr = a.Update(ctx, arg)

		case "delete":
			cmdErr = a.Delete(ctx, arg, false)

		case "makes":
			cmdErr = a.Makes(ctx)

		case "add-make":
			cmdErr = a.AddMake(ctx)

		case "add-model":
			cmdErr = a.AddModel(ctx)

		case "exit", "quit":
			printlnFn(out, "Bye!")
			return

		default:
			printlnFn(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			if errors.Is(cmdErr, errAborted) {
				printlnFn(out, "Cancelled.")
			} else {
				a.report(ctx, cmdErr)
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
