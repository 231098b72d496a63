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
	List(ctx context.Context) error
	Next(ctx context.Context) error
	Query(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Title(ctx context.Context, args []string) error
	Describe(ctx context.Context, args []string) error
	Replace(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Select(ctx context.Context, args []string) error
	Errors(ctx context.Context) error
	Clear(ctx context.Context, args []string) error
	Parent(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  list                      show the loaded library (fetches the first page)
  next                      load the next page
  query [type:<mime>] [post:<id>] [text]
                            change the library filter
  get <id>...               refresh items from the server
  upload <path|url>...      upload files or URLs
  title <id> <text>         set the title
  describe <id> <text>      set the description
  replace <id> <path|url>   replace the attached file
  delete <id>...            delete items
  select [<id>...]          set or show the selection
  errors                    show validation errors
  clear [<id>|<type>...]    clear validation errors
  parent <post id>|none     attach new uploads to a post
  exit | quit               leave the program`

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit". Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "l", "list":
			err = a.List(ctx)
		case "next":
			err = a.Next(ctx)
		case "query":
			err = a.Query(ctx, args)
		case "get":
			err = a.Get(ctx, args)
		case "upload":
			err = a.Upload(ctx, args)
		case "title":
			err = a.Title(ctx, args)
		case "describe":
			err = a.Describe(ctx, args)
		case "replace":
			err = a.Replace(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "select":
			err = a.Select(ctx, args)
		case "errors":
			err = a.Errors(ctx)
		case "clear":
			err = a.Clear(ctx, args)
		case "parent":
			err = a.Parent(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
