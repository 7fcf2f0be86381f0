// Package dispatch routes a top-level tool invocation to the right
// command, parses its arguments, runs the command body, and reports
// the outcome.
//
// The core never terminates the process. Dispatch returns an Outcome
// and the process entry point decides what to do with it; binaries
// typically end with
//
//	os.Exit(dispatch.Main("mytool", toolDoc, os.Args[1:]))
//
// which keeps the whole machinery usable from tests.
package dispatch

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/tv42/jog"

	"github.com/cmdkit/cmdkit/parse"
	"github.com/cmdkit/cmdkit/schema"
	"github.com/cmdkit/cmdkit/usage"
)

// Outcome is the result of one dispatch: status 0 with a nil error
// for success, a non-zero status otherwise. Err preserves the cause
// for callers that embed the dispatcher.
type Outcome struct {
	Status int
	Err    error
}

// UnknownCommandError indicates an invocation naming no known
// command. It is recoverable: the dispatcher renders the top-level
// usage and reports a failed outcome.
type UnknownCommandError struct {
	Name string
}

func (e UnknownCommandError) Error() string {
	if e.Name == "" {
		return "no command given"
	}
	return "command not found: " + e.Name
}

// Eventer is implemented by errors that carry structured detail
// worth logging as a whole, not just as a message string.
type Eventer interface {
	Event() interface{}
}

var events = jog.New(nil)

var helpSchema = schema.MustCompile("help", "show the available commands")

// withHelp returns the table with the implicit help command added,
// unless the caller provided its own.
func withHelp(tool, doc string, table Table, stdout io.Writer) Table {
	if _, ok := table["help"]; ok {
		return table
	}
	full := make(Table, len(table)+1)
	for name, e := range table {
		full[name] = e
	}
	help := Command{
		Name:   "help",
		Schema: helpSchema,
		Run: func(*parse.Result) error {
			_, err := io.WriteString(stdout, usage.Commands(tool, doc, lines(full)))
			return err
		},
	}
	full["help"] = Entry{Command: help, Source: "dispatch"}
	return full
}

func lines(t Table) []usage.Line {
	ls := make([]usage.Line, 0, len(t))
	for _, e := range t {
		ls = append(ls, usage.Line{Name: e.Name, Summary: e.Schema.Summary})
	}
	return ls
}

// Dispatch routes argv against the table. The first token selects
// the command; the rest go to that command's own parser.
//
// An empty argv or an unknown command prints the top-level usage to
// stderr and fails. Help, whether via the implicit help command or a
// command's -h/--help, goes to stdout and succeeds. A parse failure
// prints the command's usage with the full error list to stderr. A
// command body error, including a recovered panic, is logged here at
// the single top-level backstop and fails the outcome.
func Dispatch(tool, doc string, table Table, argv []string, stdout, stderr io.Writer) Outcome {
	table = withHelp(tool, doc, table, stdout)

	if len(argv) == 0 {
		io.WriteString(stderr, usage.Commands(tool, doc, lines(table)))
		return Outcome{Status: 1, Err: UnknownCommandError{}}
	}
	e, ok := table[argv[0]]
	if !ok {
		io.WriteString(stderr, usage.Commands(tool, doc, lines(table)))
		return Outcome{Status: 1, Err: UnknownCommandError{Name: argv[0]}}
	}

	res, err := parse.Parse(e.Schema, argv[1:])
	if err == parse.ErrHelp {
		io.WriteString(stdout, usage.Help(e.Schema))
		return Outcome{Status: 0}
	}
	if err != nil {
		if f, ok := err.(*parse.Failure); ok {
			io.WriteString(stderr, usage.Render(e.Schema, f.Messages()))
		} else {
			fmt.Fprintf(stderr, "%s %s: %v\n", tool, e.Name, err)
		}
		return Outcome{Status: 1, Err: err}
	}

	if err := run(e, res); err != nil {
		if ev, ok := err.(Eventer); ok {
			events.Event(ev.Event())
		}
		fmt.Fprintf(stderr, "%s %s: %v\n", tool, e.Name, err)
		return Outcome{Status: 1, Err: err}
	}
	return Outcome{Status: 0}
}

// run executes the command body, recovering panics so that the
// dispatch boundary stays the only failure backstop.
func run(e Entry, res *parse.Result) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in command %s: %v", e.Name, r)
		}
	}()
	return e.Run(res)
}

// Main dispatches argv against the default registry and returns the
// process exit status: 0 for success and help, 1 for parse failures,
// unknown commands, and body errors.
func Main(tool, doc string, argv []string) int {
	log.SetFlags(0)
	log.SetPrefix(tool + ": ")

	table, err := Default.Table()
	if err != nil {
		// bad wiring, not bad input
		log.Print(err)
		return 1
	}
	return Dispatch(tool, doc, table, argv, os.Stdout, os.Stderr).Status
}
