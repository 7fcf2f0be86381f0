package dispatch

import (
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"github.com/cmdkit/cmdkit/parse"
	"github.com/cmdkit/cmdkit/schema"
)

// Command pairs a visible name with a compiled schema and the
// function that runs with the bound values.
type Command struct {
	Name   string
	Schema *schema.Schema
	Run    func(*parse.Result) error
}

// Entry is a command admitted into a dispatch table, together with
// the source location that defined it. Entries are created once per
// process and read-only afterwards.
type Entry struct {
	Command
	Source string // file:line of the command's Run function
}

// Table maps command names to their entries.
type Table map[string]Entry

// DuplicateError reports two distinct commands claiming the same
// visible name within one table build. This is a fatal configuration
// error, raised when the table is built, not at dispatch time.
type DuplicateError struct {
	Name     string
	Source   string
	Existing string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate command %q: declared by %s, already declared by %s",
		e.Name, e.Source, e.Existing)
}

// Locate composes groups of command declarations into a dispatch
// table. Two distinct declarations under the same name fail with a
// *DuplicateError naming both source locations; passing the same
// declaration twice is idempotent.
func Locate(groups ...[]Command) (Table, error) {
	t := make(Table)
	for _, group := range groups {
		for _, cmd := range group {
			if err := t.add(cmd); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t Table) add(cmd Command) error {
	if cmd.Name == "" || cmd.Schema == nil || cmd.Run == nil {
		return fmt.Errorf("incomplete command declaration: %q", cmd.Name)
	}
	e := Entry{Command: cmd, Source: source(cmd.Run)}
	if old, ok := t[cmd.Name]; ok {
		if samefunc(old.Run, cmd.Run) {
			return nil
		}
		return &DuplicateError{Name: cmd.Name, Source: e.Source, Existing: old.Source}
	}
	t[cmd.Name] = e
	return nil
}

func source(run func(*parse.Result) error) string {
	pc := reflect.ValueOf(run).Pointer()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	file, line := fn.FileLine(fn.Entry())
	return fmt.Sprintf("%s:%d", file, line)
}

func samefunc(a, b func(*parse.Result) error) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Registry collects command declarations from init functions. The
// typical pattern is one package per command, each registering itself
// on the Default registry, with the main package importing the
// command packages for their side effects.
type Registry struct {
	mu   sync.Mutex
	cmds []Command
}

// Register adds a command declaration. Name collisions are not
// checked here; they surface when the table is built. An incomplete
// declaration is a programming error and panics.
func (r *Registry) Register(cmd Command) {
	if cmd.Name == "" || cmd.Schema == nil || cmd.Run == nil {
		panic(fmt.Sprintf("dispatch: Register called with incomplete command %q", cmd.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
}

// Commands returns a copy of the registered declarations, in
// registration order.
func (r *Registry) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	cmds := make([]Command, len(r.cmds))
	copy(cmds, r.cmds)
	return cmds
}

// Table builds the dispatch table from the registered commands.
func (r *Registry) Table() (Table, error) {
	return Locate(r.Commands())
}

// Default is the process-wide registry used by Register and Main.
var Default Registry

// Register adds a command declaration to the default registry.
func Register(cmd Command) {
	Default.Register(cmd)
}
