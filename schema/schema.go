// Package schema holds the compiled description of a single command:
// its flag-based options, its positional arguments, and the ordering
// rules between them.
//
// A command interface is declared as an ordered list of entries:
// Option descriptors first, then the Args marker, then Arg
// descriptors, optionally terminated by the InOrder marker. Compile
// turns such a list into an immutable Schema that every invocation of
// the command shares.
package schema

import "strings"

// Entry is one element of a declarative command interface. The
// concrete entry types are Option, Arg, and the Args and InOrder
// markers.
type Entry interface {
	entry()
}

// ParseFunc converts a raw command-line token into the value bound
// for a field. A non-nil error marks the token as unparseable; the
// error text is shown to the user.
type ParseFunc func(raw string) (interface{}, error)

// UpdateFunc folds one parsed value into the accumulator of a
// repeatable argument and returns the new accumulator.
type UpdateFunc func(acc, value interface{}) interface{}

// Validation pairs a predicate with the message reported when the
// predicate rejects a value. The predicate sees the value after any
// ParseFunc has run.
type Validation struct {
	Check   func(value interface{}) bool
	Message string
}

// Option describes one flag-based option.
//
// An Option with Bool set never consumes a following token; it binds
// true when the flag is present. All other options consume the next
// token as their raw value.
type Option struct {
	Short   string // short flag form, e.g. "-v"; may be empty
	Long    string // long flag form, e.g. "--verbose"
	Help    string
	Bool    bool
	Default interface{}
	Parse   ParseFunc
	Check   *Validation
}

func (Option) entry() {}

// Binding returns the name the option's value is bound under: the
// long flag form with the leading dashes removed.
func (o *Option) Binding() string {
	return strings.TrimPrefix(o.Long, "--")
}

// Arg describes one positional argument.
//
// A Repeatable Arg consumes every remaining token, folding each one
// into an accumulator. An Optional Arg consumes one token only if one
// remains; otherwise its binding is absent.
type Arg struct {
	Name       string // binding name, e.g. "key"
	Label      string // display label; defaults to Name in upper case
	Help       string
	Optional   bool
	Repeatable bool
	Parse      ParseFunc
	Check      *Validation

	// Update folds values of a repeatable argument. When nil, values
	// append to an ordered list.
	Update UpdateFunc

	// Seed returns a fresh empty accumulator for a repeatable
	// argument. When nil, the accumulator is an empty list, or an
	// empty map when Update is set.
	Seed func() interface{}
}

func (Arg) entry() {}

// NewAccumulator returns a fresh, empty accumulator for one
// invocation. Accumulators are never shared between invocations.
func (a *Arg) NewAccumulator() interface{} {
	if a.Seed != nil {
		return a.Seed()
	}
	if a.Update != nil {
		return map[string]interface{}{}
	}
	return []interface{}{}
}

type marker int

func (marker) entry() {}

const (
	// Args separates option descriptors from positional argument
	// descriptors in a command interface.
	Args marker = iota

	// InOrder is a trailing marker: once the first positional token
	// is consumed, all remaining tokens are treated as positional
	// even when they begin with a dash. Required when wrapping
	// external commands whose own flags must pass through.
	InOrder
)

// Schema is the compiled, immutable interface of one command.
type Schema struct {
	Name     string
	Summary  string // first line of the docstring
	Overview string // remaining docstring, shown on -h/--help only
	Options  []Option
	Args     []Arg
	InOrder  bool
}

// Option returns the option matching the given flag token exactly,
// or nil. There is no prefix or abbreviation matching.
func (s *Schema) Option(flag string) *Option {
	for i := range s.Options {
		o := &s.Options[i]
		if flag == o.Long || (o.Short != "" && flag == o.Short) {
			return o
		}
	}
	return nil
}
