package schema

import (
	"fmt"
	"strings"
)

// Error reports a bad command interface declaration. It aborts
// program setup; there is no recovery from a malformed interface.
type Error struct {
	Command string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("bad command interface for %q: %s", e.Command, e.Reason)
}

func bad(name, format string, args ...interface{}) error {
	return &Error{Command: name, Reason: fmt.Sprintf(format, args...)}
}

// Compile builds a Schema from a docstring and an ordered list of
// interface entries. Entries before the Args marker must be Option
// descriptors, entries after it Arg descriptors, with an optional
// trailing InOrder marker.
//
// The first line of doc becomes the one-line summary used in command
// listings; the rest becomes the extended help shown by -h/--help.
func Compile(name, doc string, entries ...Entry) (*Schema, error) {
	if name == "" {
		return nil, bad(name, "missing command name")
	}
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil, bad(name, "missing docstring")
	}
	s := &Schema{Name: name}
	s.Summary = doc
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		s.Summary = strings.TrimSpace(doc[:i])
		s.Overview = strings.TrimSpace(doc[i+1:])
	}

	const (
		inOptions = iota
		inArgs
		done
	)
	section := inOptions
	for _, e := range entries {
		if section == done {
			return nil, bad(name, "entries after in-order marker")
		}
		switch e := e.(type) {
		case marker:
			switch e {
			case Args:
				if section != inOptions {
					return nil, bad(name, "duplicate argument section marker")
				}
				section = inArgs
			case InOrder:
				s.InOrder = true
				section = done
			}
		case Option:
			if section != inOptions {
				return nil, bad(name, "option %s declared after argument section", e.Long)
			}
			if err := s.addOption(e); err != nil {
				return nil, err
			}
		case Arg:
			if section != inArgs {
				return nil, bad(name, "positional argument declared before argument section marker")
			}
			if err := s.addArg(e); err != nil {
				return nil, err
			}
		default:
			return nil, bad(name, "unrecognized interface entry %T", e)
		}
	}
	return s, nil
}

// MustCompile is like Compile but panics on error. It is intended
// for package-level command declarations, where a bad interface is a
// programming error.
func MustCompile(name, doc string, entries ...Entry) *Schema {
	s, err := Compile(name, doc, entries...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) addOption(o Option) error {
	name := s.Name
	if !strings.HasPrefix(o.Long, "--") || len(o.Long) < 3 {
		return bad(name, "option needs a long flag of the form --name, got %q", o.Long)
	}
	if o.Short != "" && (len(o.Short) != 2 || o.Short[0] != '-' || o.Short[1] == '-') {
		return bad(name, "short flag must be a dash and one character, got %q", o.Short)
	}
	if o.Bool && o.Parse != nil {
		return bad(name, "boolean option %s cannot have a parse function", o.Long)
	}
	for _, flag := range []string{o.Short, o.Long} {
		if flag == "" {
			continue
		}
		if flag == "-h" || flag == "--help" {
			return bad(name, "flag %s is reserved for help", flag)
		}
		if prev := s.Option(flag); prev != nil {
			return bad(name, "flag %s declared twice", flag)
		}
	}
	s.Options = append(s.Options, o)
	return nil
}

func (s *Schema) addArg(a Arg) error {
	name := s.Name
	if a.Name == "" && a.Label == "" {
		return bad(name, "positional argument needs a name")
	}
	if a.Name == "" {
		a.Name = strings.ToLower(a.Label)
	}
	if a.Label == "" {
		a.Label = strings.ToUpper(a.Name)
	}
	if a.Update != nil && !a.Repeatable {
		return bad(name, "argument %s has an update function but is not repeatable", a.Label)
	}
	if n := len(s.Args); n > 0 {
		last := &s.Args[n-1]
		if last.Repeatable {
			return bad(name, "argument %s follows repeatable argument %s", a.Label, last.Label)
		}
		if last.Optional && !(a.Optional || a.Repeatable) {
			return bad(name, "required argument %s follows optional argument %s", a.Label, last.Label)
		}
	}
	s.Args = append(s.Args, a)
	return nil
}
