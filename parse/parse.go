// Package parse binds raw command-line tokens against a compiled
// schema, producing either a Result with every declared binding or a
// Failure carrying every problem found in the invocation.
package parse

import (
	"errors"
	"strings"

	"github.com/cmdkit/cmdkit/schema"
)

// ErrHelp is returned when -h or --help is seen while flags are
// still being matched. It is not a parse failure; the caller should
// render help and report success.
var ErrHelp = errors.New("help requested")

func isFlag(tok string) bool {
	return len(tok) > 1 && strings.HasPrefix(tok, "-")
}

// Parse consumes args against the schema.
//
// Dash tokens are matched exactly against declared flags while the
// parser is in option mode. For an in-order schema, option mode ends
// permanently at the first positional token; everything after it
// passes through as positional, dashes and all. Otherwise options
// and positionals may interleave freely.
//
// On success every declared option binding is present (parsed value,
// declared default, false for booleans, or nil) and every argument
// binding is present or absent per its optionality. On failure the
// returned error is a *Failure aggregating all problems, or ErrHelp.
func Parse(s *schema.Schema, args []string) (*Result, error) {
	res := &Result{
		Options:   make(map[string]interface{}, len(s.Options)),
		Arguments: make(map[string]interface{}, len(s.Args)),
	}
	for i := range s.Options {
		o := &s.Options[i]
		switch {
		case o.Default != nil:
			res.Options[o.Binding()] = o.Default
		case o.Bool:
			res.Options[o.Binding()] = false
		default:
			res.Options[o.Binding()] = nil
		}
	}

	var errs []error
	var pos []string
	options := true
	for i := 0; i < len(args); i++ {
		tok := args[i]
		if !options || !isFlag(tok) {
			pos = append(pos, tok)
			if s.InOrder {
				options = false
			}
			continue
		}
		if tok == "-h" || tok == "--help" {
			return nil, ErrHelp
		}
		o := s.Option(tok)
		if o == nil {
			errs = append(errs, UnknownFlagError{Flag: tok})
			continue
		}
		if o.Bool {
			res.Options[o.Binding()] = true
			continue
		}
		if i+1 >= len(args) {
			errs = append(errs, MissingValueError{Flag: tok})
			continue
		}
		i++
		v, err := convert(o.Long, args[i], o.Parse, o.Check)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res.Options[o.Binding()] = v
	}

	errs = append(errs, bindArgs(s, res, pos)...)

	if len(errs) > 0 {
		return nil, &Failure{Command: s.Name, Errors: errs}
	}
	return res, nil
}

// bindArgs consumes the positional tokens against the declared args
// in order. Field errors do not stop consumption; only a missing
// mandatory argument does, since nothing meaningful follows it.
func bindArgs(s *schema.Schema, res *Result, pos []string) []error {
	var errs []error
	idx := 0
	for k := range s.Args {
		a := &s.Args[k]
		switch {
		case a.Repeatable:
			acc := a.NewAccumulator()
			update := a.Update
			if update == nil {
				update = appendValue
			}
			for ; idx < len(pos); idx++ {
				v, err := convert(a.Label, pos[idx], a.Parse, a.Check)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				acc = update(acc, v)
			}
			res.Arguments[a.Name] = acc
		case idx < len(pos):
			v, err := convert(a.Label, pos[idx], a.Parse, a.Check)
			idx++
			if err != nil {
				errs = append(errs, err)
				continue
			}
			res.Arguments[a.Name] = v
		case a.Optional:
			// ran out of tokens; binding stays absent
		default:
			errs = append(errs, MissingArgError{Name: a.Label})
			return errs
		}
	}
	if idx < len(pos) {
		errs = append(errs, TooManyArgsError{Extra: pos[idx:]})
	}
	return errs
}

func appendValue(acc, v interface{}) interface{} {
	return append(acc.([]interface{}), v)
}

func convert(field, raw string, fn schema.ParseFunc, check *schema.Validation) (interface{}, error) {
	var v interface{} = raw
	if fn != nil {
		parsed, err := fn(raw)
		if err != nil {
			return nil, FieldParseError{Field: field, Value: raw, Err: err}
		}
		v = parsed
	}
	if check != nil && !check.Check(v) {
		return nil, FieldValidationError{Field: field, Message: check.Message}
	}
	return v, nil
}
