package parse

import (
	"fmt"
	"strings"
)

// UnknownFlagError indicates a dash token that matched no declared
// flag. There is no prefix matching; near misses are still unknown.
type UnknownFlagError struct {
	Flag string
}

func (e UnknownFlagError) Error() string {
	return "unknown flag: " + e.Flag
}

// MissingValueError indicates a valued flag at the end of the token
// list, with nothing left to consume as its value.
type MissingValueError struct {
	Flag string
}

func (e MissingValueError) Error() string {
	return "missing value for flag: " + e.Flag
}

// MissingArgError indicates a mandatory positional argument that was
// not provided. Only the first missing argument is reported.
type MissingArgError struct {
	Name string
}

func (e MissingArgError) Error() string {
	return "missing mandatory argument: " + e.Name
}

// TooManyArgsError indicates tokens left over after every positional
// argument was satisfied. Extra holds exactly the surplus tokens, in
// order.
type TooManyArgsError struct {
	Extra []string
}

func (e TooManyArgsError) Error() string {
	return "too many arguments: " + strings.Join(e.Extra, " ")
}

// FieldParseError indicates a token the field's parse function could
// not convert.
type FieldParseError struct {
	Field string
	Value string
	Err   error
}

func (e FieldParseError) Error() string {
	return fmt.Sprintf("bad value %q for %s: %v", e.Value, e.Field, e.Err)
}

// FieldValidationError indicates a value rejected by the field's
// validation predicate. Message is the message declared with the
// predicate.
type FieldValidationError struct {
	Field   string
	Message string
}

func (e FieldValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Failure carries every problem found while parsing one invocation.
// Field-level errors are collected, not short-circuited, so the user
// sees all of them at once.
type Failure struct {
	Command string
	Errors  []error
}

func (f *Failure) Error() string {
	msgs := f.Messages()
	return f.Command + ": " + strings.Join(msgs, "; ")
}

// Messages returns the individual error messages in the order the
// problems were found, ready for rendering under an errors heading.
func (f *Failure) Messages() []string {
	msgs := make([]string, 0, len(f.Errors))
	for _, err := range f.Errors {
		msgs = append(msgs, err.Error())
	}
	return msgs
}
