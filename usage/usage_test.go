package usage_test

import (
	"testing"

	"github.com/cmdkit/cmdkit/schema"
	"github.com/cmdkit/cmdkit/usage"
)

func putSchema(t testing.TB) *schema.Schema {
	t.Helper()
	s, err := schema.Compile("put", "store a value\n\nReads the value from the argument and keeps it\nuntil you delete it.",
		schema.Option{Short: "-q", Long: "--quiet", Help: "print nothing on success", Bool: true},
		schema.Option{Short: "-d", Long: "--db", Help: "database file", Default: "/var/db/kv.db"},
		schema.Args,
		schema.Arg{Name: "key", Help: "key to store under"},
		schema.Arg{Name: "val", Help: "value to store", Optional: true},
	)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return s
}

func TestRender(t *testing.T) {
	got := usage.Render(putSchema(t), nil)
	want := `Usage:
  put [OPT..] KEY [VAL]

store a value

Options:
  -q, --quiet  print nothing on success
  -d, --db DB  database file (default: /var/db/kv.db)

Arguments:
  KEY          key to store under
  VAL          value to store [optional]
`
	if got != want {
		t.Errorf("unexpected usage:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}

func TestRenderDeterministic(t *testing.T) {
	s := putSchema(t)
	if one, two := usage.Render(s, nil), usage.Render(s, nil); one != two {
		t.Errorf("render is not stable:\n%q\n%q", one, two)
	}
}

func TestRenderErrors(t *testing.T) {
	got := usage.Render(putSchema(t), []string{
		"unknown flag: --frob",
		"missing mandatory argument: KEY",
	})
	want := `Usage:
  put [OPT..] KEY [VAL]

store a value

Options:
  -q, --quiet  print nothing on success
  -d, --db DB  database file (default: /var/db/kv.db)

Arguments:
  KEY          key to store under
  VAL          value to store [optional]

Errors:
  unknown flag: --frob
  missing mandatory argument: KEY
`
	if got != want {
		t.Errorf("unexpected usage:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}

func TestHelpShowsOverview(t *testing.T) {
	got := usage.Help(putSchema(t))
	want := `Usage:
  put [OPT..] KEY [VAL]

store a value

Reads the value from the argument and keeps it
until you delete it.

Options:
  -q, --quiet  print nothing on success
  -d, --db DB  database file (default: /var/db/kv.db)

Arguments:
  KEY          key to store under
  VAL          value to store [optional]
`
	if got != want {
		t.Errorf("unexpected help:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}

func TestRenderNoShortFlag(t *testing.T) {
	s, err := schema.Compile("serve", "serve the database",
		schema.Option{Long: "--pidfile", Help: "write pid here"},
		schema.Option{Short: "-v", Long: "--verbose", Help: "verbose output", Bool: true},
	)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	got := usage.Render(s, nil)
	want := `Usage:
  serve [OPT..]

serve the database

Options:
      --pidfile PIDFILE  write pid here
  -v, --verbose          verbose output
`
	if got != want {
		t.Errorf("unexpected usage:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}

func TestRenderRepeatable(t *testing.T) {
	s, err := schema.Compile("exec", "run an external command",
		schema.Args,
		schema.Arg{Name: "command", Help: "program to run"},
		schema.Arg{Name: "args", Label: "ARG", Help: "passed through untouched", Repeatable: true},
		schema.InOrder,
	)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	got := usage.Render(s, nil)
	want := `Usage:
  exec COMMAND [ARG..]

run an external command

Arguments:
  COMMAND  program to run
  ARG      passed through untouched [repeatable]
`
	if got != want {
		t.Errorf("unexpected usage:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}

func TestCommands(t *testing.T) {
	got := usage.Commands("kv", "a tiny key-value tool", []usage.Line{
		{Name: "put", Summary: "store a value"},
		{Name: "get", Summary: "fetch a value"},
		{Name: "help", Summary: "show the available commands"},
	})
	want := `Usage:
  kv COMMAND..

a tiny key-value tool

Commands:
  get     fetch a value
  help    show the available commands
  put     store a value
`
	if got != want {
		t.Errorf("unexpected usage:\n%s", got)
		t.Logf("got: %q", got)
		t.Logf("exp: %q", want)
	}
}
