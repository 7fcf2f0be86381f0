// Package usage renders help and usage text for compiled schemas.
// All functions return plain fixed-width text and perform no I/O, so
// callers can pick the sink and tests can compare exact bytes.
package usage

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/cmdkit/cmdkit/schema"
)

// Render returns the usage text for one command: synopsis, summary,
// aligned option and argument tables, and, when errs is non-empty,
// an Errors section listing them verbatim in order.
//
// Output is deterministic for a given schema and error list. Column
// widths are computed from the longest cell across both tables, so
// the two tables align uniformly.
func Render(s *schema.Schema, errs []string) string {
	return render(s, false, errs)
}

// Help returns the long help for a command: Render plus the extended
// part of the docstring. This is what -h and --help show.
func Help(s *schema.Schema) string {
	return render(s, true, nil)
}

func render(s *schema.Schema, long bool, errs []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage:\n  %s\n", synopsis(s))
	fmt.Fprintf(&b, "\n%s\n", s.Summary)
	if long && s.Overview != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Overview)
	}

	width := 0
	for i := range s.Options {
		if n := len(optionCell(&s.Options[i])); n > width {
			width = n
		}
	}
	for i := range s.Args {
		if n := len(s.Args[i].Label); n > width {
			width = n
		}
	}

	if len(s.Options) > 0 {
		b.WriteString("\nOptions:\n")
		for i := range s.Options {
			o := &s.Options[i]
			fmt.Fprintf(&b, "  %-*s  %s\n", width, optionCell(o), optionHelp(o))
		}
	}
	if len(s.Args) > 0 {
		b.WriteString("\nArguments:\n")
		for i := range s.Args {
			a := &s.Args[i]
			fmt.Fprintf(&b, "  %-*s  %s\n", width, a.Label, argHelp(a))
		}
	}
	if len(errs) > 0 {
		b.WriteString("\nErrors:\n")
		for _, msg := range errs {
			fmt.Fprintf(&b, "  %s\n", msg)
		}
	}
	return b.String()
}

func synopsis(s *schema.Schema) string {
	parts := []string{s.Name}
	if len(s.Options) > 0 {
		parts = append(parts, "[OPT..]")
	}
	if args := argSynopsis(s.Args); args != "" {
		parts = append(parts, args)
	}
	return strings.Join(parts, " ")
}

// argSynopsis renders positional labels, bracketing the trailing run
// of optional and repeatable arguments with nesting, for example
// "KEY [VAL [REST..]]".
func argSynopsis(args []schema.Arg) string {
	metas := []string{}
	nest := 0
	for i := range args {
		a := &args[i]
		label := a.Label
		if a.Repeatable {
			label += ".."
		}
		if a.Optional || a.Repeatable {
			label = "[" + label
			nest++
		}
		metas = append(metas, label)
	}
	if nest > 0 {
		metas[len(metas)-1] += strings.Repeat("]", nest)
	}
	return strings.Join(metas, " ")
}

func optionCell(o *schema.Option) string {
	flags := "    " + o.Long
	if o.Short != "" {
		flags = o.Short + ", " + o.Long
	}
	if !o.Bool {
		flags += " " + strings.ToUpper(o.Binding())
	}
	return flags
}

func optionHelp(o *schema.Option) string {
	help := o.Help
	if o.Default != nil {
		help += fmt.Sprintf(" (default: %v)", o.Default)
	}
	return help
}

func argHelp(a *schema.Arg) string {
	help := a.Help
	if a.Optional {
		help += " [optional]"
	}
	if a.Repeatable {
		help += " [repeatable]"
	}
	return help
}

// Line is one row of a top-level command listing.
type Line struct {
	Name    string
	Summary string
}

// Commands renders the top-level usage of a tool: name, docstring,
// and the sorted table of its commands with their one-line
// summaries.
func Commands(tool, doc string, cmds []Line) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Usage:\n  %s COMMAND..\n", tool)
	if doc = strings.TrimSpace(doc); doc != "" {
		fmt.Fprintf(&b, "\n%s\n", doc)
	}

	sorted := make([]Line, len(cmds))
	copy(sorted, cmds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	b.WriteString("\nCommands:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 4, ' ', 0)
	for _, c := range sorted {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Name, c.Summary)
	}
	tw.Flush()
	return b.String()
}
