// +build task

// Generate the side effect only import file that pulls command
// packages into a tool binary, so the main package does not need to
// track them by hand.
//
// With -scaffold N, additionally writes N synthetic command packages
// under -scaffold-dir before generating the imports. The synthetic
// commands register trivial bodies; they exist to exercise registry
// and dispatch behavior on large command tables.
package main

import (
	"flag"
	"fmt"
	"go/build"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/kisielk/gotool"
)

var (
	genOutput   = flag.String("o", "", "output path")
	genPackage  = flag.String("package", os.Getenv("GOPACKAGE"), "Go package name")
	scaffold    = flag.Int("scaffold", 0, "number of synthetic command packages to write")
	scaffoldDir = flag.String("scaffold-dir", "", "directory for synthetic command packages")
)

var genImports = template.Must(template.New("imports").Parse(`package {{.Package}}

import (
{{range .Imports}}{{"\t"}}_ "{{.}}"
{{end}})
`))

var genCommand = template.Must(template.New("command").Parse(`// Package {{.Name}} is a synthetic command used for scale testing.
package {{.Name}}

import (
	"github.com/cmdkit/cmdkit/dispatch"
	"github.com/cmdkit/cmdkit/parse"
	"github.com/cmdkit/cmdkit/schema"
)

var iface = schema.MustCompile("{{.Name}}", "synthetic command {{.Name}}")

func run(*parse.Result) error { return nil }

func init() {
	dispatch.Register(dispatch.Command{Name: "{{.Name}}", Schema: iface, Run: run})
}
`))

var prog = filepath.Base(os.Args[0])

func usage() {
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", prog)
	fmt.Fprintf(os.Stderr, "  %s -o PATH PACKAGE..\n", prog)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func expandPackages(spec []string) ([]string, error) {
	// expand "..."
	paths := gotool.ImportPaths(spec)

	var r []string
	for _, path := range paths {
		pkg, err := build.Import(path, ".", 0)
		if _, ok := err.(*build.NoGoError); ok {
			// directory with no Go source files in it
			continue
		}
		if err != nil {
			return nil, err
		}
		if pkg.ImportPath == "" {
			return nil, fmt.Errorf("no import path found: %v", path)
		}
		r = append(r, pkg.ImportPath)
	}
	return r, nil
}

func writeScaffold(dir string, n int) error {
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("syn%04d", i)
		pkgDir := filepath.Join(dir, name)
		if err := os.MkdirAll(pkgDir, 0755); err != nil {
			return err
		}
		f, err := os.Create(filepath.Join(pkgDir, name+".go"))
		if err != nil {
			return err
		}
		data := struct{ Name string }{Name: name}
		if err := genCommand.Execute(f, data); err != nil {
			_ = f.Close()
			return fmt.Errorf("template error: %v", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func process(dst string, imports []string) error {
	dir := filepath.Dir(dst)
	tmp, err := ioutil.TempFile(dir, "temp-gen-commands-")
	if err != nil {
		return err
	}
	closed := false
	removed := false
	defer func() {
		if !closed {
			// silence errcheck
			_ = tmp.Close()
		}
		if !removed {
			// silence errcheck
			_ = os.Remove(tmp.Name())
		}
	}()

	imports, err = expandPackages(imports)
	if err != nil {
		return fmt.Errorf("listing packages: %v", err)
	}

	type state struct {
		Package string
		Imports []string
	}
	s := state{
		Package: *genPackage,
		Imports: imports,
	}
	if err := genImports.Execute(tmp, s); err != nil {
		return fmt.Errorf("template error: %v", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write temp file: %v", err)
	}
	closed = true

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("cannot finalize file: %v", err)
	}
	removed = true

	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix(prog + ": ")

	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *genOutput == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *genPackage == "" {
		log.Fatal("$GOPACKAGE must be set or -package= passed")
	}
	if *scaffold > 0 {
		if *scaffoldDir == "" {
			log.Fatal("-scaffold needs -scaffold-dir")
		}
		if err := writeScaffold(*scaffoldDir, *scaffold); err != nil {
			log.Fatal(err)
		}
	}

	if err := process(*genOutput, flag.Args()); err != nil {
		log.Fatal(err)
	}
}
