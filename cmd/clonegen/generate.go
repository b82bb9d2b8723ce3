package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

const dupeImportPath = "github.com/zoobzio/dupe"

var errNotErased = errors.New("interface does not embed dupe.AnyCloner")

// ifaceDecl pairs an interface declaration with the dupe import spelling
// of its declaring file, so embeds of AnyCloner can be resolved against
// the right qualifier.
type ifaceDecl struct {
	typ      *ast.InterfaceType
	dupeName string // local name of the dupe import; "" when absent or dot-imported
	dupeDot  bool
}

// sourcePackage is the parsed view of one Go package: its name and the
// interface declarations found across its files.
type sourcePackage struct {
	Name       string
	interfaces map[string]ifaceDecl
}

// loadPackage parses every non-test .go file in dir.
func loadPackage(dir string) (*sourcePackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pkg := &sourcePackage{interfaces: make(map[string]ifaceDecl)}
	fset := token.NewFileSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pkg.addFile(file)
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("no Go source found in %s", dir)
	}
	return pkg, nil
}

// parseSource parses a single in-memory file. Used by tests.
func parseSource(filename, src string) (*sourcePackage, error) {
	file, err := parser.ParseFile(token.NewFileSet(), filename, src, 0)
	if err != nil {
		return nil, err
	}
	pkg := &sourcePackage{interfaces: make(map[string]ifaceDecl)}
	pkg.addFile(file)
	return pkg, nil
}

func (p *sourcePackage) addFile(file *ast.File) {
	p.Name = file.Name.Name
	dupeName, dupeDot := dupeImport(file)
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if it, ok := ts.Type.(*ast.InterfaceType); ok {
				p.interfaces[ts.Name.Name] = ifaceDecl{typ: it, dupeName: dupeName, dupeDot: dupeDot}
			}
		}
	}
}

// dupeImport reports how file refers to the dupe package: the local
// qualifier, or dot-imported. A blank import counts as absent.
func dupeImport(file *ast.File) (localName string, dot bool) {
	for _, imp := range file.Imports {
		if strings.Trim(imp.Path.Value, `"`) != dupeImportPath {
			continue
		}
		if imp.Name == nil {
			return "dupe", false
		}
		switch imp.Name.Name {
		case ".":
			return "", true
		case "_":
			return "", false
		}
		return imp.Name.Name, false
	}
	return "", false
}

// erased reports whether the named interface embeds dupe.AnyCloner,
// directly or through another interface declared in the same package.
// AnyCloner from any other package does not count.
func (p *sourcePackage) erased(name string, seen map[string]bool) bool {
	if seen[name] {
		return false
	}
	seen[name] = true

	decl, ok := p.interfaces[name]
	if !ok {
		return false
	}
	for _, field := range decl.typ.Methods.List {
		if len(field.Names) > 0 {
			continue // method, not an embedded interface
		}
		switch e := field.Type.(type) {
		case *ast.Ident:
			if e.Name == "AnyCloner" && decl.dupeDot {
				return true
			}
			if p.erased(e.Name, seen) {
				return true
			}
		case *ast.SelectorExpr:
			qual, ok := e.X.(*ast.Ident)
			if ok && e.Sel.Name == "AnyCloner" && decl.dupeName != "" && qual.Name == decl.dupeName {
				return true
			}
		}
	}
	return false
}

// handleTemplate expands to one handle type per interface: an embedding
// wrapper that forwards the interface's method set and adds the one-line
// Clone delegation to the erased entry point.
var handleTemplate = template.Must(template.New("handles").Parse(`// Code generated by clonegen. DO NOT EDIT.

package {{.Package}}

import "github.com/zoobzio/dupe"
{{range .Interfaces}}
// {{.}}Handle is an owned handle for {{.}} values. It forwards the full
// {{.}} method set and satisfies dupe.Cloner[{{.}}Handle].
type {{.}}Handle struct {
	{{.}}
}

// Clone returns a handle holding an independent duplicate of the held value.
func (h {{.}}Handle) Clone() {{.}}Handle {
	return {{.}}Handle{ {{.}}: dupe.CloneBox(h.{{.}}) }
}
{{end}}`))

type templateData struct {
	Package    string
	Interfaces []string
}

// generate emits gofmt-formatted handle declarations for the named
// interfaces. Each interface must exist in pkg and embed dupe.AnyCloner;
// generation for one name is independent of the others. Repeated names
// produce a single handle.
func generate(pkg *sourcePackage, names []string) ([]byte, error) {
	seen := make(map[string]bool, len(names))
	uniq := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if _, ok := pkg.interfaces[name]; !ok {
			return nil, fmt.Errorf("interface %s not found in package %s", name, pkg.Name)
		}
		if !pkg.erased(name, make(map[string]bool)) {
			return nil, fmt.Errorf("%s: %w", name, errNotErased)
		}
		uniq = append(uniq, name)
	}

	var buf bytes.Buffer
	if err := handleTemplate.Execute(&buf, templateData{Package: pkg.Name, Interfaces: uniq}); err != nil {
		return nil, err
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return out, nil
}
