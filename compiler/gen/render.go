package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/tools/imports"
)

// RenderFile renders the result as a complete Go source file using the
// package and header of the config. Jennifer tracks the imports, so the
// time import is only added when a field uses it. Fields listed by
// Result.RecursiveFields are rendered as pointers.
func RenderFile(r *Result, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	pointers := fieldSet(r.RecursiveFields())
	f := newFile(cfg)
	for _, s := range r.Structs {
		f.Type().Id(s.Name).StructFunc(func(group *jen.Group) {
			for i, fd := range s.Fields {
				field := group.Id(fd.Name)
				if pointers.has(s.Name, i) {
					field.Op("*")
				}
				field.Add(goType(fd.Type))
			}
		})
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", r.Root(), err)
	}
	return buf.Bytes(), nil
}

// FormatSource wraps the text output in a package clause and formats it
// the way goimports does. Like RenderFile, it gives recursive fields a
// pointer type.
func FormatSource(r *Result, cfg *Config) ([]byte, error) {
	if cfg == nil {
		cfg = MustNewConfig()
	}
	var buf bytes.Buffer
	if cfg.Header != "" {
		fmt.Fprintf(&buf, "// %s\n\n", cfg.Header)
	}
	fmt.Fprintf(&buf, "package %s\n\n", cfg.Package)
	buf.WriteString(r.text(fieldSet(r.RecursiveFields())))
	buf.WriteString("\n")
	out, err := imports.Process(FileName(r.Root()), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", r.Root(), err)
	}
	return out, nil
}

// FileName returns the file name for the struct label, e.g. "order_item.go"
// for "OrderItem".
func FileName(label string) string {
	return inflect.Underscore(label) + ".go"
}

// newFile creates a new Jennifer file with the header comment.
func newFile(cfg *Config) *jen.File {
	f := jen.NewFile(cfg.Package)
	if cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}
	return f
}

// goType returns the Jennifer code for a mapped type.
func goType(t GoType) jen.Code {
	if t.PkgPath != "" {
		return jen.Qual(t.PkgPath, t.Name())
	}
	return jen.Id(t.Ident)
}
