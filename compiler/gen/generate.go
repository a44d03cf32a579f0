package gen

import (
	"strings"

	"github.com/google/uuid"

	"github.com/syssam/structgen/schema"
)

// TimeImport is the import statement prepended to text output that uses
// the time package.
const TimeImport = `import "time"`

// Result holds the structs emitted for a root class.
type Result struct {
	// Structs in emission order. The root struct comes first.
	Structs []*Struct
	// DateUsed is set when a field has the time.Time type.
	DateUsed bool

	indent string
}

// Root returns the name of the root struct.
func (r *Result) Root() string {
	if len(r.Structs) == 0 {
		return ""
	}
	return r.Structs[0].Name
}

// Text renders the structs separated by blank lines, preceded by the time
// import when a date type was used:
//
//	import "time"
//
//	type Person struct {
//	  Age int32
//	  Born time.Time
//	}
func (r *Result) Text() string {
	return r.text(nil)
}

// text renders the structs, writing the fields marked in pointers with a
// pointer type.
func (r *Result) text(pointers fieldSet) string {
	indent := r.indent
	if indent == "" {
		indent = DefaultIndent
	}
	var b strings.Builder
	if r.DateUsed {
		b.WriteString(TimeImport)
		b.WriteString("\n\n")
	}
	for i, s := range r.Structs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("type ")
		b.WriteString(s.Name)
		b.WriteString(" struct {\n")
		for i, f := range s.Fields {
			b.WriteString(indent)
			b.WriteString(f.Name)
			b.WriteString(" ")
			if pointers.has(s.Name, i) {
				b.WriteString("*")
			}
			b.WriteString(f.Type.Ident)
			b.WriteString("\n")
		}
		b.WriteString("}")
	}
	return b.String()
}

// fieldSet holds fields by struct name and field index.
type fieldSet map[string]map[int]bool

func (s fieldSet) has(name string, i int) bool { return s[name][i] }

// RecursiveFields returns the fields whose struct type leads back to the
// struct holding them, e.g. Next in "type Node struct { Next Node }". Go
// rejects such value cycles, so rendered files give these fields a pointer
// type. Every struct of the cycle is in the same result, since a struct is
// emitted together with everything it reaches.
func (r *Result) RecursiveFields() map[string]map[int]bool {
	edges := make(map[string][]string, len(r.Structs))
	for _, s := range r.Structs {
		edges[s.Name] = nil
	}
	for _, s := range r.Structs {
		for _, f := range s.Fields {
			if _, ok := edges[f.Type.Ident]; ok && f.Type.PkgPath == "" {
				edges[s.Name] = append(edges[s.Name], f.Type.Ident)
			}
		}
	}
	reaches := func(from, to string) bool {
		seen := map[string]bool{from: true}
		stack := []string{from}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n == to {
				return true
			}
			for _, next := range edges[n] {
				if !seen[next] {
					seen[next] = true
					stack = append(stack, next)
				}
			}
		}
		return false
	}
	set := make(fieldSet)
	for _, s := range r.Structs {
		for i, f := range s.Fields {
			if _, ok := edges[f.Type.Ident]; !ok || f.Type.PkgPath != "" {
				continue
			}
			if reaches(f.Type.Ident, s.Name) {
				if set[s.Name] == nil {
					set[s.Name] = make(map[int]bool)
				}
				set[s.Name][i] = true
			}
		}
	}
	return set
}

// Without returns a copy of the result that omits the named structs.
// DateUsed is recomputed from the remaining fields.
func (r *Result) Without(names map[string]bool) *Result {
	out := &Result{indent: r.indent}
	for _, s := range r.Structs {
		if names[s.Name] {
			continue
		}
		out.Structs = append(out.Structs, s)
		for _, f := range s.Fields {
			if f.Type.PkgPath == TypeTime.PkgPath && f.Type.Ident == TypeTime.Ident {
				out.DateUsed = true
			}
		}
	}
	return out
}

// Generate runs the pipeline for the class with the given uid: it indexes
// the graph, flattens every class hierarchy, and emits the root class with
// every nested and linked struct it reaches. Any error aborts the run and
// no partial result is returned.
func Generate(nodes []schema.Node, classUID string, opts ...Option) (*Result, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	cfg.Logger = cfg.logger().With("run", uuid.NewString(), "class", classUID)
	c := NewContext(nodes, cfg)
	if err := Flatten(c); err != nil {
		return nil, err
	}
	root, ok := c.Class(classUID)
	if !ok {
		return nil, NewClassNotFoundError(classUID)
	}
	e := newEmitter(c)
	if err := e.emit(root.Label, root.PropertySpecs); err != nil {
		return nil, err
	}
	c.log.Debug("generation done", "structs", len(e.structs), "date_used", c.dateUsed)
	return &Result{
		Structs:  e.structs,
		DateUsed: c.dateUsed,
		indent:   cfg.Indent,
	}, nil
}

// GenerateFromClass is like Generate but returns the rendered text.
func GenerateFromClass(nodes []schema.Node, classUID string, opts ...Option) (string, error) {
	res, err := Generate(nodes, classUID, opts...)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
