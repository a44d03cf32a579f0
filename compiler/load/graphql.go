package load

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/structgen/schema"
)

// scalarRanges maps GraphQL scalars to ranges. Custom scalars that are not
// listed become Text.
var scalarRanges = map[string]schema.Range{
	"Boolean":   schema.Boolean(),
	"String":    schema.Text(),
	"ID":        schema.Text(),
	"Int":       schema.Number(schema.FormatInt32),
	"Float":     schema.Number(schema.FormatFloat64),
	"Date":      schema.Date(),
	"DateTime":  schema.Date(),
	"Time":      schema.Date(),
	"Timestamp": schema.Date(),
	"Long":      schema.Number(schema.FormatInt64),
}

// FromGraphQL converts a GraphQL SDL document to schema nodes.
//
// Object, interface and input types become classes labeled with the type
// name, and each field a property with the uid "Type.field" and a
// title-cased label. Implemented interfaces become parent refs. Enum fields
// map to Enum, object fields to LinkedClass. List types map to their
// element type. Union types have no class of their own, so fields of a
// union type are skipped. Directives are ignored.
func FromGraphQL(name string, src []byte) ([]schema.Node, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: string(src)})
	if err != nil {
		return nil, fmt.Errorf("parse graphql: %w", err)
	}
	defs := append(ast.DefinitionList{}, doc.Definitions...)
	defs = append(defs, doc.Extensions...)
	kinds := make(map[string]ast.DefinitionKind, len(defs))
	for _, def := range defs {
		kinds[def.Name] = def.Kind
	}

	title := cases.Title(language.English, cases.NoLower)
	var (
		nodes   []schema.Node
		classes = make(map[string]int)
	)
	for _, def := range defs {
		switch def.Kind {
		case ast.Object, ast.Interface, ast.InputObject:
		default:
			continue
		}
		i, ok := classes[def.Name]
		if !ok {
			i = len(nodes)
			classes[def.Name] = i
			nodes = append(nodes, schema.NewSubclass(def.Name, def.Name, def.Interfaces))
		} else {
			nodes[i].ParentRefs = append(nodes[i].ParentRefs, def.Interfaces...)
		}
		for _, f := range def.Fields {
			r, ok := graphQLRange(f.Type, kinds)
			if !ok {
				continue
			}
			uid := def.Name + "." + f.Name
			nodes[i].PropertySpecs = append(nodes[i].PropertySpecs, schema.PropertyRef{Ref: uid})
			nodes = append(nodes, schema.NewProperty(uid, title.String(f.Name), r))
		}
	}
	return nodes, nil
}

// graphQLRange returns the range of a field type. It reports false for
// types that map to no range.
func graphQLRange(t *ast.Type, kinds map[string]ast.DefinitionKind) (schema.Range, bool) {
	for t.Elem != nil {
		t = t.Elem
	}
	name := t.NamedType
	if r, ok := scalarRanges[name]; ok {
		return r, true
	}
	switch kinds[name] {
	case ast.Enum:
		return schema.Enum(), true
	case ast.Scalar:
		return schema.Text(), true
	case ast.Union:
		return schema.Range{}, false
	default:
		return schema.Linked(name), true
	}
}
