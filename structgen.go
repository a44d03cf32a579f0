// Package structgen turns schema graphs into Go struct definitions.
//
// A graph is a flat list of class and property nodes. Classes may inherit
// properties from parent classes, and properties may hold nested objects or
// links to other classes. Given a root class, structgen merges the inherited
// properties, maps every property to a Go type and emits one struct per
// distinct shape:
//
//	nodes, err := structgen.LoadFile("graph.json")
//	if err != nil {
//		return err
//	}
//	src, err := structgen.GenerateFromClass(nodes, "C1")
//
// The compiler/gen package holds the generator, compiler/load the graph
// decoders and cmd/structgen the command line tool.
package structgen

import (
	"github.com/syssam/structgen/compiler/gen"
	"github.com/syssam/structgen/compiler/load"
	"github.com/syssam/structgen/schema"
)

// Option configures a generation run.
type Option = gen.Option

// Generator options.
var (
	WithIndent         = gen.WithIndent
	WithLogger         = gen.WithLogger
	WithPackage        = gen.WithPackage
	WithHeader         = gen.WithHeader
	WithExportedFields = gen.WithExportedFields
)

// GenerateFromClass returns the struct definitions reachable from the class
// with the given uid, preceded by the time import when a field is a date.
func GenerateFromClass(nodes []schema.Node, classUID string, opts ...Option) (string, error) {
	return gen.GenerateFromClass(nodes, classUID, opts...)
}

// LoadFile decodes the graph file at path. The format follows the extension:
// .json, .yaml, .yml, .msgpack, .cue or .graphql.
func LoadFile(path string) ([]schema.Node, error) {
	return load.File(path)
}
