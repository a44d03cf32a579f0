package gen

import (
	"strings"

	"github.com/syssam/structgen/schema"
)

// GoType is a mapped Go type.
type GoType struct {
	// Ident is the type as written in source, e.g. "int32" or "time.Time".
	Ident string
	// PkgPath is the import path of a qualified type, e.g. "time".
	PkgPath string
}

// String returns the type as written in source.
func (t GoType) String() string { return t.Ident }

// Name returns the unqualified type name.
func (t GoType) Name() string {
	if i := strings.LastIndexByte(t.Ident, '.'); i >= 0 {
		return t.Ident[i+1:]
	}
	return t.Ident
}

// Predeclared and library types produced by the mapper.
var (
	TypeBool   = GoType{Ident: "bool"}
	TypeString = GoType{Ident: "string"}
	TypeTime   = GoType{Ident: "time.Time", PkgPath: "time"}
)

// numberTypes maps a Number format to its Go type.
var numberTypes = map[schema.NumberFormat]GoType{
	schema.FormatInt:     {Ident: "int"},
	schema.FormatInt8:    {Ident: "int8"},
	schema.FormatInt16:   {Ident: "int16"},
	schema.FormatInt32:   {Ident: "int32"},
	schema.FormatInt64:   {Ident: "int64"},
	schema.FormatFloat32: {Ident: "float32"},
	schema.FormatFloat64: {Ident: "float64"},
}

// NumberType returns the Go type of a Number format. Missing and unknown
// formats map to the float32 type.
func NumberType(format schema.NumberFormat) GoType {
	if t, ok := numberTypes[format]; ok {
		return t
	}
	return numberTypes[schema.DefaultNumberFormat]
}

// MapType returns the Go type of the property range. Mapping a Date range
// marks the context as needing the time import. A NestedObject maps to the
// property label, which is the name its anonymous struct is emitted under,
// and a LinkedClass maps to the label of the referenced class.
func (c *Context) MapType(p *schema.Property) (GoType, error) {
	switch r := p.Range; r.Type {
	case schema.TypeBoolean:
		return TypeBool, nil
	case schema.TypeText, schema.TypeEnum:
		return TypeString, nil
	case schema.TypeDate:
		c.dateUsed = true
		return TypeTime, nil
	case schema.TypeNumber:
		return NumberType(r.Format), nil
	case schema.TypeNestedObject:
		return GoType{Ident: c.typeName(p.Label)}, nil
	case schema.TypeLinkedClass:
		cls, err := c.class(r.Ref, p.Label)
		if err != nil {
			return GoType{}, err
		}
		return GoType{Ident: c.typeName(cls.Label)}, nil
	default:
		return GoType{}, NewUnsupportedTypeError(string(r.Type), p.Label)
	}
}
