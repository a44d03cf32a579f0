package schema

// RangeType is the tag of a property range.
type RangeType string

// Range tags.
const (
	TypeBoolean      RangeType = "Boolean"
	TypeText         RangeType = "Text"
	TypeEnum         RangeType = "Enum"
	TypeDate         RangeType = "Date"
	TypeNumber       RangeType = "Number"
	TypeNestedObject RangeType = "NestedObject"
	TypeLinkedClass  RangeType = "LinkedClass"
)

// String returns the tag name.
func (t RangeType) String() string { return string(t) }

// Valid reports if the tag is one of the recognized range tags.
func (t RangeType) Valid() bool {
	switch t {
	case TypeBoolean, TypeText, TypeEnum, TypeDate, TypeNumber, TypeNestedObject, TypeLinkedClass:
		return true
	}
	return false
}

// NumberFormat is the storage format of a Number range.
type NumberFormat string

// Number formats. An empty or unknown format is treated as FormatFloat32.
const (
	FormatInt     NumberFormat = "Int"
	FormatInt8    NumberFormat = "Int8"
	FormatInt16   NumberFormat = "Int16"
	FormatInt32   NumberFormat = "Int32"
	FormatInt64   NumberFormat = "Int64"
	FormatFloat32 NumberFormat = "Float32"
	FormatFloat64 NumberFormat = "Float64"
)

// DefaultNumberFormat is used when a Number range has no recognized format.
const DefaultNumberFormat = FormatFloat32

// String returns the format name.
func (f NumberFormat) String() string { return string(f) }

// IsInteger reports if the format is a fixed-width integer format.
func (f NumberFormat) IsInteger() bool {
	switch f {
	case FormatInt, FormatInt8, FormatInt16, FormatInt32, FormatInt64:
		return true
	}
	return false
}

// IsFloat reports if the format is a floating-point format.
func (f NumberFormat) IsFloat() bool {
	return f == FormatFloat32 || f == FormatFloat64
}

// Range is the declared type of a property.
type Range struct {
	Type RangeType `json:"type" yaml:"type" msgpack:"type"`
	// Format applies to Number ranges.
	Format NumberFormat `json:"format,omitempty" yaml:"format,omitempty" msgpack:"format,omitempty"`
	// Label and PropertySpecs describe the anonymous class of a NestedObject.
	Label         string        `json:"label,omitempty" yaml:"label,omitempty" msgpack:"label,omitempty"`
	PropertySpecs []PropertyRef `json:"propertySpecs,omitempty" yaml:"propertySpecs,omitempty" msgpack:"propertySpecs,omitempty"`
	// Ref is the class uid of a LinkedClass.
	Ref string `json:"ref,omitempty" yaml:"ref,omitempty" msgpack:"ref,omitempty"`
}

// Boolean returns a Boolean range.
func Boolean() Range { return Range{Type: TypeBoolean} }

// Text returns a Text range.
func Text() Range { return Range{Type: TypeText} }

// Enum returns an Enum range.
func Enum() Range { return Range{Type: TypeEnum} }

// Date returns a Date range.
func Date() Range { return Range{Type: TypeDate} }

// Number returns a Number range with the given format.
func Number(format NumberFormat) Range { return Range{Type: TypeNumber, Format: format} }

// Nested returns a NestedObject range holding an anonymous class.
func Nested(label string, refs ...string) Range {
	return Range{Type: TypeNestedObject, Label: label, PropertySpecs: Refs(refs...)}
}

// Linked returns a LinkedClass range referencing the class uid.
func Linked(ref string) Range { return Range{Type: TypeLinkedClass, Ref: ref} }

func (r Range) clone() Range {
	r.PropertySpecs = append([]PropertyRef(nil), r.PropertySpecs...)
	return r
}
