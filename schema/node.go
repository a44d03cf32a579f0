package schema

// Kind discriminates the node variants of a schema graph.
type Kind string

// Node kinds.
const (
	KindClass    Kind = "Class"
	KindProperty Kind = "Property"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

type (
	// Node is the wire form of a schema graph element. The Type field selects
	// which of the remaining fields are meaningful: Class nodes use
	// PropertySpecs and ParentRefs, Property nodes use Range.
	Node struct {
		Type          Kind          `json:"type" yaml:"type" msgpack:"type"`
		UID           string        `json:"uid" yaml:"uid" msgpack:"uid"`
		Label         string        `json:"label" yaml:"label" msgpack:"label"`
		PropertySpecs []PropertyRef `json:"propertySpecs,omitempty" yaml:"propertySpecs,omitempty" msgpack:"propertySpecs,omitempty"`
		ParentRefs    []string      `json:"parentRefs,omitempty" yaml:"parentRefs,omitempty" msgpack:"parentRefs,omitempty"`
		Range         *Range        `json:"range,omitempty" yaml:"range,omitempty" msgpack:"range,omitempty"`
	}

	// PropertyRef references a Property node by uid from a property list.
	PropertyRef struct {
		Ref string `json:"ref" yaml:"ref" msgpack:"ref"`
	}

	// Class is an emittable struct type.
	Class struct {
		UID   string
		Label string
		// PropertySpecs is the ordered field list. After flattening it also
		// holds the inherited specs.
		PropertySpecs []PropertyRef
		ParentRefs    []string
	}

	// Property is a single field of a class.
	Property struct {
		UID   string
		Label string
		Range Range
	}
)

// NewClass returns a Class node holding the given property refs.
func NewClass(uid, label string, refs ...string) Node {
	return Node{
		Type:          KindClass,
		UID:           uid,
		Label:         label,
		PropertySpecs: Refs(refs...),
	}
}

// NewSubclass returns a Class node that inherits from the given parents.
func NewSubclass(uid, label string, parents []string, refs ...string) Node {
	n := NewClass(uid, label, refs...)
	n.ParentRefs = append([]string(nil), parents...)
	return n
}

// NewProperty returns a Property node with the given range.
func NewProperty(uid, label string, r Range) Node {
	return Node{
		Type:  KindProperty,
		UID:   uid,
		Label: label,
		Range: &r,
	}
}

// Refs converts property uids to a property list.
func Refs(uids ...string) []PropertyRef {
	if len(uids) == 0 {
		return nil
	}
	refs := make([]PropertyRef, len(uids))
	for i, uid := range uids {
		refs[i] = PropertyRef{Ref: uid}
	}
	return refs
}

// IsClass reports whether the node is a Class node.
func (n Node) IsClass() bool { return n.Type == KindClass }

// IsProperty reports whether the node is a Property node.
func (n Node) IsProperty() bool { return n.Type == KindProperty }

// Class returns a detached Class record for the node. The slices are copied,
// so mutating the record never touches the node.
func (n Node) Class() *Class {
	return &Class{
		UID:           n.UID,
		Label:         n.Label,
		PropertySpecs: append([]PropertyRef(nil), n.PropertySpecs...),
		ParentRefs:    append([]string(nil), n.ParentRefs...),
	}
}

// Property returns a detached Property record for the node. A node without a
// range yields a Property with the zero Range, which no mapping accepts.
func (n Node) Property() *Property {
	p := &Property{UID: n.UID, Label: n.Label}
	if n.Range != nil {
		p.Range = n.Range.clone()
	}
	return p
}
