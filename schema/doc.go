// Package schema provides the node model for graph-based schema descriptions.
//
// A schema graph is a flat list of typed nodes. Class nodes describe the
// structs to generate and Property nodes describe their fields:
//
//	nodes := []schema.Node{
//	    schema.NewClass("C1", "Person", "P1", "P2"),
//	    schema.NewProperty("P1", "Age", schema.Number(schema.FormatInt32)),
//	    schema.NewProperty("P2", "Born", schema.Date()),
//	}
//
// Classes refer to their properties through [PropertyRef] entries and to
// their ancestors through parent references. A property's [Range] declares
// its type:
//
//	schema.Boolean()                     // bool
//	schema.Text()                        // string
//	schema.Enum()                        // string
//	schema.Date()                        // time.Time
//	schema.Number(schema.FormatInt64)    // int64
//	schema.Nested("Address", "P3", "P4") // anonymous class, emitted as Address
//	schema.Linked("C2")                  // reference to another class
//
// The same shapes decode from JSON, YAML and MessagePack:
//
//	{"type": "Class", "uid": "C1", "label": "Person",
//	 "propertySpecs": [{"ref": "P1"}], "parentRefs": ["C0"]}
//	{"type": "Property", "uid": "P1", "label": "Age",
//	 "range": {"type": "Number", "format": "Int32"}}
package schema
