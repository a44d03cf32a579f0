// Package gen compiles a schema graph into Go struct definitions.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	[]schema.Node
//	        ↓
//	   Context (uid lookup tables)
//	        ↓
//	   Flatten (inherited property specs merged into every class)
//	        ↓
//	   emitter (one struct per label, MapType per field)
//	        ↓
//	   Result (Text, RenderFile, FormatSource)
//
// Each call to Generate or GenerateFromClass builds a fresh Context, so runs
// share no state and may execute concurrently.
//
// # Type Mapping
//
//	Range                     Go type
//	Boolean                   bool
//	Text, Enum                string
//	Date                      time.Time (adds the time import)
//	Number Int..Int64         int, int8, int16, int32, int64
//	Number Float32, Float64   float32, float64
//	Number without format     float32
//	NestedObject              the property label
//	LinkedClass               the label of the referenced class
//
// # Error Handling
//
// Every failure aborts the run. The errors carry the offending uid or tag:
//
//   - ClassNotFoundError: the root class is not in the graph
//   - UnresolvedReferenceError: a property or class ref has no node
//   - CyclicHierarchyError: an ancestor chain loops back on itself
//   - UnsupportedTypeError: a range tag outside the recognized set
//   - ConfigError: an invalid Option
//
// Example error handling:
//
//	out, err := gen.GenerateFromClass(nodes, "C1")
//	switch {
//	case errors.Is(err, gen.ErrClassNotFound):
//	    // unknown root
//	case gen.IsUnresolvedReference(err):
//	    // broken schema
//	}
package gen
