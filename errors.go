package structgen

import "github.com/syssam/structgen/compiler/gen"

// Sentinel errors. Every error returned by the generator matches one of
// them with errors.Is.
var (
	// ErrClassNotFound is returned when the root class uid is not a class of the graph.
	ErrClassNotFound = gen.ErrClassNotFound

	// ErrUnresolvedReference is returned when a property or parent ref
	// points at no node of the graph.
	ErrUnresolvedReference = gen.ErrUnresolvedReference

	// ErrCyclicHierarchy is returned when a class is its own ancestor.
	ErrCyclicHierarchy = gen.ErrCyclicHierarchy

	// ErrUnsupportedType is returned for a property range with an unknown tag.
	ErrUnsupportedType = gen.ErrUnsupportedType
)

// Structured errors carrying the failing uid, ref or path.
type (
	ClassNotFoundError       = gen.ClassNotFoundError
	UnresolvedReferenceError = gen.UnresolvedReferenceError
	CyclicHierarchyError     = gen.CyclicHierarchyError
	UnsupportedTypeError     = gen.UnsupportedTypeError
	ConfigError              = gen.ConfigError
)

// IsClassNotFound returns true if the error is a ClassNotFoundError.
func IsClassNotFound(err error) bool { return gen.IsClassNotFound(err) }

// IsUnresolvedReference returns true if the error is an UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool { return gen.IsUnresolvedReference(err) }

// IsCyclicHierarchy returns true if the error is a CyclicHierarchyError.
func IsCyclicHierarchy(err error) bool { return gen.IsCyclicHierarchy(err) }

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool { return gen.IsUnsupportedType(err) }

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool { return gen.IsConfigError(err) }
