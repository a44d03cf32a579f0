package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the failure classes of a generation run.
var (
	// ErrClassNotFound indicates the root class is absent from the graph.
	ErrClassNotFound = errors.New("structgen: class not found")
	// ErrUnresolvedReference indicates a property or class ref has no node.
	ErrUnresolvedReference = errors.New("structgen: unresolved reference")
	// ErrCyclicHierarchy indicates an ancestor chain that loops back on itself.
	ErrCyclicHierarchy = errors.New("structgen: cyclic hierarchy")
	// ErrUnsupportedType indicates a range tag outside the recognized set.
	ErrUnsupportedType = errors.New("structgen: unsupported type")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("structgen: missing configuration")
)

// Reference kinds reported by UnresolvedReferenceError.
const (
	RefProperty = "property"
	RefClass    = "class"
)

// ClassNotFoundError is returned when the requested root class uid is not a
// Class node of the graph.
type ClassNotFoundError struct {
	UID string
}

// Error implements the error interface.
func (e *ClassNotFoundError) Error() string {
	return fmt.Sprintf("structgen: could not find class %q in graph", e.UID)
}

// Is reports whether the target matches the sentinel error for ClassNotFoundError.
func (e *ClassNotFoundError) Is(target error) bool {
	return target == ErrClassNotFound
}

// NewClassNotFoundError creates a new ClassNotFoundError.
func NewClassNotFoundError(uid string) *ClassNotFoundError {
	return &ClassNotFoundError{UID: uid}
}

// UnresolvedReferenceError represents a dangling property or class reference.
type UnresolvedReferenceError struct {
	Kind  string // RefProperty or RefClass
	Ref   string // The uid that did not resolve
	Owner string // Label of the node holding the reference
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	var b strings.Builder
	b.WriteString("structgen: unresolved ")
	if e.Kind != "" {
		b.WriteString(e.Kind)
		b.WriteString(" ")
	}
	b.WriteString("reference ")
	fmt.Fprintf(&b, "%q", e.Ref)
	if e.Owner != "" {
		b.WriteString(" in ")
		b.WriteString(e.Owner)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnresolvedReferenceError.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// NewUnresolvedReferenceError creates a new UnresolvedReferenceError.
func NewUnresolvedReferenceError(kind, ref, owner string) *UnresolvedReferenceError {
	return &UnresolvedReferenceError{
		Kind:  kind,
		Ref:   ref,
		Owner: owner,
	}
}

// CyclicHierarchyError represents an ancestor chain that revisits a class
// already on the resolution path.
type CyclicHierarchyError struct {
	// Path holds the class uids of the cycle. The first uid is repeated at the end.
	Path []string
}

// Error implements the error interface.
func (e *CyclicHierarchyError) Error() string {
	if len(e.Path) == 0 {
		return "structgen: cyclic hierarchy"
	}
	return "structgen: cyclic hierarchy: " + strings.Join(e.Path, " -> ")
}

// Is reports whether the target matches the sentinel error for CyclicHierarchyError.
func (e *CyclicHierarchyError) Is(target error) bool {
	return target == ErrCyclicHierarchy
}

// NewCyclicHierarchyError creates a new CyclicHierarchyError.
func NewCyclicHierarchyError(path ...string) *CyclicHierarchyError {
	return &CyclicHierarchyError{Path: path}
}

// UnsupportedTypeError represents a range tag the type mapper does not know.
type UnsupportedTypeError struct {
	Tag      string
	Property string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Property != "" {
		return fmt.Sprintf("structgen: not expecting type %q on property %s", e.Tag, e.Property)
	}
	return fmt.Sprintf("structgen: not expecting type %q", e.Tag)
}

// Is reports whether the target matches the sentinel error for UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError.
func NewUnsupportedTypeError(tag, property string) *UnsupportedTypeError {
	return &UnsupportedTypeError{
		Tag:      tag,
		Property: property,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("structgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("structgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// IsClassNotFound reports whether the error is a ClassNotFoundError.
func IsClassNotFound(err error) bool {
	var e *ClassNotFoundError
	return errors.As(err, &e)
}

// IsUnresolvedReference reports whether the error is an UnresolvedReferenceError.
func IsUnresolvedReference(err error) bool {
	var e *UnresolvedReferenceError
	return errors.As(err, &e)
}

// IsCyclicHierarchy reports whether the error is a CyclicHierarchyError.
func IsCyclicHierarchy(err error) bool {
	var e *CyclicHierarchyError
	return errors.As(err, &e)
}

// IsUnsupportedType reports whether the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var e *UnsupportedTypeError
	return errors.As(err, &e)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
