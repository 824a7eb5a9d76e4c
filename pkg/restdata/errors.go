package restdata

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrMalformedXML is matched by errors for text that does not parse as a
	// single well-formed XML document.
	ErrMalformedXML = errors.New("malformed xml")
	// ErrMalformedStructure is matched by errors for dict or list containers
	// whose children are not the expected wrapper elements.
	ErrMalformedStructure = errors.New("malformed structure")
	// ErrMissingField is matched by record lookups of names that are not
	// present. It never wraps a malformed-* error.
	ErrMissingField = errors.New("missing field")
)

// SyntaxError reports input that could not be parsed.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return "malformed xml: " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Is reports ErrMalformedXML.
func (e *SyntaxError) Is(target error) bool { return target == ErrMalformedXML }

// StructureError reports a container child that violates the wrapper
// contract: a non-key under a dict, a non-item under a list, or a key
// without a name attribute.
type StructureError struct {
	Container Role   // role of the enclosing container
	Tag       string // expanded name of the offending child
	Expected  Role   // role the child should have had
	Detail    string
}

func (e *StructureError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed structure: <%s> in %s: %s", e.Tag, e.Container, e.Detail)
	}
	return fmt.Sprintf("malformed structure: <%s> in %s, expected %s", e.Tag, e.Container, e.Expected)
}

// Is reports ErrMalformedStructure.
func (e *StructureError) Is(target error) bool { return target == ErrMalformedStructure }

// MissingFieldError reports a record lookup of a name that is not present.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Name)
}

// Is reports ErrMissingField.
func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }
