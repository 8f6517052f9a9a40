package textmation

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this package matches exactly one
// of them via errors.Is.
var (
	// ErrTypeConstraint is returned when a value's variant is outside the
	// allowed type set of a property, or a Go value cannot be boxed.
	ErrTypeConstraint = errors.New("textmation: type constraint violation")

	// ErrDuplicateProperty is returned by Define for a name already in use.
	ErrDuplicateProperty = errors.New("textmation: duplicate property")

	// ErrUnknownProperty is returned when a property name is not defined.
	ErrUnknownProperty = errors.New("textmation: unknown property")

	// ErrOwnership is returned when an element cannot be added as a child.
	ErrOwnership = errors.New("textmation: ownership violation")

	// ErrMissingRenderHandler is returned when the renderer meets an element
	// kind it has no handler for.
	ErrMissingRenderHandler = errors.New("textmation: missing render handler")

	// ErrInvalidRoot is returned when rendering starts from a non-Scene.
	ErrInvalidRoot = errors.New("textmation: render root is not a scene")

	// ErrInvalidElement is returned when a property or tree operation is
	// made through the zero Element.
	ErrInvalidElement = errors.New("textmation: invalid element")
)

// TypeConstraintError reports a value whose variant is not allowed by a
// property.
type TypeConstraintError struct {
	Property string
	Got      Type
	GoType   string // set when a Go value could not be boxed at all
	Allowed  TypeSet
}

func (e *TypeConstraintError) Error() string {
	got := e.Got.String()
	if e.GoType != "" {
		got = e.GoType
	}
	return fmt.Sprintf("textmation: property %q: value of type %s not in %s", e.Property, got, e.Allowed)
}

func (e *TypeConstraintError) Unwrap() error { return ErrTypeConstraint }

// MissingRenderHandlerError names the element kind the renderer could not
// dispatch.
type MissingRenderHandlerError struct {
	Kind Kind
}

func (e *MissingRenderHandlerError) Error() string {
	return fmt.Sprintf("textmation: no render handler for %s", e.Kind)
}

func (e *MissingRenderHandlerError) Unwrap() error { return ErrMissingRenderHandler }

func unknownProperty(e Element, name string) error {
	return fmt.Errorf("%w: %s has no property %q", ErrUnknownProperty, e, name)
}

func invalidElement(name string) error {
	return fmt.Errorf("%w: no property %q on the zero element", ErrInvalidElement, name)
}
