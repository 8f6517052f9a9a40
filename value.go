package textmation

import (
	"fmt"
	"image/color"
	"math/bits"
	"strings"
)

// Type identifies a Value variant.
type Type uint8

const (
	TypeInvalid   Type = iota
	TypeNumber         // Number
	TypeString         // String
	TypePoint          // Point
	TypeSize           // Size
	TypeBounds         // Bounds
	TypeColor          // Color
	TypeElement        // ElementRef
	TypePercent        // Percent, resolved against a relative property
	TypeOffset         // Offset, resolved against a relative property
	TypeTween          // Tween, resolved against the compute time
	TypeKeyframes      // Keyframes, resolved against the compute time
	typeCount
)

var typeNames = [typeCount]string{
	TypeInvalid:   "Invalid",
	TypeNumber:    "Number",
	TypeString:    "String",
	TypePoint:     "Point",
	TypeSize:      "Size",
	TypeBounds:    "Bounds",
	TypeColor:     "Color",
	TypeElement:   "Element",
	TypePercent:   "Percent",
	TypeOffset:    "Offset",
	TypeTween:     "Tween",
	TypeKeyframes: "Keyframes",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// TypeSet is a set of value variants.
type TypeSet uint32

// TypesOf returns the set containing ts.
func TypesOf(ts ...Type) TypeSet {
	var s TypeSet
	for _, t := range ts {
		s |= 1 << t
	}
	return s
}

// Has reports whether t is a member of s.
func (s TypeSet) Has(t Type) bool {
	return t < typeCount && s&(1<<t) != 0
}

// Len returns the number of members.
func (s TypeSet) Len() int {
	return bits.OnesCount32(uint32(s))
}

func (s TypeSet) String() string {
	var names []string
	for t := Type(1); t < typeCount; t++ {
		if s.Has(t) {
			names = append(names, t.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// PropertyContext is what a Value sees when it is evaluated through a
// property: the property name, the time of the last compute pass and the
// resolved value of the property it is relative to, if any.
type PropertyContext struct {
	Name     string
	Time     float64
	Relative Value
}

// Value is an immutable typed datum stored in a property. Eval resolves the
// value in the context of the property reading it. Literal variants return
// themselves. The set of variants is closed: only the types of this package
// implement Value.
type Value interface {
	Type() Type
	Eval(ctx PropertyContext) Value
	isValue()
}

// TypeOf returns the variant of v. It is decided by the concrete type, so nil
// and any type embedding a variant report TypeInvalid.
func TypeOf(v Value) Type {
	switch v.(type) {
	case Number:
		return TypeNumber
	case String:
		return TypeString
	case Point:
		return TypePoint
	case Size:
		return TypeSize
	case Bounds:
		return TypeBounds
	case Color:
		return TypeColor
	case ElementRef:
		return TypeElement
	case Percent:
		return TypePercent
	case Offset:
		return TypeOffset
	case Tween:
		return TypeTween
	case Keyframes:
		return TypeKeyframes
	}
	return TypeInvalid
}

// variantsOf returns the variant of v together with the variants of the
// values a Tween or Keyframes interpolates between.
func variantsOf(v Value) TypeSet {
	s := TypesOf(TypeOf(v))
	switch v := v.(type) {
	case Tween:
		s |= variantsOf(v.From) | variantsOf(v.To)
	case Keyframes:
		for _, f := range v.Frames {
			s |= variantsOf(f.Value)
		}
	}
	return s
}

// relativeTypes are the variants that only have a meaning on a property
// linked to another one.
var relativeTypes = TypesOf(TypePercent, TypeOffset)

// Number is a numeric literal.
type Number float64

func (Number) Type() Type                  { return TypeNumber }
func (Number) isValue()                    {}
func (n Number) Eval(PropertyContext) Value { return n }
func (n Number) String() string             { return fmt.Sprintf("Number(%g)", float64(n)) }

// String is a text literal.
type String string

func (String) Type() Type                  { return TypeString }
func (String) isValue()                    {}
func (s String) Eval(PropertyContext) Value { return s }

func (Point) Type() Type                  { return TypePoint }
func (Point) isValue()                    {}
func (p Point) Eval(PropertyContext) Value { return p }

func (Size) Type() Type                  { return TypeSize }
func (Size) isValue()                    {}
func (s Size) Eval(PropertyContext) Value { return s }

func (Bounds) Type() Type                  { return TypeBounds }
func (Bounds) isValue()                    {}
func (b Bounds) Eval(PropertyContext) Value { return b }

func (Color) Type() Type                  { return TypeColor }
func (Color) isValue()                    {}
func (c Color) Eval(PropertyContext) Value { return c }

// ElementRef refers to another element of the same tree by ID.
type ElementRef struct {
	ID ElementID
}

func (ElementRef) Type() Type                  { return TypeElement }
func (ElementRef) isValue()                    {}
func (r ElementRef) Eval(PropertyContext) Value { return r }

// ToValue boxes a Go literal into its Value variant. Values are returned
// unchanged; integer and float kinds become Number, strings become String and
// image/color colors become Color.
func ToValue(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		if TypeOf(v) == TypeInvalid {
			break
		}
		return v, nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(v), nil
	case int:
		return Number(v), nil
	case int8:
		return Number(v), nil
	case int16:
		return Number(v), nil
	case int32:
		return Number(v), nil
	case int64:
		return Number(v), nil
	case uint:
		return Number(v), nil
	case uint8:
		return Number(v), nil
	case uint16:
		return Number(v), nil
	case uint32:
		return Number(v), nil
	case uint64:
		return Number(v), nil
	case string:
		return String(v), nil
	case color.Color:
		return ColorOf(v), nil
	}
	return nil, fmt.Errorf("%w: cannot convert %T to a value", ErrTypeConstraint, v)
}

// coerce boxes v for property name and checks every variant it carries,
// including the ends of a Tween and the values of Keyframes, against
// allowed. A zero allowed set accepts the variants of the boxed value itself.
// Percent and Offset are only accepted when linked is set. coerce returns the
// boxed value and the allowed set it was checked against.
func coerce(name string, v any, allowed TypeSet, linked bool) (Value, TypeSet, error) {
	val, err := ToValue(v)
	if err != nil {
		return nil, allowed, &TypeConstraintError{Property: name, GoType: fmt.Sprintf("%T", v), Allowed: allowed}
	}
	vs := variantsOf(val)
	if allowed == 0 {
		allowed = vs &^ TypesOf(TypeInvalid)
	}
	effective := allowed
	if !linked {
		effective &^= relativeTypes
	}
	if bad := vs &^ effective; bad != 0 {
		return nil, allowed, &TypeConstraintError{Property: name, Got: Type(bits.TrailingZeros32(uint32(bad))), Allowed: effective}
	}
	return val, allowed, nil
}
