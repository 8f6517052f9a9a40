package textmation

import "fmt"

// Percent is a value relative to another property. Evaluated against a
// Number, Size or Point it scales that value by p/100. Without a relative
// value it evaluates to the fraction p/100.
type Percent float64

func (Percent) Type() Type { return TypePercent }
func (Percent) isValue()   {}

func (p Percent) Eval(ctx PropertyContext) Value {
	f := float64(p) / 100
	switch rel := ctx.Relative.(type) {
	case Number:
		return Number(float64(rel) * f)
	case Size:
		return rel.Scale(f)
	case Point:
		return rel.Scale(f)
	}
	return Number(f)
}

func (p Percent) String() string { return fmt.Sprintf("%g%%", float64(p)) }

// Offset is a position relative to another property: the relative Point (or
// the origin of relative Bounds) moved by (DX, DY). Without a usable relative
// value it evaluates to Point{DX, DY}.
type Offset struct {
	DX, DY float64
}

func (Offset) Type() Type { return TypeOffset }
func (Offset) isValue()   {}

func (o Offset) Eval(ctx PropertyContext) Value {
	d := Point{o.DX, o.DY}
	switch rel := ctx.Relative.(type) {
	case Point:
		return rel.Add(d)
	case Bounds:
		return rel.Origin().Add(d)
	}
	return d
}
