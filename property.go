package textmation

import "fmt"

// Property is a named, type-constrained slot on an element. It owns exactly
// one current value whose variant is always a member of its allowed types.
type Property struct {
	name     string
	value    Value
	types    TypeSet
	relative *Property

	// Set by the last compute pass, cleared by reset.
	time     float64
	resolved Value
	computed bool
}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Value returns the stored, unevaluated value.
func (p *Property) Value() Value { return p.value }

// Types returns the allowed type set.
func (p *Property) Types() TypeSet { return p.types }

// Relative returns the property this one is defined relative to, or nil.
func (p *Property) Relative() *Property { return p.relative }

// set replaces the value after boxing and type checking. Percent and Offset
// are rejected unless the property is relative to another one. On failure
// the previous value is kept. A successful set drops the computed cache.
func (p *Property) set(v any) error {
	val, _, err := coerce(p.name, v, p.types, p.relative != nil)
	if err != nil {
		return err
	}
	p.value = val
	p.resolved = nil
	p.computed = false
	return nil
}

// Eval evaluates the stored value in this property's context: its name, the
// time of the last compute pass and the resolved relative property.
func (p *Property) Eval() Value {
	return p.evalAt(p.time)
}

func (p *Property) evalAt(t float64) Value {
	ctx := PropertyContext{Name: p.name, Time: t}
	if p.relative != nil {
		ctx.Relative = p.relative.resolvedAt(t)
	}
	return p.value.Eval(ctx)
}

// Resolved returns the value cached by the last compute pass, or Eval when
// the property has not been computed since the last reset.
func (p *Property) Resolved() Value {
	return p.resolvedAt(p.time)
}

// resolvedAt uses the cache only when it was computed for t, so a relative
// link reads a consistent instant whichever side was computed first.
func (p *Property) resolvedAt(t float64) Value {
	if p.computed && p.time == t {
		return p.resolved
	}
	return p.evalAt(t)
}

func (p *Property) compute(t float64) {
	p.resolved = p.evalAt(t)
	p.time = t
	p.computed = true
}

func (p *Property) reset() {
	p.time = 0
	p.resolved = nil
	p.computed = false
}

func (p *Property) String() string {
	return fmt.Sprintf("<Property: %q, %v>", p.name, p.value)
}

// DefineOption configures a property at definition time.
type DefineOption func(*defineOptions)

type defineOptions struct {
	types    TypeSet
	relative *Property
}

// Types restricts the property to the given variants. Without it a property
// accepts only the variants of its initial value.
func Types(ts ...Type) DefineOption {
	return func(o *defineOptions) { o.types |= TypesOf(ts...) }
}

// TypeSetOf is Types for a prebuilt set.
func TypeSetOf(s TypeSet) DefineOption {
	return func(o *defineOptions) { o.types |= s }
}

// RelativeTo declares that the property's meaning is defined relative to the
// resolved value of rel.
func RelativeTo(rel *Property) DefineOption {
	return func(o *defineOptions) { o.relative = rel }
}
