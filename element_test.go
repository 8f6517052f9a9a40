package textmation

import (
	"errors"
	"strings"
	"testing"
)

// --- Define / Get / Set ---

func TestDefineDefaultsToOwnVariant(t *testing.T) {
	e := NewTree().NewGroup(Point{})
	p, err := e.Define("speed", 3)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if p.Types() != TypesOf(TypeNumber) {
		t.Errorf("Types = %v, want {Number}", p.Types())
	}
	if p.Value() != Number(3) {
		t.Errorf("Value = %v, want Number(3)", p.Value())
	}
	if err := e.Set("speed", "fast"); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("Set string on number property: err = %v, want ErrTypeConstraint", err)
	}
}

func TestDefineDuplicate(t *testing.T) {
	e := NewTree().NewGroup(Point{})
	if _, err := e.Define("position", Point{}); !errors.Is(err, ErrDuplicateProperty) {
		t.Errorf("err = %v, want ErrDuplicateProperty", err)
	}
}

func TestDefineRejectsInitialValue(t *testing.T) {
	e := NewTree().NewGroup(Point{})
	_, err := e.Define("label", 1, Types(TypeString))
	var tce *TypeConstraintError
	if !errors.As(err, &tce) {
		t.Fatalf("err = %v, want *TypeConstraintError", err)
	}
	if tce.Property != "label" || tce.Got != TypeNumber {
		t.Errorf("error = %+v", tce)
	}
	if e.Has("label") {
		t.Error("rejected property should not be defined")
	}
}

func TestSetKeepsValueOnConstraintViolation(t *testing.T) {
	tree := NewTree()
	rect := tree.NewRectangle(Bounds{0, 0, 10, 10}, ColorBlack)

	err := rect.Set("bounds", Point{1, 1})
	if !errors.Is(err, ErrTypeConstraint) {
		t.Fatalf("err = %v, want ErrTypeConstraint", err)
	}
	if !strings.Contains(err.Error(), "bounds") {
		t.Errorf("error %q should name the property", err)
	}
	got, err := rect.ReadBounds("bounds")
	if err != nil {
		t.Fatal(err)
	}
	if got != (Bounds{0, 0, 10, 10}) {
		t.Errorf("bounds = %v, want the previous value", got)
	}

	if err := rect.Set("bounds", Tween{From: Bounds{}, To: Bounds{1, 1, 1, 1}, Duration: 1}); err != nil {
		t.Errorf("Set tween: %v", err)
	}
}

func TestSetUnboxable(t *testing.T) {
	e := NewTree().NewGroup(Point{})
	err := e.Set("position", []float64{1, 2})
	var tce *TypeConstraintError
	if !errors.As(err, &tce) || tce.GoType != "[]float64" {
		t.Errorf("err = %v, want TypeConstraintError naming []float64", err)
	}
}

// wrappedNumber reports TypeNumber but is not a Number.
type wrappedNumber struct{ Number }

func TestSetRejectsForeignValue(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{20, 20})
	circle := tree.NewCircle(Point{10, 10}, 4, ColorBlack)
	mustAdd(t, scene, circle)

	if TypeOf(wrappedNumber{Number(5)}) != TypeInvalid {
		t.Error("TypeOf(wrappedNumber) should be Invalid")
	}
	if _, err := ToValue(wrappedNumber{Number(5)}); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("ToValue err = %v, want ErrTypeConstraint", err)
	}

	err := circle.Set("radius", wrappedNumber{Number(5)})
	var tce *TypeConstraintError
	if !errors.As(err, &tce) {
		t.Fatalf("err = %v, want *TypeConstraintError", err)
	}
	if tce.GoType != "textmation.wrappedNumber" {
		t.Errorf("GoType = %q", tce.GoType)
	}
	if err := circle.Set("radius", Tween{From: Number(1), To: wrappedNumber{Number(5)}, Duration: 1}); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("tween with foreign end: err = %v, want ErrTypeConstraint", err)
	}

	rr := &recordRaster{}
	if _, err := Render(scene, rr, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r := rr.last().calls[0].radii[0]; r != 4 {
		t.Errorf("radius = %v, want the previous value 4", r)
	}
}

func TestRelativeRequiresLink(t *testing.T) {
	tree := NewTree()
	circle := tree.NewCircle(Point{1, 2}, 4, ColorBlack)

	tests := []struct {
		name  string
		value any
	}{
		{"percent", Percent(50)},
		{"offset", Offset{DX: 1, DY: 1}},
		{"percent tween", Tween{From: Percent(0), To: Percent(100), Duration: 1}},
		{"offset keyframe", NewKeyframes(Keyframe{Time: 0, Value: Point{}}, Keyframe{Time: 1, Value: Offset{DX: 1}})},
		{"number tween", Tween{From: Number(0), To: Number(1), Duration: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := circle.Set("center", tt.value)
			var tce *TypeConstraintError
			if !errors.As(err, &tce) {
				t.Fatalf("err = %v, want *TypeConstraintError", err)
			}
			if tce.Allowed.Has(TypePercent) || tce.Allowed.Has(TypeOffset) {
				t.Errorf("Allowed = %v, should exclude relative variants", tce.Allowed)
			}
			if got, err := circle.ReadPoint("center"); err != nil || got != (Point{1, 2}) {
				t.Errorf("center = %v (%v), want the previous value", got, err)
			}
		})
	}

	g := tree.NewGroup(Point{})
	if _, err := g.Define("spot", Percent(5)); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("Define unlinked percent: err = %v, want ErrTypeConstraint", err)
	}
	if g.Has("spot") {
		t.Error("rejected property should not be defined")
	}
	if _, err := g.Define("spot", Percent(5), RelativeTo(mustGet(t, g, "position"))); err != nil {
		t.Errorf("Define linked percent: %v", err)
	}
}

func TestUnknownProperty(t *testing.T) {
	e := NewTree().NewGroup(Point{})
	if _, err := e.Get("nope"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Get: err = %v, want ErrUnknownProperty", err)
	}
	if err := e.Set("nope", 1); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("Set: err = %v, want ErrUnknownProperty", err)
	}
	if _, err := e.ReadNumber("nope"); !errors.Is(err, ErrUnknownProperty) {
		t.Errorf("ReadNumber: err = %v, want ErrUnknownProperty", err)
	}
	if e.Has("nope") {
		t.Error("Has should be false")
	}
}

func TestReadWrongVariant(t *testing.T) {
	e := NewTree().NewText("hi", Point{}, ColorBlack)
	if _, err := e.ReadNumber("text"); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("err = %v, want ErrTypeConstraint", err)
	}
	if err := e.Set("text", NewKeyframes()); err != nil {
		t.Fatal(err)
	}
	if _, err := e.ReadString("text"); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("empty keyframes: err = %v, want ErrTypeConstraint", err)
	}
}

func TestPropertiesDefinitionOrder(t *testing.T) {
	e := NewTree().NewLine(Point{}, Point{1, 1}, ColorBlack, Named("l"))
	var names []string
	for _, p := range e.Properties() {
		names = append(names, p.Name())
	}
	want := "name,start_point,end_point,color,width"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

// --- Schemas ---

func TestSchemaDefaults(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{100, 50})
	if bg, _ := scene.ReadColor("background"); bg != ColorWhite {
		t.Errorf("background = %v, want white", bg)
	}
	d, fr, err := Timing(scene)
	if err != nil || d != 1 || fr != 30 {
		t.Errorf("Timing = %v, %v, %v; want 1, 30, nil", d, fr, err)
	}

	text := tree.NewText("x", Point{}, ColorBlack)
	tests := []struct {
		name string
		want Value
	}{
		{"font", String(DefaultFont)},
		{"font_size", Number(DefaultFontSize)},
		{"anchor", String(DefaultAnchor)},
		{"alignment", String(DefaultAlignment)},
	}
	for _, tt := range tests {
		if v, err := text.Resolve(tt.name); err != nil || v != tt.want {
			t.Errorf("%s = %v (%v), want %v", tt.name, v, err, tt.want)
		}
	}

	if w, _ := tree.NewLine(Point{}, Point{}, ColorBlack).ReadNumber("width"); w != 1 {
		t.Errorf("line width = %v, want 1", w)
	}
	if w, _ := tree.NewCircle(Point{}, 3, ColorBlack).ReadNumber("outline_width"); w != 0 {
		t.Errorf("circle outline_width = %v, want 0", w)
	}
}

func TestSceneTimingNumberOnly(t *testing.T) {
	scene := NewScene(Size{10, 10})
	if err := scene.Set("duration", Tween{From: Number(1), To: Number(2), Duration: 1}); !errors.Is(err, ErrTypeConstraint) {
		t.Errorf("err = %v, want ErrTypeConstraint", err)
	}
	if err := scene.Set("duration", 2.5); err != nil {
		t.Errorf("Set duration: %v", err)
	}
}

func TestTimingRejectsNonScene(t *testing.T) {
	g := NewTree().NewGroup(Point{})
	if _, _, err := Timing(g); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("err = %v, want ErrInvalidRoot", err)
	}
	if _, _, err := Timing(Element{}); !errors.Is(err, ErrInvalidRoot) {
		t.Errorf("zero element: err = %v, want ErrInvalidRoot", err)
	}
}

func TestLinkUnknownPropertyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a link to an unknown property")
		}
	}()
	tree := NewTree()
	scene := tree.NewScene(Size{10, 10})
	size, _ := scene.Get("size")
	tree.NewGroup(Point{}, Link("nope", size))
}

// --- Relative properties ---

func TestRelativePercent(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{200, 100})
	group := tree.NewGroup(Point{200, 100})
	pos := mustGet(t, group, "position")

	circle := tree.NewCircle(Point{}, 5, ColorBlack, Link("center", pos))
	if mustGet(t, circle, "center").Relative() != pos {
		t.Fatal("center should be relative to the group position")
	}
	if err := circle.Set("center", Percent(50)); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, scene, group)
	mustAdd(t, group, circle)

	scene.Compute(0)
	if got, err := circle.ReadPoint("center"); err != nil || got != (Point{100, 50}) {
		t.Errorf("center = %v (%v), want (100, 50)", got, err)
	}

	label := tree.NewText("o", Point{}, ColorBlack, Link("position", mustGet(t, circle, "center")))
	if err := label.Set("position", Offset{DX: 1, DY: 2}); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, circle, label)
	scene.Compute(0)
	if got, err := label.ReadPoint("position"); err != nil || got != (Point{101, 52}) {
		t.Errorf("position = %v (%v), want (101, 52)", got, err)
	}
}

func TestRelativeReadsSameInstant(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{100, 100})
	// The linked group is computed before the element it is relative to.
	anchor := tree.NewGroup(Point{})
	follower := tree.NewGroup(Point{}, Link("position", mustGet(t, anchor, "position")))
	if err := anchor.Set("position", Tween{From: Point{0, 0}, To: Point{100, 0}, Duration: 1}); err != nil {
		t.Fatal(err)
	}
	if err := follower.Set("position", Offset{DX: 0, DY: 5}); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, scene, follower)
	mustAdd(t, scene, anchor)

	scene.Compute(0)
	scene.Compute(1)
	if got, _ := follower.ReadPoint("position"); got != (Point{100, 5}) {
		t.Errorf("follower at t=1 = %v, want (100, 5)", got)
	}
}

// --- Ownership ---

func TestAddOwnership(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{10, 10})
	a := tree.NewGroup(Point{})
	b := tree.NewGroup(Point{})
	mustAdd(t, scene, a)
	mustAdd(t, a, b)

	tests := []struct {
		name   string
		parent Element
		child  Element
	}{
		{"second add", scene, b},
		{"self", b, b},
		{"ancestor", b, a},
		{"scene as child", a, tree.NewScene(Size{1, 1})},
		{"other tree", scene, NewTree().NewGroup(Point{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.parent.Add(tt.child); !errors.Is(err, ErrOwnership) {
				t.Errorf("err = %v, want ErrOwnership", err)
			}
		})
	}

	if scene.NumChildren() != 1 || a.NumChildren() != 1 || b.NumChildren() != 0 {
		t.Errorf("failed adds changed the tree: %d %d %d", scene.NumChildren(), a.NumChildren(), b.NumChildren())
	}
	if p, ok := b.Parent(); !ok || p.ID() != a.ID() {
		t.Errorf("b.Parent = %v, %v; want a", p, ok)
	}
}

func TestChildrenOrder(t *testing.T) {
	tree := NewTree()
	g := tree.NewGroup(Point{})
	var want []ElementID
	for range 5 {
		c := tree.NewRectangle(Bounds{}, ColorBlack)
		mustAdd(t, g, c)
		want = append(want, c.ID())
	}
	for i, c := range g.Children() {
		if c.ID() != want[i] {
			t.Errorf("child %d = %v, want id %d", i, c, want[i])
		}
		if g.ChildAt(i).ID() != want[i] {
			t.Errorf("ChildAt(%d) = %v", i, g.ChildAt(i))
		}
	}
	if tree.Len() != 6 {
		t.Errorf("Len = %d, want 6", tree.Len())
	}
	if e, ok := tree.Element(want[2]); !ok || e.ID() != want[2] {
		t.Errorf("Element(%d) = %v, %v", want[2], e, ok)
	}
	if _, ok := tree.Element(99); ok {
		t.Error("Element(99) should not exist")
	}
}

// --- Compute / Reset ---

func TestComputeCachesResolved(t *testing.T) {
	g := NewTree().NewGroup(Point{})
	if err := g.Set("position", Tween{From: Point{0, 0}, To: Point{10, 0}, Duration: 1}); err != nil {
		t.Fatal(err)
	}
	g.Compute(0.5)
	p := mustGet(t, g, "position")
	if got := p.Resolved(); got != (Point{5, 0}) {
		t.Errorf("Resolved = %v, want (5, 0)", got)
	}
	if got := p.Eval(); got != (Point{5, 0}) {
		t.Errorf("Eval = %v, want (5, 0)", got)
	}

	if err := g.Set("position", Point{7, 7}); err != nil {
		t.Fatal(err)
	}
	if got := p.Resolved(); got != (Point{7, 7}) {
		t.Errorf("after Set: Resolved = %v, want (7, 7)", got)
	}
}

func TestResetMatchesFreshTree(t *testing.T) {
	build := func() (Element, Element) {
		tree := NewTree()
		scene := tree.NewScene(Size{100, 100})
		rect := tree.NewRectangle(Bounds{}, ColorBlack)
		if err := rect.Set("bounds", Tween{From: Bounds{0, 0, 10, 10}, To: Bounds{50, 50, 10, 10}, Duration: 1}); err != nil {
			t.Fatal(err)
		}
		mustAdd(t, scene, rect)
		return scene, rect
	}

	used, usedRect := build()
	used.Compute(0.3)
	used.Compute(0.9)
	used.Reset()
	used.Compute(0)

	fresh, freshRect := build()
	fresh.Compute(0)

	a, _ := usedRect.ReadBounds("bounds")
	b, _ := freshRect.ReadBounds("bounds")
	if a != b {
		t.Errorf("reset tree = %v, fresh tree = %v", a, b)
	}
	for i, p := range usedRect.Properties() {
		if p.Resolved() != freshRect.Properties()[i].Resolved() {
			t.Errorf("%s differs after reset", p.Name())
		}
	}
}

// traceValue records the order in which properties are evaluated.
type traceValue struct {
	tag string
	log *[]string
}

func (traceValue) Type() Type { return TypeNumber }
func (traceValue) isValue()   {}

func (v traceValue) Eval(PropertyContext) Value {
	*v.log = append(*v.log, v.tag)
	return Number(0)
}

func TestComputePreOrder(t *testing.T) {
	tree := NewTree()
	scene := tree.NewScene(Size{10, 10})
	outer := tree.NewGroup(Point{})
	inner := tree.NewGroup(Point{})
	sibling := tree.NewGroup(Point{})
	mustAdd(t, scene, outer)
	mustAdd(t, outer, inner)
	mustAdd(t, scene, sibling)

	var log []string
	for tag, e := range map[string]Element{"scene": scene, "outer": outer, "inner": inner, "sibling": sibling} {
		p, err := e.Define("trace", 0)
		if err != nil {
			t.Fatal(err)
		}
		p.value = traceValue{tag: tag, log: &log}
	}

	scene.Compute(2)
	want := []string{"scene", "outer", "inner", "sibling"}
	if strings.Join(log, " ") != strings.Join(want, " ") {
		t.Errorf("evaluation order = %v, want %v", log, want)
	}
	for _, e := range []Element{scene, outer, inner, sibling} {
		for _, p := range e.Properties() {
			if !p.computed || p.time != 2 {
				t.Errorf("%s.%s not computed at t=2", e, p.Name())
			}
		}
	}

	scene.Reset()
	for _, e := range []Element{scene, outer, inner, sibling} {
		for _, p := range e.Properties() {
			if p.computed || p.resolved != nil {
				t.Errorf("%s.%s still cached after Reset", e, p.Name())
			}
		}
	}
}

// --- Zero element ---

func TestZeroElement(t *testing.T) {
	var e Element
	if e.Has("position") {
		t.Error("Has should be false")
	}
	if _, err := e.Get("position"); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Get: err = %v, want ErrInvalidElement", err)
	}
	if err := e.Set("position", Point{}); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Set: err = %v, want ErrInvalidElement", err)
	}
	if _, err := e.Define("speed", 1); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Define: err = %v, want ErrInvalidElement", err)
	}
	if _, err := e.Resolve("position"); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Resolve: err = %v, want ErrInvalidElement", err)
	}
	if _, err := e.ReadNumber("radius"); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("ReadNumber: err = %v, want ErrInvalidElement", err)
	}
	if e.Kind() != kindInvalid || e.Kind().String() != "Invalid" {
		t.Errorf("Kind = %v", e.Kind())
	}
	if e.Properties() != nil || e.Children() != nil || e.NumChildren() != 0 {
		t.Error("zero element should have no properties or children")
	}
	if _, ok := e.Parent(); ok {
		t.Error("zero element should have no parent")
	}
	e.Compute(1)
	e.Reset()

	tree := NewTree()
	scene := tree.NewScene(Size{1, 1})
	if err := scene.Add(e); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Add zero child: err = %v, want ErrInvalidElement", err)
	}
	if err := e.Add(tree.NewGroup(Point{})); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("Add to zero parent: err = %v, want ErrInvalidElement", err)
	}
	if scene.NumChildren() != 0 {
		t.Errorf("scene has %d children, want 0", scene.NumChildren())
	}
}

// --- Identification ---

func TestElementString(t *testing.T) {
	tree := NewTree()
	tree.NewScene(Size{1, 1})
	named := tree.NewGroup(Point{}, Named("hud"))
	plain := tree.NewRectangle(Bounds{}, ColorBlack)

	if got := named.String(); got != "<hud: 0x1>" {
		t.Errorf("named = %q", got)
	}
	if got := plain.String(); got != "<Rectangle: 0x2>" {
		t.Errorf("plain = %q", got)
	}
	if got := (Element{}).String(); got != "<invalid element>" {
		t.Errorf("zero = %q", got)
	}
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("Kind(42) = %q", got)
	}
	if plain.Ref() != (ElementRef{ID: 2}) {
		t.Errorf("Ref = %v", plain.Ref())
	}
}

func mustAdd(t *testing.T, parent, child Element) {
	t.Helper()
	if err := parent.Add(child); err != nil {
		t.Fatalf("Add(%v, %v): %v", parent, child, err)
	}
}

func mustGet(t *testing.T, e Element, name string) *Property {
	t.Helper()
	p, err := e.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	return p
}
