package textmation

import "fmt"

// ElementID indexes an element in its Tree.
type ElementID int32

// NoElement is the parent of an element that has not been added anywhere.
const NoElement ElementID = -1

// Kind distinguishes the element variants. The set is closed: the renderer
// has one handler per kind.
type Kind uint8

const (
	KindScene     Kind = iota // root; owns the image size, background and timing
	KindGroup                 // translates its children, draws nothing
	KindRectangle             // filled and outlined axis-aligned rectangle
	KindCircle                // filled and outlined circle
	KindEllipse               // filled and outlined axis-aligned ellipse
	KindLine                  // straight line segment
	KindText                  // single or multi-line text
	kindCount

	kindInvalid Kind = 255 // reported by the zero Element
)

var kindNames = [kindCount]string{
	KindScene:     "Scene",
	KindGroup:     "Group",
	KindRectangle: "Rectangle",
	KindCircle:    "Circle",
	KindEllipse:   "Ellipse",
	KindLine:      "Line",
	KindText:      "Text",
}

func (k Kind) String() string {
	if k == kindInvalid {
		return "Invalid"
	}
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// node is the arena record behind an Element.
type node struct {
	kind     Kind
	props    map[string]*Property
	order    []*Property // definition order, used by compute and reset
	children []ElementID
	parent   ElementID
}

// Tree is the arena that owns every element of one animation. Children are
// referenced by ID and the parent link is an ID, so the tree holds no
// pointer cycles.
type Tree struct {
	nodes []*node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of elements created in t.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Element returns the element with the given ID.
func (t *Tree) Element(id ElementID) (Element, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Element{}, false
	}
	return Element{tree: t, id: id}, true
}

func (t *Tree) newElement(kind Kind) Element {
	id := ElementID(len(t.nodes))
	t.nodes = append(t.nodes, &node{
		kind:   kind,
		props:  make(map[string]*Property),
		parent: NoElement,
	})
	return Element{tree: t, id: id}
}

// Element is a handle to a node of a Tree. The zero Element is invalid: its
// queries report nothing and its lookups fail with ErrInvalidElement.
type Element struct {
	tree *Tree
	id   ElementID
}

// node returns the arena record of e, or nil for the zero Element.
func (e Element) node() *node {
	if e.tree == nil {
		return nil
	}
	return e.tree.nodes[e.id]
}

// IsValid reports whether e refers to an element.
func (e Element) IsValid() bool {
	return e.tree != nil
}

// Tree returns the arena e belongs to.
func (e Element) Tree() *Tree { return e.tree }

// ID returns the arena index of e.
func (e Element) ID() ElementID { return e.id }

// Kind returns the variant of e. The zero Element reports an invalid kind
// that no handler renders.
func (e Element) Kind() Kind {
	n := e.node()
	if n == nil {
		return kindInvalid
	}
	return n.kind
}

// Ref returns a value referring to e.
func (e Element) Ref() ElementRef { return ElementRef{ID: e.id} }

// --- Properties ---

// Define registers a new property. The value is boxed with ToValue. Without
// a Types option the property accepts only the variants of its initial
// value. Percent and Offset need a RelativeTo option.
func (e Element) Define(name string, value any, opts ...DefineOption) (*Property, error) {
	n := e.node()
	if n == nil {
		return nil, invalidElement(name)
	}
	if _, ok := n.props[name]; ok {
		return nil, fmt.Errorf("%w: %s already defines %q", ErrDuplicateProperty, e, name)
	}
	var o defineOptions
	for _, opt := range opts {
		opt(&o)
	}
	val, types, err := coerce(name, value, o.types, o.relative != nil)
	if err != nil {
		return nil, err
	}
	p := &Property{name: name, value: val, types: types, relative: o.relative}
	n.props[name] = p
	n.order = append(n.order, p)
	return p, nil
}

// Has reports whether e defines name.
func (e Element) Has(name string) bool {
	n := e.node()
	if n == nil {
		return false
	}
	_, ok := n.props[name]
	return ok
}

// Get returns the named property.
func (e Element) Get(name string) (*Property, error) {
	n := e.node()
	if n == nil {
		return nil, invalidElement(name)
	}
	p, ok := n.props[name]
	if !ok {
		return nil, unknownProperty(e, name)
	}
	return p, nil
}

// Set boxes value and stores it in the named property. The previous value is
// kept when the variant is not allowed.
func (e Element) Set(name string, value any) error {
	p, err := e.Get(name)
	if err != nil {
		return err
	}
	return p.set(value)
}

// Properties returns the properties of e in definition order. The returned
// slice MUST NOT be mutated by the caller.
func (e Element) Properties() []*Property {
	if n := e.node(); n != nil {
		return n.order
	}
	return nil
}

// Resolve returns the resolved value of the named property.
func (e Element) Resolve(name string) (Value, error) {
	p, err := e.Get(name)
	if err != nil {
		return nil, err
	}
	return p.Resolved(), nil
}

// read resolves name and checks that the result is of variant want.
func (e Element) read(name string, want Type) (Value, error) {
	v, err := e.Resolve(name)
	if err != nil {
		return nil, err
	}
	if TypeOf(v) != want {
		return nil, &TypeConstraintError{Property: name, Got: TypeOf(v), Allowed: TypesOf(want)}
	}
	return v, nil
}

// ReadNumber returns the named property resolved to a Number.
func (e Element) ReadNumber(name string) (float64, error) {
	v, err := e.read(name, TypeNumber)
	if err != nil {
		return 0, err
	}
	return float64(v.(Number)), nil
}

// ReadString returns the named property resolved to a String.
func (e Element) ReadString(name string) (string, error) {
	v, err := e.read(name, TypeString)
	if err != nil {
		return "", err
	}
	return string(v.(String)), nil
}

// ReadPoint returns the named property resolved to a Point.
func (e Element) ReadPoint(name string) (Point, error) {
	v, err := e.read(name, TypePoint)
	if err != nil {
		return Point{}, err
	}
	return v.(Point), nil
}

// ReadSize returns the named property resolved to a Size.
func (e Element) ReadSize(name string) (Size, error) {
	v, err := e.read(name, TypeSize)
	if err != nil {
		return Size{}, err
	}
	return v.(Size), nil
}

// ReadBounds returns the named property resolved to Bounds.
func (e Element) ReadBounds(name string) (Bounds, error) {
	v, err := e.read(name, TypeBounds)
	if err != nil {
		return Bounds{}, err
	}
	return v.(Bounds), nil
}

// ReadColor returns the named property resolved to a Color.
func (e Element) ReadColor(name string) (Color, error) {
	v, err := e.read(name, TypeColor)
	if err != nil {
		return Color{}, err
	}
	return v.(Color), nil
}

// --- Tree manipulation ---

// Add appends child to e's children. A child can be added exactly once: it
// fails with ErrOwnership if child already has a parent, belongs to another
// tree, is a Scene, or is e itself or one of its ancestors.
// Either side being the zero Element fails with ErrInvalidElement.
func (e Element) Add(child Element) error {
	if !e.IsValid() || !child.IsValid() {
		return fmt.Errorf("%w: cannot add %s to %s", ErrInvalidElement, child, e)
	}
	if child.tree != e.tree {
		return fmt.Errorf("%w: %s belongs to another tree", ErrOwnership, child)
	}
	cn := child.node()
	if cn.parent != NoElement {
		return fmt.Errorf("%w: %s already has a parent", ErrOwnership, child)
	}
	if cn.kind == KindScene {
		return fmt.Errorf("%w: scene %s cannot be a child", ErrOwnership, child)
	}
	if isAncestor(child, e) {
		return fmt.Errorf("%w: adding %s to %s would create a cycle", ErrOwnership, child, e)
	}
	cn.parent = e.id
	n := e.node()
	n.children = append(n.children, child.id)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
	return nil
}

// Parent returns the parent of e, if any.
func (e Element) Parent() (Element, bool) {
	n := e.node()
	if n == nil || n.parent == NoElement {
		return Element{}, false
	}
	return Element{tree: e.tree, id: n.parent}, true
}

// Children returns the children of e in paint order.
func (e Element) Children() []Element {
	ids := e.childIDs()
	if len(ids) == 0 {
		return nil
	}
	out := make([]Element, len(ids))
	for i, id := range ids {
		out[i] = Element{tree: e.tree, id: id}
	}
	return out
}

// NumChildren returns the number of children.
func (e Element) NumChildren() int {
	return len(e.childIDs())
}

// ChildAt returns the child at the given index. It panics if index is out of
// range.
func (e Element) ChildAt(index int) Element {
	return Element{tree: e.tree, id: e.childIDs()[index]}
}

func (e Element) childIDs() []ElementID {
	if n := e.node(); n != nil {
		return n.children
	}
	return nil
}

// --- Compute pass ---

// Compute refreshes the resolved value of every property in e's subtree for
// time t. Elements are visited pre-order, parent before children, and the
// properties of one element in definition order.
func (e Element) Compute(t float64) {
	n := e.node()
	if n == nil {
		return
	}
	for _, p := range n.order {
		p.compute(t)
	}
	for _, id := range n.children {
		Element{tree: e.tree, id: id}.Compute(t)
	}
}

// Reset drops every cached value in e's subtree so that the next read or
// compute starts from the stored values at time 0.
func (e Element) Reset() {
	n := e.node()
	if n == nil {
		return
	}
	for _, p := range n.order {
		p.reset()
	}
	for _, id := range n.children {
		Element{tree: e.tree, id: id}.Reset()
	}
}

// --- Identification ---

// Name returns the resolved "name" property, or the kind name when e has no
// usable name.
func (e Element) Name() string {
	if !e.IsValid() {
		return "invalid element"
	}
	if p, ok := e.node().props["name"]; ok {
		if s, ok := p.Resolved().(String); ok && s != "" {
			return string(s)
		}
	}
	return e.Kind().String()
}

func (e Element) String() string {
	if !e.IsValid() {
		return "<invalid element>"
	}
	return fmt.Sprintf("<%s: 0x%X>", e.Name(), int(e.id))
}

// --- Helpers ---

// isAncestor reports whether candidate is e or one of its ancestors.
func isAncestor(candidate, e Element) bool {
	for p, ok := e, true; ok; p, ok = p.Parent() {
		if p.id == candidate.id {
			return true
		}
	}
	return false
}
