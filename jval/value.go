// Package jval implements the JSON value tree: a tagged union over null,
// boolean, number, string, array, and object, with the construction,
// sizing, and equality rules spec.md §3/§4.2 assigns to it. jobj and jarr
// build the object/array accessor API on top of the representation
// exported here.
package jval

// Kind identifies which variant of Value is populated.
type Kind int

const (
	// KindNull is the null variant; it carries no payload.
	KindNull Kind = iota
	// KindBool is the boolean variant.
	KindBool
	// KindNumber is the IEEE-754 double variant.
	KindNumber
	// KindString is the owned, null-free UTF-8 string variant.
	KindString
	// KindArray is the ordered-sequence-of-children variant.
	KindArray
	// KindObject is the insertion-ordered key/value multimap variant.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// IsPrimitive reports whether k is one of string, number, boolean —
// spec.md's "Primitive" category.
func (k Kind) IsPrimitive() bool {
	return k == KindString || k == KindNumber || k == KindBool
}

// IsComplex reports whether k is one of object, array, null — spec.md's
// "Complex" category, as used by PutComplex/AppendComplex.
func (k Kind) IsComplex() bool {
	return k == KindObject || k == KindArray || k == KindNull
}

// Pair is one (key, Value) entry of an Object. Objects are an ordered
// slice of Pairs rather than a map so that insertion order and duplicate
// keys survive, per spec.md §3.1.
type Pair struct {
	Key   string
	Value *Value
}

// Value is the tagged-union tree node. Exactly one of the payload fields
// is meaningful, selected by Kind; unused fields hold their zero value.
// Children are owned: a *Value reachable from exactly one parent slot
// (an Array element or an Object pair) has no other live reference to it
// in a well-formed tree, and Destroy relies on that to release a subtree.
type Value struct {
	Kind    Kind
	boolean bool
	number  float64
	str     string
	elems   []*Value
	members []Pair
}

// NewNull returns a new null value.
func NewNull() *Value { return &Value{Kind: KindNull} }

// NewBool returns a new boolean value.
func NewBool(b bool) *Value { return &Value{Kind: KindBool, boolean: b} }

// NewNumber returns a new number value.
func NewNumber(f float64) *Value { return &Value{Kind: KindNumber, number: f} }

// NewString returns a new string value. The given string is copied by
// value (Go strings are immutable, so this is already the "deep copy" the
// spec's create_with asks for — there is no mutable backing buffer to
// alias).
func NewString(s string) *Value { return &Value{Kind: KindString, str: s} }

// NewArray returns a new, empty array value.
func NewArray() *Value { return &Value{Kind: KindArray} }

// NewObject returns a new, empty object value.
func NewObject() *Value { return &Value{Kind: KindObject} }

// Bool returns the boolean payload. It is the caller's responsibility to
// check Kind == KindBool first; this is a raw accessor, not a checked one
// (jobj/jarr's GetPrimitive is the checked path).
func (v *Value) Bool() bool { return v.boolean }

// Number returns the number payload.
func (v *Value) Number() float64 { return v.number }

// Str returns the string payload. The returned string is a borrowed view
// tied to the containing tree's lifetime, matching spec.md's shallow
// string-getter contract (Design Notes) — in Go this is simply "strings
// are immutable values", so no copy is needed or made.
func (v *Value) Str() string { return v.str }

// Elems returns the array's backing slice directly (a borrowed view, per
// spec.md §4.4's Elements operation). Callers that need to reorder
// elements (e.g. via sort.Slice) may do so in place; callers that only
// want to add/remove should go through jarr instead.
func (v *Value) Elems() []*Value { return v.elems }

// Members returns the object's backing slice directly, insertion order
// preserved, per spec.md §4.3's iteration contract.
func (v *Value) Members() []Pair { return v.members }

// SetElems replaces the array's backing slice. It exists so jarr can
// mutate without jval exposing raw field access; jval callers outside
// this module's sibling packages should prefer the jarr API.
func (v *Value) SetElems(elems []*Value) { v.elems = elems }

// SetMembers replaces the object's backing slice, for the same reason as
// SetElems.
func (v *Value) SetMembers(members []Pair) { v.members = members }

// Size returns the element count (array), pair count (object), or byte
// count (string). It returns -1 for null/boolean/number, which have no
// size, per spec.md §4.2.
func (v *Value) Size() int {
	if v == nil {
		return -1
	}
	switch v.Kind {
	case KindArray:
		return len(v.elems)
	case KindObject:
		return len(v.members)
	case KindString:
		return len(v.str)
	default:
		return -1
	}
}

// IsEmpty reports whether Size() is 0. Variants without a size (null,
// boolean, number) are considered empty, matching spec.md's
// "unsupported" clause.
func (v *Value) IsEmpty() bool {
	s := v.Size()
	return s == 0 || s == -1
}

// EqualsPrimitive compares v to a primitive payload of the given kind.
// It returns false for any mismatch: wrong kind, wrong requested kind, or
// a non-primitive Value.
func (v *Value) EqualsPrimitive(payload any, kind Kind) bool {
	if v == nil || !kind.IsPrimitive() || v.Kind != kind {
		return false
	}
	switch kind {
	case KindString:
		s, ok := payload.(string)
		return ok && v.str == s
	case KindNumber:
		n, ok := payload.(float64)
		return ok && v.number == n
	case KindBool:
		b, ok := payload.(bool)
		return ok && v.boolean == b
	default:
		return false
	}
}

// Destroy recursively detaches a subtree's children. Go's garbage
// collector reclaims the memory regardless of whether Destroy is called;
// it exists so callers following the spec's explicit-destroy discipline
// have a symmetrical operation, and so that a long-lived parent doesn't
// keep large freed subtrees reachable a moment longer than necessary.
func (v *Value) Destroy() {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindArray:
		for _, e := range v.elems {
			e.Destroy()
		}
		v.elems = nil
	case KindObject:
		for i := range v.members {
			v.members[i].Value.Destroy()
			v.members[i].Value = nil
		}
		v.members = nil
	}
	v.str = ""
}
