// Package jobj implements the object accessor/mutator API of spec.md §4.3:
// first-hit lookup, replace-or-append mutation, and remove-all-matches
// deletion over jval.Value's insertion-ordered Pair slice.
//
// All operations here are linear in the pair count, as spec.md requires;
// none of them build an auxiliary map, because a map would silently
// collapse the duplicate keys this package is required to preserve.
package jobj

import (
	"github.com/tzimuto1/json-parser/jerr"
	"github.com/tzimuto1/json-parser/jval"
)

// HasKey reports whether obj has any pair whose key equals key
// byte-for-byte.
func HasKey(obj *jval.Value, key string) bool {
	return find(obj, key) >= 0
}

// HasPrimitive reports whether obj has any pair whose value equals the
// given primitive, short-circuiting on the first hit.
func HasPrimitive(obj *jval.Value, payload any, kind jval.Kind) bool {
	if obj == nil || obj.Kind != jval.KindObject {
		return false
	}
	for _, m := range obj.Members() {
		if m.Value.EqualsPrimitive(payload, kind) {
			return true
		}
	}
	return false
}

// Get returns the first matching pair's value, or nil if obj is not an
// object or no pair matches.
func Get(obj *jval.Value, key string) *jval.Value {
	i := find(obj, key)
	if i < 0 {
		return nil
	}
	return obj.Members()[i].Value
}

// GetAll returns every value in insertion order. The returned slice is a
// fresh copy; mutating it does not affect obj.
func GetAll(obj *jval.Value) []*jval.Value {
	if obj == nil || obj.Kind != jval.KindObject {
		return nil
	}
	members := obj.Members()
	out := make([]*jval.Value, len(members))
	for i, m := range members {
		out[i] = m.Value
	}
	return out
}

// GetPrimitive copies out the payload of the first pair whose key matches
// key and whose value's kind matches kind. Strings are returned as a
// borrowed view (see jval.Value.Str). It returns a *jerr.APIError with
// code NotObject, NotFound, or ValueInvalid on failure.
func GetPrimitive(obj *jval.Value, key string, kind jval.Kind) (any, error) {
	if obj == nil || obj.Kind != jval.KindObject {
		return nil, jerr.NewAPIError(jerr.NotObject, "jobj.GetPrimitive")
	}
	i := find(obj, key)
	if i < 0 {
		return nil, jerr.NewAPIError(jerr.NotFound, "jobj.GetPrimitive")
	}
	v := obj.Members()[i].Value
	if v.Kind != kind {
		return nil, jerr.NewAPIError(jerr.ValueInvalid, "jobj.GetPrimitive")
	}
	return primitivePayload(v), nil
}

// PutPrimitive replaces the value of the first pair with a matching key,
// or appends a new pair if none exists. Returns a *jerr.APIError with
// code NotObject if obj is not an object, or ValueInvalid if kind is not
// a primitive kind.
func PutPrimitive(obj *jval.Value, key string, payload any, kind jval.Kind) error {
	if obj == nil || obj.Kind != jval.KindObject {
		return jerr.NewAPIError(jerr.NotObject, "jobj.PutPrimitive")
	}
	if !kind.IsPrimitive() {
		return jerr.NewAPIError(jerr.ValueInvalid, "jobj.PutPrimitive")
	}
	child, ok := newPrimitive(kind, payload)
	if !ok {
		return jerr.NewAPIError(jerr.ValueInvalid, "jobj.PutPrimitive")
	}
	return put(obj, key, child)
}

// PutComplex takes ownership of child (which must be Object, Array, or
// Null) and replaces-or-appends it under key.
func PutComplex(obj *jval.Value, key string, child *jval.Value) error {
	if obj == nil || obj.Kind != jval.KindObject {
		return jerr.NewAPIError(jerr.NotObject, "jobj.PutComplex")
	}
	if child == nil || !child.Kind.IsComplex() {
		return jerr.NewAPIError(jerr.ValueInvalid, "jobj.PutComplex")
	}
	return put(obj, key, child)
}

// Remove deletes every pair whose key equals key, shifting survivors left
// to preserve their relative order. It is a no-op if obj is not an object
// or no pair matches.
func Remove(obj *jval.Value, key string) {
	if obj == nil || obj.Kind != jval.KindObject {
		return
	}
	members := obj.Members()
	kept := members[:0]
	for _, m := range members {
		if m.Key == key {
			m.Value.Destroy()
			continue
		}
		kept = append(kept, m)
	}
	obj.SetMembers(kept)
}

// Cursor iterates an object's pairs in insertion order.
type Cursor struct {
	members []jval.Pair
	index   int
}

// NewCursor returns a Cursor over obj's pairs, or an exhausted Cursor if
// obj is nil or not an object.
func NewCursor(obj *jval.Value) *Cursor {
	if obj == nil || obj.Kind != jval.KindObject {
		return &Cursor{}
	}
	return &Cursor{members: obj.Members()}
}

// Next returns the next (key, value) pair and true, or a sentinel
// ("", nil, false) once the cursor is exhausted.
func (c *Cursor) Next() (string, *jval.Value, bool) {
	if c.index >= len(c.members) {
		return "", nil, false
	}
	m := c.members[c.index]
	c.index++
	return m.Key, m.Value, true
}

func find(obj *jval.Value, key string) int {
	if obj == nil || obj.Kind != jval.KindObject {
		return -1
	}
	for i, m := range obj.Members() {
		if m.Key == key {
			return i
		}
	}
	return -1
}

func put(obj *jval.Value, key string, child *jval.Value) error {
	members := obj.Members()
	if i := find(obj, key); i >= 0 {
		members[i].Value.Destroy()
		members[i].Value = child
		return nil
	}
	obj.SetMembers(append(members, jval.Pair{Key: key, Value: child}))
	return nil
}

func newPrimitive(kind jval.Kind, payload any) (*jval.Value, bool) {
	switch kind {
	case jval.KindString:
		s, ok := payload.(string)
		return jval.NewString(s), ok
	case jval.KindNumber:
		n, ok := payload.(float64)
		return jval.NewNumber(n), ok
	case jval.KindBool:
		b, ok := payload.(bool)
		return jval.NewBool(b), ok
	default:
		return nil, false
	}
}

func primitivePayload(v *jval.Value) any {
	switch v.Kind {
	case jval.KindString:
		return v.Str()
	case jval.KindNumber:
		return v.Number()
	case jval.KindBool:
		return v.Bool()
	default:
		return nil
	}
}
