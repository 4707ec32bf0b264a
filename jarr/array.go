// Package jarr implements the array accessor/mutator API of spec.md §4.4:
// bounds-checked indexed access, append, replace, and removal over
// jval.Value's ordered element slice.
package jarr

import (
	"github.com/tzimuto1/json-parser/jerr"
	"github.com/tzimuto1/json-parser/jval"
)

// Get returns a reference to element i, bounds-checked.
func Get(arr *jval.Value, i int) (*jval.Value, error) {
	if arr == nil || arr.Kind != jval.KindArray {
		return nil, jerr.NewAPIError(jerr.NotArray, "jarr.Get")
	}
	elems := arr.Elems()
	if i < 0 || i >= len(elems) {
		return nil, jerr.NewAPIError(jerr.NotFound, "jarr.Get")
	}
	return elems[i], nil
}

// GetPrimitive copies out the payload of element i if it matches kind.
func GetPrimitive(arr *jval.Value, i int, kind jval.Kind) (any, error) {
	v, err := Get(arr, i)
	if err != nil {
		return nil, err
	}
	if v.Kind != kind {
		return nil, jerr.NewAPIError(jerr.ValueInvalid, "jarr.GetPrimitive")
	}
	return primitivePayload(v), nil
}

// IndexOfPrimitive returns the index of the first element equal to the
// given primitive, or -1 if arr is not an array or no element matches.
func IndexOfPrimitive(arr *jval.Value, payload any, kind jval.Kind) int {
	if arr == nil || arr.Kind != jval.KindArray {
		return -1
	}
	for i, e := range arr.Elems() {
		if e.EqualsPrimitive(payload, kind) {
			return i
		}
	}
	return -1
}

// Set replaces element i, destroying the previous value. Bounds-checked.
func Set(arr *jval.Value, i int, payload any, kind jval.Kind) error {
	if arr == nil || arr.Kind != jval.KindArray {
		return jerr.NewAPIError(jerr.NotArray, "jarr.Set")
	}
	elems := arr.Elems()
	if i < 0 || i >= len(elems) {
		return jerr.NewAPIError(jerr.NotFound, "jarr.Set")
	}
	child, ok := newPrimitive(kind, payload)
	if !ok {
		return jerr.NewAPIError(jerr.ValueInvalid, "jarr.Set")
	}
	elems[i].Destroy()
	elems[i] = child
	return nil
}

// Append grows arr as needed and appends a primitive element at the end.
func Append(arr *jval.Value, payload any, kind jval.Kind) error {
	if arr == nil || arr.Kind != jval.KindArray {
		return jerr.NewAPIError(jerr.NotArray, "jarr.Append")
	}
	child, ok := newPrimitive(kind, payload)
	if !ok {
		return jerr.NewAPIError(jerr.ValueInvalid, "jarr.Append")
	}
	arr.SetElems(append(arr.Elems(), child))
	return nil
}

// AppendComplex takes ownership of child (which must be Object, Array, or
// Null) and appends it at the end. Complex values go through this
// separate path rather than Append, per spec.md Design Notes.
func AppendComplex(arr *jval.Value, child *jval.Value) error {
	if arr == nil || arr.Kind != jval.KindArray {
		return jerr.NewAPIError(jerr.NotArray, "jarr.AppendComplex")
	}
	if child == nil || !child.Kind.IsComplex() {
		return jerr.NewAPIError(jerr.ValueInvalid, "jarr.AppendComplex")
	}
	arr.SetElems(append(arr.Elems(), child))
	return nil
}

// RemoveAt destroys element i and shifts successors left.
func RemoveAt(arr *jval.Value, i int) error {
	if arr == nil || arr.Kind != jval.KindArray {
		return jerr.NewAPIError(jerr.NotArray, "jarr.RemoveAt")
	}
	elems := arr.Elems()
	if i < 0 || i >= len(elems) {
		return jerr.NewAPIError(jerr.NotFound, "jarr.RemoveAt")
	}
	elems[i].Destroy()
	arr.SetElems(append(elems[:i], elems[i+1:]...))
	return nil
}

// RemoveFirst removes the first element equal to the given primitive. It
// is a no-op if arr is not an array or no element matches.
func RemoveFirst(arr *jval.Value, payload any, kind jval.Kind) {
	i := IndexOfPrimitive(arr, payload, kind)
	if i < 0 {
		return
	}
	_ = RemoveAt(arr, i)
}

// Elements returns the underlying ordered slice, a borrowed view usable
// for sorting with sort.Slice and external comparators. Mutating element
// order through this slice is allowed; adding/removing elements should
// instead go through Append/RemoveAt so arr's length tracking stays
// consistent.
func Elements(arr *jval.Value) []*jval.Value {
	if arr == nil || arr.Kind != jval.KindArray {
		return nil
	}
	return arr.Elems()
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
