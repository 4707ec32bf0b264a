package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tzimuto1/json-parser/jarr"
	"github.com/tzimuto1/json-parser/jobj"
	"github.com/tzimuto1/json-parser/jval"
)

// query walks root along a dot-separated path of object keys and array
// indices, e.g. "countries.0.name" or "k0.1.k1", returning the value found
// there. An empty path returns root unchanged.
func query(root *jval.Value, path string) (*jval.Value, error) {
	if path == "" {
		return root, nil
	}

	v := root
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("query: empty path segment at position %d", i)
		}
		next, err := step(v, seg)
		if err != nil {
			return nil, fmt.Errorf("query: at %q: %w", strings.Join(segments[:i+1], "."), err)
		}
		v = next
	}
	return v, nil
}

func step(v *jval.Value, seg string) (*jval.Value, error) {
	if v == nil {
		return nil, fmt.Errorf("nil value")
	}
	switch v.Kind {
	case jval.KindObject:
		child := jobj.Get(v, seg)
		if child == nil {
			return nil, fmt.Errorf("no key %q", seg)
		}
		return child, nil
	case jval.KindArray:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, fmt.Errorf("%q is not an array index", seg)
		}
		return jarr.Get(v, idx)
	default:
		return nil, fmt.Errorf("cannot step into a %s value with %q", v.Kind, seg)
	}
}
