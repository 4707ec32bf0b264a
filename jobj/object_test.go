package jobj

import (
	"errors"
	"testing"

	"github.com/tzimuto1/json-parser/jerr"
	"github.com/tzimuto1/json-parser/jval"
)

func TestGetFirstHit(t *testing.T) {
	obj := jval.NewObject()
	obj.SetMembers([]jval.Pair{
		{Key: "a", Value: jval.NewNumber(1)},
		{Key: "a", Value: jval.NewNumber(2)},
	})
	v := Get(obj, "a")
	if v == nil || v.Number() != 1 {
		t.Fatalf("Get should return first matching pair, got %+v", v)
	}
}

func TestGetAllInsertionOrder(t *testing.T) {
	obj := jval.NewObject()
	obj.SetMembers([]jval.Pair{
		{Key: "a", Value: jval.NewNumber(1)},
		{Key: "b", Value: jval.NewNumber(2)},
	})
	all := GetAll(obj)
	if len(all) != 2 || all[0].Number() != 1 || all[1].Number() != 2 {
		t.Fatalf("GetAll order wrong: %+v", all)
	}
}

func TestPutPrimitiveReplacesExisting(t *testing.T) {
	obj := jval.NewObject()
	if err := PutPrimitive(obj, "a", "first", jval.KindString); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := PutPrimitive(obj, "a", "second", jval.KindString); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Size() != 1 {
		t.Fatalf("expected replace, not append: size = %d", obj.Size())
	}
	v := Get(obj, "a")
	if v.Str() != "second" {
		t.Fatalf("expected replaced value, got %q", v.Str())
	}
}

func TestPutPrimitiveAppendsNew(t *testing.T) {
	obj := jval.NewObject()
	_ = PutPrimitive(obj, "a", 1.0, jval.KindNumber)
	_ = PutPrimitive(obj, "b", 2.0, jval.KindNumber)
	if obj.Size() != 2 {
		t.Fatalf("expected 2 pairs, got %d", obj.Size())
	}
}

func TestPutPrimitiveKindMismatch(t *testing.T) {
	obj := jval.NewObject()
	err := PutPrimitive(obj, "a", 1, jval.KindString)
	var ae *jerr.APIError
	if !errors.As(err, &ae) || ae.Code != jerr.ValueInvalid {
		t.Fatalf("expected ValueInvalid, got %v", err)
	}
}

func TestRemoveDeletesAllMatches(t *testing.T) {
	obj := jval.NewObject()
	obj.SetMembers([]jval.Pair{
		{Key: "a", Value: jval.NewNumber(1)},
		{Key: "b", Value: jval.NewNumber(2)},
		{Key: "a", Value: jval.NewNumber(3)},
	})
	Remove(obj, "a")
	if obj.Size() != 1 {
		t.Fatalf("expected 1 surviving pair, got %d", obj.Size())
	}
	if obj.Members()[0].Key != "b" {
		t.Fatalf("expected survivor 'b', got %q", obj.Members()[0].Key)
	}
}

func TestGetPrimitiveNotFound(t *testing.T) {
	obj := jval.NewObject()
	_, err := GetPrimitive(obj, "missing", jval.KindString)
	var ae *jerr.APIError
	if !errors.As(err, &ae) || ae.Code != jerr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetPrimitiveNotObject(t *testing.T) {
	_, err := GetPrimitive(jval.NewArray(), "a", jval.KindString)
	var ae *jerr.APIError
	if !errors.As(err, &ae) || ae.Code != jerr.NotObject {
		t.Fatalf("expected NotObject, got %v", err)
	}
}

func TestCursorIteratesInsertionOrder(t *testing.T) {
	obj := jval.NewObject()
	obj.SetMembers([]jval.Pair{
		{Key: "a", Value: jval.NewNumber(1)},
		{Key: "b", Value: jval.NewNumber(2)},
	})
	c := NewCursor(obj)
	var keys []string
	for {
		k, v, ok := c.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
		_ = v
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("unexpected iteration order: %v", keys)
	}
}

func TestHasPrimitiveAndHasKey(t *testing.T) {
	obj := jval.NewObject()
	obj.SetMembers([]jval.Pair{{Key: "flag", Value: jval.NewBool(true)}})
	if !HasKey(obj, "flag") {
		t.Fatalf("expected HasKey to find 'flag'")
	}
	if !HasPrimitive(obj, true, jval.KindBool) {
		t.Fatalf("expected HasPrimitive to find true")
	}
	if HasPrimitive(obj, false, jval.KindBool) {
		t.Fatalf("did not expect HasPrimitive to match false")
	}
}
