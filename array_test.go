package abit

import (
	"errors"
	"testing"
)

func arrayInts(t *testing.T, a *Array) []int64 {
	t.Helper()
	var out []int64
	for i := range a.All() {
		n, err := a.GetInt(i)
		if err != nil {
			t.Fatalf("GetInt(%d): %v", i, err)
		}
		out = append(out, n)
	}
	return out
}

func TestArrayInsertRemove(t *testing.T) {
	a := NewArray(Int(1), Int(3))
	if err := a.Insert(1, Int(2)); err != nil {
		t.Fatal(err)
	}
	if err := a.Insert(3, Int(4)); err != nil {
		t.Fatalf("insert at Len: %v", err)
	}
	if err := a.Insert(0, Int(0)); err != nil {
		t.Fatal(err)
	}
	got := arrayInts(t, a)
	want := []int64{0, 1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}

	v, err := a.Remove(2)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := AsInt(v); n != 2 {
		t.Fatalf("removed %v, want 2", v)
	}
	if n, _ := a.GetInt(2); n != 3 {
		t.Fatalf("elements did not shift: a[2]=%d", n)
	}
	if err := a.Set(0, String("zero")); err != nil {
		t.Fatal(err)
	}
	if k, _ := a.TypeOf(0); k != KindString {
		t.Fatalf("Set did not replace: %v", k)
	}
	a.Clear()
	if !a.IsEmpty() {
		t.Fatalf("Clear left %d elements", a.Len())
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	a := NewArray(Null{}, Bool(true))
	check := func(name string, err error) {
		t.Helper()
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s: expected index out of range, got %v", name, err)
		}
	}
	_, err := a.Get(2)
	check("Get(2)", err)
	_, err = a.Get(-1)
	check("Get(-1)", err)
	check("Insert(3)", a.Insert(3, Null{}))
	check("Insert(-1)", a.Insert(-1, Null{}))
	check("Set(2)", a.Set(2, Null{}))
	_, err = a.Remove(2)
	check("Remove(2)", err)
	_, err = a.GetBool(5)
	check("GetBool(5)", err)
	if a.Len() != 2 {
		t.Fatalf("failed operations changed the array: len %d", a.Len())
	}
}

func TestArrayTypedGetters(t *testing.T) {
	a := NewArray(nil, Bool(false), Int(7), Blob{1}, String("s"), NewArray(), NewTree())
	if err := a.GetNull(0); err != nil {
		t.Fatal(err)
	}
	if b, err := a.GetBool(1); err != nil || b {
		t.Fatalf("GetBool: %v %v", b, err)
	}
	if n, err := a.GetInt(2); err != nil || n != 7 {
		t.Fatalf("GetInt: %v %v", n, err)
	}
	if b, err := a.GetBlob(3); err != nil || len(b) != 1 {
		t.Fatalf("GetBlob: %v %v", b, err)
	}
	if s, err := a.GetString(4); err != nil || s != "s" {
		t.Fatalf("GetString: %v %v", s, err)
	}
	if _, err := a.GetArray(5); err != nil {
		t.Fatal(err)
	}
	if _, err := a.GetTree(6); err != nil {
		t.Fatal(err)
	}
	for i := range a.All() {
		if i == 2 {
			continue
		}
		if _, err := a.GetInt(i); !errors.Is(err, ErrTypeMismatch) {
			t.Fatalf("GetInt(%d): expected type mismatch, got %v", i, err)
		}
	}
}

func TestArrayDuplicatesAndOrderSurviveRoundtrip(t *testing.T) {
	a := NewArray(String("1"), Int(2), Bool(true), Int(2), String("1"))
	b, err := MarshalValue(a)
	if err != nil {
		t.Fatal(err)
	}
	v, err := UnmarshalValue(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := AsArray(v)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(a) {
		t.Fatalf("array changed across roundtrip")
	}
	if got.Equal(NewArray(String("1"), Int(2), Bool(true), String("1"), Int(2))) {
		t.Fatalf("Equal ignored element order")
	}
}

func TestArrayClearDropsReferences(t *testing.T) {
	a := NewArray(String("x"), NewTree())
	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("Len after Clear: %d", a.Len())
	}
	for i, v := range a.values[:2] {
		if v != nil {
			t.Fatalf("slot %d still holds %v", i, v.Kind())
		}
	}
}
