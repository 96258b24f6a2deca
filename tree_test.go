package abit

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	legalKeys   = []string{"a", "null obj", strings.Repeat(" ", 128), strings.Repeat(" ", 129), strings.Repeat(" ", 255), strings.Repeat(" ", 256)}
	illegalKeys = []string{"", strings.Repeat(" ", 257), strings.Repeat(" ", 6969)}
)

func TestPutKeyBounds(t *testing.T) {
	values := []Value{Null{}, Bool(true), Bool(false), Int(6969696969420), NewBlob([]byte{1, 2}), String("s"), NewArray(), NewTree()}
	for _, v := range values {
		tree := NewTree()
		for _, k := range legalKeys {
			if err := tree.Put(k, v); err != nil {
				t.Fatalf("Put(%d-byte key, %v): %v", len(k), v.Kind(), err)
			}
		}
		for _, k := range illegalKeys {
			err := tree.Put(k, v)
			if !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("Put(%d-byte key, %v): expected invalid key, got %v", len(k), v.Kind(), err)
			}
		}
		if tree.Len() != len(legalKeys) {
			t.Fatalf("Len: got %d want %d", tree.Len(), len(legalKeys))
		}
	}
}

func TestKeyBoundsCountBytes(t *testing.T) {
	// 64 four-byte runes: 256 bytes
	if err := CheckKey(strings.Repeat("💀", 64)); err != nil {
		t.Fatalf("256-byte key rejected: %v", err)
	}
	if err := CheckKey(strings.Repeat("💀", 64) + "x"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("257-byte key accepted: %v", err)
	}
}

func TestCompareKeys(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a", "a", 0},
		{"a", "b", -1},
		{"b", "aa", -1},
		{"zz", "aaa", -1},
		{"ab", "aa", 1},
		// signed byte order: 0xC3 sorts before 'z'
		{"\xc3", "z", -1},
		{"\x7f", "\x80", 1},
	}
	for _, c := range cases {
		if got := CompareKeys(c.a, c.b); got != c.want {
			t.Fatalf("CompareKeys(%q, %q): got %d want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestTreeKeysCanonicalOrder(t *testing.T) {
	tree := NewTree()
	for _, k := range []string{"ccc", "b", "aa", "a", "é", "ab"} {
		if err := tree.Put(k, Null{}); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{"a", "b", "é", "aa", "ab", "ccc"}
	if diff := cmp.Diff(want, tree.Keys()); diff != "" {
		t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
	}
	var iterated []string
	for k := range tree.All() {
		iterated = append(iterated, k)
	}
	if diff := cmp.Diff(want, iterated); diff != "" {
		t.Fatalf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeAccessors(t *testing.T) {
	tree := NewTree()
	mustPut(t, tree, "n", nil)
	mustPut(t, tree, "b", Bool(true))
	mustPut(t, tree, "i", Int(-5))
	mustPut(t, tree, "blob", NewBlob([]byte("xyz")))
	mustPut(t, tree, "s", String("str"))
	mustPut(t, tree, "arr", NewArray(Int(1)))
	mustPut(t, tree, "tree", NewTree())

	if err := tree.GetNull("n"); err != nil {
		t.Fatalf("GetNull: %v", err)
	}
	if b, err := tree.GetBool("b"); err != nil || !b {
		t.Fatalf("GetBool: %v %v", b, err)
	}
	if i, err := tree.GetInt("i"); err != nil || i != -5 {
		t.Fatalf("GetInt: %v %v", i, err)
	}
	if b, err := tree.GetBlob("blob"); err != nil || string(b) != "xyz" {
		t.Fatalf("GetBlob: %q %v", b, err)
	}
	if s, err := tree.GetString("s"); err != nil || s != "str" {
		t.Fatalf("GetString: %q %v", s, err)
	}
	if a, err := tree.GetArray("arr"); err != nil || a.Len() != 1 {
		t.Fatalf("GetArray: %v", err)
	}
	if sub, err := tree.GetTree("tree"); err != nil || !sub.IsEmpty() {
		t.Fatalf("GetTree: %v", err)
	}
	if k, err := tree.TypeOf("blob"); err != nil || k != KindBlob || k.String() != "blob" {
		t.Fatalf("TypeOf: %v %v", k, err)
	}

	// never coerce
	if _, err := tree.GetInt("b"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetInt on boolean: %v", err)
	}
	if _, err := tree.GetString("blob"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetString on blob: %v", err)
	}
	if _, err := tree.GetBlob("s"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetBlob on string: %v", err)
	}
	if _, err := tree.GetTree("arr"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetTree on array: %v", err)
	}
	if err := tree.GetNull("i"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("GetNull on integer: %v", err)
	}
	if _, err := tree.GetBool("missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("GetBool on missing key: %v", err)
	}
	if KindOf(tree.GetNull("i")) != ErrTypeMismatch {
		t.Fatalf("KindOf did not report type mismatch")
	}

	// replace
	mustPut(t, tree, "i", String("now a string"))
	if k, _ := tree.TypeOf("i"); k != KindString {
		t.Fatalf("Put did not replace: %v", k)
	}

	if v, ok := tree.Remove("i"); !ok || v.Kind() != KindString {
		t.Fatalf("Remove: %v %v", v, ok)
	}
	if tree.Has("i") {
		t.Fatalf("key still present after Remove")
	}
	if _, ok := tree.Remove("i"); ok {
		t.Fatalf("second Remove reported success")
	}
	tree.Clear()
	if !tree.IsEmpty() || tree.Len() != 0 {
		t.Fatalf("Clear left %d entries", tree.Len())
	}
}

func TestZeroValueTree(t *testing.T) {
	var tree Tree
	if !tree.IsEmpty() {
		t.Fatalf("zero Tree not empty")
	}
	mustPut(t, &tree, "k", Int(1))
	b, err := Marshal(&tree)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0x00, 'k', 0x02, 0x01}, b); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeCloneIsDeep(t *testing.T) {
	tree := NewTree()
	inner := NewArray(NewBlob([]byte{1}))
	mustPut(t, tree, "a", inner)
	clone := tree.Clone()
	if !clone.Equal(tree) {
		t.Fatalf("clone differs")
	}
	if err := inner.Add(Int(2)); err != nil {
		t.Fatal(err)
	}
	blob, _ := inner.GetBlob(0)
	blob[0] = 9
	if clone.Equal(tree) {
		t.Fatalf("clone shares structure with original")
	}
}

func TestIntegerRoundtripRandom(t *testing.T) {
	r := rand.New(rand.NewPCG(69, 420))
	tree := NewTree()
	for i := 0; i < 10000; i++ {
		v := int64(r.Uint64())
		mustPut(t, tree, "int obj", Int(v))
		mustPut(t, tree, "meow", Int(v+5))
		mustPut(t, tree, "meowmeow", Int(-v))
		b, err := Marshal(tree)
		if err != nil {
			t.Fatal(err)
		}
		got, err := Unmarshal(b)
		if err != nil {
			t.Fatalf("decode %d: %v", v, err)
		}
		for k, want := range map[string]int64{"int obj": v, "meow": v + 5, "meowmeow": -v} {
			if n, err := got.GetInt(k); err != nil || n != want {
				t.Fatalf("%s: got %d want %d (err=%v)", k, n, want, err)
			}
		}
	}
}

func TestBlobRoundtripSizes(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	tree := NewTree()
	for size := 0; size < 10000; size += 1 + size/8 {
		for _, k := range legalKeys {
			b := make([]byte, size)
			for i := range b {
				b[i] = byte(r.Uint32())
			}
			mustPut(t, tree, k, NewBlob(b))
			enc, err := Marshal(tree)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unmarshal(enc)
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
			gb, err := got.GetBlob(k)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(gb, b) {
				t.Fatalf("size %d: blob mismatch", size)
			}
		}
	}
}

func TestStringRoundtripSizes(t *testing.T) {
	r := rand.New(rand.NewPCG(8, 8))
	tree := NewTree()
	for size := 0; size < 10000; size += 1 + size/8 {
		raw := make([]byte, size)
		for i := range raw {
			raw[i] = byte(r.Uint32())
		}
		// Text decoded from random bytes, and the raw bytes themselves:
		// both must come back unchanged.
		for _, s := range []string{strings.ToValidUTF8(string(raw), "�"), string(raw)} {
			mustPut(t, tree, "string obj", String(s))
			enc, err := Marshal(tree)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unmarshal(enc)
			if err != nil {
				t.Fatalf("size %d: %v", size, err)
			}
			if gs, err := got.GetString("string obj"); err != nil || gs != s {
				t.Fatalf("size %d: string mismatch (err=%v)", size, err)
			}
			again, err := Marshal(got)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(enc, again) {
				t.Fatalf("size %d: re-encoding differs", size)
			}
		}
	}
}

func TestContainersRejectCycles(t *testing.T) {
	tree := NewTree()
	if err := tree.Put("self", tree); !errors.Is(err, ErrCyclicValue) {
		t.Fatalf("Put(self): expected cyclic value, got %v", err)
	}

	// tree -> arr -> sub, then close the loop from the bottom.
	sub := NewTree()
	arr := NewArray(sub)
	mustPut(t, tree, "arr", arr)
	if err := sub.Put("up", tree); !errors.Is(err, ErrCyclicValue) {
		t.Fatalf("Put(ancestor): expected cyclic value, got %v", err)
	}
	if err := arr.Add(Int(1), tree); !errors.Is(err, ErrCyclicValue) {
		t.Fatalf("Add(ancestor): expected cyclic value, got %v", err)
	}
	if arr.Len() != 1 {
		t.Fatalf("failed Add appended values: Len %d", arr.Len())
	}
	if err := arr.Insert(0, arr); !errors.Is(err, ErrCyclicValue) {
		t.Fatalf("Insert(self): expected cyclic value, got %v", err)
	}
	if err := arr.Set(0, NewArray(tree)); !errors.Is(err, ErrCyclicValue) {
		t.Fatalf("Set(ancestor): expected cyclic value, got %v", err)
	}

	// Sharing a value between siblings is not a cycle.
	leaf := NewTree()
	mustPut(t, tree, "x", leaf)
	if err := arr.Add(leaf); err != nil {
		t.Fatal(err)
	}
	if _, err := Marshal(tree); err != nil {
		t.Fatal(err)
	}
}

func TestPutOnNilTreePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	var tree *Tree
	_ = tree.Put("a", Null{})
}

func TestTreeString(t *testing.T) {
	tree := NewTree()
	mustPut(t, tree, "a", Int(128))
	mustPut(t, tree, "b", Bool(true))
	if got, want := tree.String(), "00 61 12 80 00 00 62 11"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := NewTree().String(); got != "" {
		t.Fatalf("empty tree: got %q", got)
	}
}
