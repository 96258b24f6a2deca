// Package abit implements ABIT, a canonical binary encoding for trees of
// nulls, booleans, signed integers, blobs, strings, arrays and nested
// trees.
//
// Every value has exactly one valid encoding. Integers and lengths use
// the narrowest two's-complement width, tree entries are written in
// canonical key order (shorter keys first, then by bytes), and the
// decoder rejects anything else: non-minimal integers, unordered or
// duplicate keys, truncated payloads and trailing bytes. Two equal trees
// therefore always produce identical bytes, which makes encodings safe to
// compare or hash (see Digest).
//
// A document is a Tree. Marshal writes its entries with no outer header;
// Unmarshal expects the entries to span the whole input.
package abit
