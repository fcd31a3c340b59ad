// Package toon implements the TOON encoder, a token-optimized text
// serialization of the JSON data model.
//
// TOON is designed to be:
//   - Token-cheap (minimal quoting, no braces for objects, tabular arrays)
//   - Line-oriented and indentation-structured
//   - Deterministic (same value + same options = byte-identical output)
//   - Faithful to the JSON data model (null, bool, number, string, array, object)
//
// # Data Model
//
// Scalars: null, bool, number, string
// Containers: array (ordered), object (ordered keys)
//
// # Syntax
//
//	Scalar field:   key: value
//	Nested object:  key:            (fields one level deeper)
//	Inline array:   key[3]: 1,2,3
//	Empty array:    key[0]
//	Tabular array:  key[2]{a,b}:
//	                  1,2
//	                  3,4
//	List array:     key[2]:
//	                  - first
//	                  - second
//	Folded keys:    a.b.c: 1        (safe key folding enabled)
//
// The field delimiter is configurable (comma, pipe, tab). A non-comma
// delimiter is recorded inside the array header so a reader can recover
// it from the header alone: [3|] or [3<TAB>].
//
// # Compaction
//
// Arrays of uniform records collapse into a tabular block: one header
// naming the columns shared by every element, then one row per element.
// Chains of single-key wrapper objects collapse into a dotted key when
// safe key folding is enabled and no collision is possible.
//
// # Example
//
//	users[2]{id,name,admin}:
//	  1,alice,true
//	  2,bob,false
//	config.server.port: 8080
package toon
