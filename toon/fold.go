package toon

import "strings"

// ============================================================
// Safe Key Folding
// ============================================================
//
// A chain of single-key wrapper objects collapses into one dotted
// key:
//
//   a:                a.b.c: 1
//     b:         →
//       c: 1
//
// Folding is rejected whenever the dotted key could be confused with
// a literal key: a segment that is not a bare identifier, a sibling
// key equal to the dotted form, or a dotted key already present
// literally at the document root.

type foldResult struct {
	key      string   // dotted joined key
	segments []string // individual chain segments, origin key first
	tail     *Value   // stopping object when it still has keys
	leaf     *Value   // stopping value when tail is nil
}

// tryFold decides whether (key, v) folds into a dotted key. Pure
// decision function; it never touches the writer.
func tryFold(key string, v *Value, siblings, rootDotted map[string]bool, path []string, opts EncodeOptions) (foldResult, bool) {
	if v.Kind() != KindObject {
		return foldResult{}, false
	}

	segments := []string{key}
	cur := v
	for cur.Kind() == KindObject && cur.Len() == 1 {
		if opts.FlattenDepth > 0 && len(segments) >= opts.FlattenDepth {
			break
		}
		f := cur.objVal[0]
		segments = append(segments, f.Key)
		cur = f.Value
	}

	if len(segments) < 2 {
		return foldResult{}, false
	}
	for _, seg := range segments {
		if !isIdentifierSegment(seg) {
			return foldResult{}, false
		}
	}

	dotted := strings.Join(segments, ".")
	if siblings[dotted] {
		return foldResult{}, false
	}
	qualified := dotted
	if len(path) > 0 {
		qualified = strings.Join(path, ".") + "." + dotted
	}
	if rootDotted[qualified] {
		return foldResult{}, false
	}

	fr := foldResult{key: dotted, segments: segments}
	if cur.Kind() == KindObject && cur.Len() > 0 {
		fr.tail = cur
	} else {
		fr.leaf = cur
	}
	return fr, true
}
