package toon

import (
	"strconv"
	"strings"
)

// ============================================================
// Array Formatting
// ============================================================
//
// Arrays classify into one of four formats, first match wins:
//
//   inline       [3]: 1,2,3            all elements primitive
//   tabular      [2]{a,b}:             uniform records, common keys
//                  1,2
//                  3,4
//   nested-list  [2]:                  arrays of primitive arrays
//                  - [2]: 1,2
//                  - [1]: 3
//   mixed-list   [2]:                  everything else
//                  - 1
//                  - key: value
//
// Tabular is the primary compaction mechanism: the common-key
// intersection guarantees every row has a value for every column, so
// the row grammar needs no missing-field sentinel.

// arrayHeader renders the bracketed length header. A non-comma
// delimiter is embedded so a reader can recover the separator from
// the header alone.
func arrayHeader(n int, delim Delimiter) string {
	return "[" + strconv.Itoa(n) + delim.headerToken() + "]"
}

func tabularHead(n int, cols []string, delim Delimiter) string {
	qcols := make([]string, len(cols))
	for i, c := range cols {
		qcols[i] = quoteKey(c)
	}
	return arrayHeader(n, delim) + "{" + strings.Join(qcols, delim.String()) + "}:"
}

// encodeKeyedArray renders an array bonded to a key header. qkey is
// the already-quoted key, or "" at the document root.
func (e *encoder) encodeKeyedArray(qkey string, v *Value, depth int) error {
	elems := v.arrVal
	n := len(elems)
	delim := e.opts.Delimiter

	if n == 0 {
		e.w.push(depth, qkey+"[0]")
		return nil
	}

	if allPrimitive(elems) {
		joined, err := e.inlineValues(elems)
		if err != nil {
			return err
		}
		e.w.push(depth, qkey+arrayHeader(n, delim)+": "+joined)
		return nil
	}

	if cols, ok := commonColumns(elems); ok {
		e.w.push(depth, qkey+tabularHead(n, cols, delim))
		return e.tabularRows(elems, cols, depth+1)
	}

	if nestedListEligible(elems) {
		e.w.push(depth, qkey+arrayHeader(n, delim)+":")
		for _, sub := range elems {
			line, err := e.listArrayLine(sub)
			if err != nil {
				return err
			}
			e.w.push(depth+1, line)
		}
		return nil
	}

	e.w.push(depth, qkey+arrayHeader(n, delim)+":")
	for _, el := range elems {
		if err := e.encodeListItem(el, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// inlineValues joins primitive elements with the active delimiter.
func (e *encoder) inlineValues(elems []*Value) (string, error) {
	parts := make([]string, len(elems))
	for i, el := range elems {
		s, err := encodePrimitive(el, e.opts.Delimiter)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, e.opts.Delimiter.String()), nil
}

// tabularRows renders one row per element, common-key values joined
// by the active delimiter. Keys beyond the common set are not
// rendered in tabular mode.
func (e *encoder) tabularRows(elems []*Value, cols []string, depth int) error {
	for _, el := range elems {
		parts := make([]string, len(cols))
		for i, c := range cols {
			s, err := encodePrimitive(el.Get(c), e.opts.Delimiter)
			if err != nil {
				return err
			}
			parts[i] = s
		}
		e.w.push(depth, strings.Join(parts, e.opts.Delimiter.String()))
	}
	return nil
}

// listArrayLine renders a primitive sub-array as a single list item.
func (e *encoder) listArrayLine(sub *Value) (string, error) {
	if sub.Len() == 0 {
		return "- []", nil
	}
	joined, err := e.inlineValues(sub.arrVal)
	if err != nil {
		return "", err
	}
	return "- " + arrayHeader(sub.Len(), e.opts.Delimiter) + ": " + joined, nil
}

// encodeListItem renders one element of a mixed-list array.
func (e *encoder) encodeListItem(v *Value, depth int) error {
	switch v.Kind() {
	case KindObject:
		return e.encodeListItemObject(v, depth)

	case KindArray:
		if v.Len() == 0 {
			e.w.push(depth, "- []")
			return nil
		}
		if allPrimitive(v.arrVal) {
			line, err := e.listArrayLine(v)
			if err != nil {
				return err
			}
			e.w.push(depth, line)
			return nil
		}
		// Non-primitive nested array: rendered as its own list block
		// rather than dropped.
		e.w.push(depth, "- "+arrayHeader(v.Len(), e.opts.Delimiter)+":")
		for _, el := range v.arrVal {
			if err := e.encodeListItem(el, depth+2); err != nil {
				return err
			}
		}
		return nil

	default:
		s, err := encodePrimitive(v, e.opts.Delimiter)
		if err != nil {
			return err
		}
		e.w.push(depth, "- "+s)
		return nil
	}
}

// encodeListItemObject renders an object list item. The first field
// rides on the marker line; remaining fields align one level deeper
// than the marker, nested content two levels deeper.
func (e *encoder) encodeListItemObject(v *Value, depth int) error {
	if v.Len() == 0 {
		e.w.push(depth, "-")
		return nil
	}

	first := v.objVal[0]
	qk := quoteKey(first.Key)
	fv := first.Value
	delim := e.opts.Delimiter

	switch {
	case fv.Kind() == KindArray && fv.Len() > 0:
		elems := fv.arrVal
		if cols, ok := commonColumns(elems); ok {
			e.w.push(depth, "- "+qk+tabularHead(len(elems), cols, delim))
			if err := e.tabularRows(elems, cols, depth+2); err != nil {
				return err
			}
		} else if allPrimitive(elems) {
			joined, err := e.inlineValues(elems)
			if err != nil {
				return err
			}
			e.w.push(depth, "- "+qk+arrayHeader(len(elems), delim)+": "+joined)
		} else {
			e.w.push(depth, "- "+qk+arrayHeader(len(elems), delim)+":")
			for _, el := range elems {
				if err := e.encodeListItem(el, depth+2); err != nil {
					return err
				}
			}
		}

	case fv.Kind() == KindArray:
		e.w.push(depth, "- "+qk+"[0]")

	case fv.Kind() == KindObject:
		e.w.push(depth, "- "+qk+":")
		if fv.Len() > 0 {
			if err := e.encodeObject(fv, depth+2, nil); err != nil {
				return err
			}
		}

	default:
		s, err := encodePrimitive(fv, delim)
		if err != nil {
			return err
		}
		e.w.push(depth, "- "+qk+": "+s)
	}

	if v.Len() > 1 {
		var siblings map[string]bool
		if e.opts.KeyFolding == FoldSafe {
			siblings = make(map[string]bool, len(v.objVal))
			for _, f := range v.objVal {
				siblings[f.Key] = true
			}
		}
		for _, f := range v.objVal[1:] {
			if err := e.encodeEntry(f.Key, f.Value, depth+1, nil, siblings); err != nil {
				return err
			}
		}
	}
	return nil
}

// ============================================================
// Classification
// ============================================================

func allPrimitive(elems []*Value) bool {
	for _, el := range elems {
		if !el.IsPrimitive() {
			return false
		}
	}
	return true
}

// nestedListEligible reports whether every element is an array of
// primitives. Arrays nesting deeper than one level take the
// mixed-list path instead.
func nestedListEligible(elems []*Value) bool {
	for _, el := range elems {
		if el.Kind() != KindArray || !allPrimitive(el.arrVal) {
			return false
		}
	}
	return true
}

// commonColumns computes the keys common to every element, in the
// first element's key order. The intersection runs against a single
// shrinking set rather than pairwise. Tabular-eligible only when
// every element is an object, the intersection is non-empty, and
// every common-key value fits the row grammar (primitive).
func commonColumns(elems []*Value) ([]string, bool) {
	first := elems[0]
	if first.Kind() != KindObject || first.Len() == 0 {
		return nil, false
	}
	common := make(map[string]bool, len(first.objVal))
	for _, f := range first.objVal {
		common[f.Key] = true
	}
	for _, el := range elems[1:] {
		if el.Kind() != KindObject {
			return nil, false
		}
		present := make(map[string]bool, len(el.objVal))
		for _, f := range el.objVal {
			present[f.Key] = true
		}
		for k := range common {
			if !present[k] {
				delete(common, k)
			}
		}
		if len(common) == 0 {
			return nil, false
		}
	}

	cols := make([]string, 0, len(common))
	for _, f := range first.objVal {
		if common[f.Key] {
			cols = append(cols, f.Key)
		}
	}
	for _, el := range elems {
		for _, c := range cols {
			if !el.Get(c).IsPrimitive() {
				return nil, false
			}
		}
	}
	return cols, true
}
