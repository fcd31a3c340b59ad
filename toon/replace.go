package toon

import "strconv"

// Replacer transforms or filters nodes before encoding. It receives
// the node's key ("" at the root, the decimal element index inside
// arrays), the normalized value, and the path of keys/indices from
// the root. The returned value replaces the node and is re-normalized
// before its children are visited; returning false omits the node
// entirely. The root cannot be omitted.
type Replacer func(key string, value *Value, path []string) (any, bool)

// applyReplacer runs the replacer pass over a normalized value,
// depth-first, parent before children, array indices ascending,
// object fields in insertion order.
func applyReplacer(root *Value, fn Replacer, limit int) (*Value, error) {
	out, omitted, err := replaceNode("", root, nil, fn, limit)
	if err != nil {
		return nil, err
	}
	if omitted {
		return root, nil
	}
	return out, nil
}

func replaceNode(key string, v *Value, path []string, fn Replacer, limit int) (*Value, bool, error) {
	r, keep := fn(key, v, path)
	if !keep {
		return nil, true, nil
	}

	nv := v
	if pv, ok := r.(*Value); !ok || pv != v {
		var err error
		if nv, err = normalize(r, 0, limit); err != nil {
			return nil, false, err
		}
	}

	switch nv.Kind() {
	case KindArray:
		elems := make([]*Value, 0, len(nv.arrVal))
		for i, el := range nv.arrVal {
			idx := strconv.Itoa(i)
			child, omitted, err := replaceNode(idx, el, childPath(path, idx), fn, limit)
			if err != nil {
				return nil, false, err
			}
			if omitted {
				continue
			}
			elems = append(elems, child)
		}
		return Array(elems...), false, nil

	case KindObject:
		fields := make([]Field, 0, len(nv.objVal))
		for _, f := range nv.objVal {
			child, omitted, err := replaceNode(f.Key, f.Value, childPath(path, f.Key), fn, limit)
			if err != nil {
				return nil, false, err
			}
			if omitted {
				continue
			}
			fields = append(fields, Field{Key: f.Key, Value: child})
		}
		return Object(fields...), false, nil

	default:
		return nv, false, nil
	}
}

func childPath(path []string, seg string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, seg)
}
