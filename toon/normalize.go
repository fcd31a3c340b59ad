package toon

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxDepth is the normalization recursion bound used when
// EncodeOptions.MaxDepth is zero.
const DefaultMaxDepth = 1000

// maxSafeInteger is the largest integer exactly representable as a
// float64 (2^53 - 1). Integers beyond it normalize to strings.
const maxSafeInteger = 9007199254740991

// Marshaler is the custom-serialization capability. A host type may
// implement it to supply its own TOON representation; the result is
// normalized recursively. Returning the receiver itself (the same
// reference) falls through to the structural rules instead.
type Marshaler interface {
	MarshalTOON() any
}

// Normalize converts an arbitrary host value into the canonical Value
// model using the default depth bound. It is total apart from
// *MaxDepthError.
func Normalize(v any) (*Value, error) {
	return normalize(v, 0, DefaultMaxDepth)
}

// NormalizeWithOptions converts a host value using the options' depth
// bound.
func NormalizeWithOptions(v any, opts EncodeOptions) (*Value, error) {
	opts = opts.withDefaults()
	return normalize(v, 0, opts.MaxDepth)
}

func normalize(v any, depth, limit int) (*Value, error) {
	if depth > limit {
		return nil, &MaxDepthError{Depth: depth, Limit: limit}
	}
	if v == nil {
		return Null(), nil
	}

	// Custom-serialization hook: exactly one level of indirection.
	if m, ok := v.(Marshaler); ok {
		if r := m.MarshalTOON(); !sameReference(r, v) {
			return normalize(r, depth+1, limit)
		}
	}

	switch val := v.(type) {
	case *Value:
		if val == nil {
			return Null(), nil
		}
		return val, nil
	case Value:
		c := val
		return &c, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case float64:
		return normFloat(val), nil
	case float32:
		return normFloat(float64(val)), nil
	case int:
		return normInt(int64(val)), nil
	case int8:
		return Number(float64(val)), nil
	case int16:
		return Number(float64(val)), nil
	case int32:
		return Number(float64(val)), nil
	case int64:
		return normInt(val), nil
	case uint:
		return normUint(uint64(val)), nil
	case uint8:
		return Number(float64(val)), nil
	case uint16:
		return Number(float64(val)), nil
	case uint32:
		return Number(float64(val)), nil
	case uint64:
		return normUint(val), nil
	case uintptr:
		return normUint(uint64(val)), nil
	case time.Time:
		return String(val.Format(time.RFC3339)), nil
	case time.Duration:
		return String(val.String()), nil
	case uuid.UUID:
		return String(val.String()), nil
	case json.Number:
		return normJSONNumber(val), nil
	case *big.Int:
		if val == nil {
			return Null(), nil
		}
		return normBigInt(val), nil
	case big.Int:
		return normBigInt(&val), nil
	case *big.Float:
		if val == nil {
			return Null(), nil
		}
		return normBigFloat(val), nil
	case big.Float:
		return normBigFloat(&val), nil
	case []byte:
		return String(base64.StdEncoding.EncodeToString(val)), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalize(rv.Elem().Interface(), depth, limit)

	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return normInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return normUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return normFloat(rv.Float()), nil

	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		if isSetType(rv.Type()) {
			return normalizeSet(rv, depth, limit)
		}
		return normalizeMap(rv, depth, limit)

	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		return normalizeSeq(rv, depth, limit)
	case reflect.Array:
		return normalizeSeq(rv, depth, limit)

	case reflect.Struct:
		return normalizeStruct(rv, depth, limit)

	default:
		// Executable and opaque handles (chan, func, unsafe pointer).
		return Null(), nil
	}
}

func normFloat(f float64) *Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Number(f)
}

func normInt(n int64) *Value {
	if n > maxSafeInteger || n < -maxSafeInteger {
		return String(strconv.FormatInt(n, 10))
	}
	return Number(float64(n))
}

func normUint(n uint64) *Value {
	if n > maxSafeInteger {
		return String(strconv.FormatUint(n, 10))
	}
	return Number(float64(n))
}

func normBigInt(x *big.Int) *Value {
	if x.IsInt64() {
		return normInt(x.Int64())
	}
	return String(x.String())
}

func normBigFloat(x *big.Float) *Value {
	if x.IsInf() {
		return Null()
	}
	if f, acc := x.Float64(); acc == big.Exact {
		return normFloat(f)
	}
	return String(x.Text('g', -1))
}

func normJSONNumber(n json.Number) *Value {
	s := n.String()
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return normInt(i)
	}
	// Integer too wide for int64: keep the exact decimal text.
	if _, ok := new(big.Int).SetString(s, 10); ok {
		return String(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return String(s)
	}
	return normFloat(f)
}

// sameReference reports whether a and b are the same underlying
// reference. Only reference kinds can compare true; values of other
// kinds are never "the same input".
func sameReference(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	return false
}

// isSetType reports whether t is the conventional Go set shape:
// a map with an empty-struct element type.
func isSetType(t reflect.Type) bool {
	return t.Kind() == reflect.Map &&
		t.Elem().Kind() == reflect.Struct &&
		t.Elem().NumField() == 0
}

// normalizeSet converts a set to an array sorted by the elements'
// canonical encodings. Map iteration order is unspecified; sorting
// makes the output deterministic.
func normalizeSet(rv reflect.Value, depth, limit int) (*Value, error) {
	elems := make([]*Value, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		nv, err := normalize(iter.Key().Interface(), depth+1, limit)
		if err != nil {
			return nil, err
		}
		elems = append(elems, nv)
	}
	sort.Slice(elems, func(i, j int) bool {
		return sortKey(elems[i]) < sortKey(elems[j])
	})
	return Array(elems...), nil
}

func normalizeSeq(rv reflect.Value, depth, limit int) (*Value, error) {
	elems := make([]*Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		nv, err := normalize(rv.Index(i).Interface(), depth+1, limit)
		if err != nil {
			return nil, err
		}
		elems[i] = nv
	}
	return Array(elems...), nil
}

// normalizeMap converts a map to an object with bytewise-sorted keys.
// Distinct map keys that stringify identically collapse (last wins).
func normalizeMap(rv reflect.Value, depth, limit int) (*Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		ks, err := normalizeMapKey(iter.Key(), depth, limit)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: ks, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	obj := Object()
	for _, e := range entries {
		nv, err := normalize(e.val.Interface(), depth+1, limit)
		if err != nil {
			return nil, err
		}
		obj.Set(e.key, nv)
	}
	return obj, nil
}

func normalizeMapKey(k reflect.Value, depth, limit int) (string, error) {
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	nv, err := normalize(k.Interface(), depth+1, limit)
	if err != nil {
		return "", err
	}
	if nv.Kind() == KindString {
		return nv.strVal, nil
	}
	return sortKey(nv), nil
}

// normalizeStruct converts a struct to an object in field declaration
// order, honoring json tags (name, "-", omitempty).
func normalizeStruct(rv reflect.Value, depth, limit int) (*Value, error) {
	t := rv.Type()
	obj := Object()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name := sf.Name
		omitempty := false
		if tag, ok := sf.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" && len(parts) == 1 {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitempty = true
				}
			}
		}
		fv := rv.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		nv, err := normalize(fv.Interface(), depth+1, limit)
		if err != nil {
			return nil, err
		}
		obj.Set(name, nv)
	}
	return obj, nil
}

// sortKey returns a deterministic ordering key for a normalized value.
// Used for set element ordering and non-string map keys.
func sortKey(v *Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	case KindNumber:
		return canonNumber(v.numVal)
	case KindString:
		return v.strVal
	case KindArray:
		parts := make([]string, len(v.arrVal))
		for i, el := range v.arrVal {
			parts[i] = sortKey(el)
		}
		return "[" + strings.Join(parts, ",") + "]"
	case KindObject:
		parts := make([]string, len(v.objVal))
		for i, f := range v.objVal {
			parts[i] = f.Key + ":" + sortKey(f.Value)
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		return ""
	}
}
