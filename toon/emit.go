package toon

import "strings"

// FoldMode selects the key-folding policy.
type FoldMode uint8

const (
	// FoldOff disables key folding.
	FoldOff FoldMode = iota
	// FoldSafe folds chains of single-key wrapper objects into dotted
	// keys when every segment is a bare identifier and no collision
	// with a literal key is possible.
	FoldSafe
)

// EncodeOptions configures the encoder. The zero value encodes with
// defaults (comma delimiter, folding off, two-space indent, depth
// bound 1000).
type EncodeOptions struct {
	// Delimiter separates inline and tabular values.
	Delimiter Delimiter

	// KeyFolding enables safe dotted-key folding.
	KeyFolding FoldMode

	// FlattenDepth bounds the folded segment count per key.
	// Zero means unbounded.
	FlattenDepth int

	// Indent is the number of spaces per indentation level (default 2).
	Indent int

	// MaxDepth bounds normalization recursion (default 1000).
	MaxDepth int

	// Replacer, when set, transforms or filters every node before
	// encoding.
	Replacer Replacer
}

// DefaultEncodeOptions returns the default configuration.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Delimiter:  DelimComma,
		KeyFolding: FoldOff,
		Indent:     2,
		MaxDepth:   DefaultMaxDepth,
	}
}

func (o EncodeOptions) withDefaults() EncodeOptions {
	if o.Indent <= 0 {
		o.Indent = 2
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Encode converts a host value to TOON text with default options.
func Encode(v any) (string, error) {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions converts a host value to TOON text. The output
// uses "\n" line separators and carries no trailing line terminator.
func EncodeWithOptions(v any, opts EncodeOptions) (string, error) {
	opts = opts.withDefaults()
	val, err := normalize(v, 0, opts.MaxDepth)
	if err != nil {
		return "", err
	}
	return encodeNormalized(val, opts)
}

// EncodeValue renders an already-normalized Value. The replacer pass
// still applies when configured; normalization is skipped.
func EncodeValue(v *Value, opts EncodeOptions) (string, error) {
	opts = opts.withDefaults()
	if v == nil {
		v = Null()
	}
	return encodeNormalized(v, opts)
}

func encodeNormalized(v *Value, opts EncodeOptions) (string, error) {
	if opts.Replacer != nil {
		var err error
		if v, err = applyReplacer(v, opts.Replacer, opts.MaxDepth); err != nil {
			return "", err
		}
	}
	e := &encoder{opts: opts, w: newLineWriter(opts.Indent)}
	if opts.KeyFolding == FoldSafe {
		e.rootDotted = dottedRootKeys(v)
	}
	if err := e.encodeRoot(v); err != nil {
		return "", err
	}
	return e.w.render(), nil
}

type encoder struct {
	opts EncodeOptions
	w    *lineWriter

	// Literal dotted keys present at the document root; folded keys
	// must not shadow them.
	rootDotted map[string]bool
}

// dottedRootKeys collects root-level keys that literally contain dots.
func dottedRootKeys(v *Value) map[string]bool {
	if v.Kind() != KindObject {
		return nil
	}
	var set map[string]bool
	for _, f := range v.objVal {
		if strings.Contains(f.Key, ".") {
			if set == nil {
				set = make(map[string]bool)
			}
			set[f.Key] = true
		}
	}
	return set
}

func (e *encoder) encodeRoot(v *Value) error {
	switch v.Kind() {
	case KindArray:
		return e.encodeKeyedArray("", v, 0)
	case KindObject:
		return e.encodeObject(v, 0, nil)
	default:
		s, err := encodePrimitive(v, e.opts.Delimiter)
		if err != nil {
			return err
		}
		e.w.push(0, s)
		return nil
	}
}

// encodeObject renders an object's fields in insertion order. An
// empty object contributes no lines.
func (e *encoder) encodeObject(v *Value, depth int, path []string) error {
	siblings := e.siblingSet(v)
	for _, f := range v.objVal {
		if err := e.encodeEntry(f.Key, f.Value, depth, path, siblings); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) siblingSet(v *Value) map[string]bool {
	if e.opts.KeyFolding != FoldSafe || v.Len() == 0 {
		return nil
	}
	set := make(map[string]bool, len(v.objVal))
	for _, f := range v.objVal {
		set[f.Key] = true
	}
	return set
}

// encodeEntry attempts key folding first, then falls back to the
// plain per-kind dispatch.
func (e *encoder) encodeEntry(key string, v *Value, depth int, path []string, siblings map[string]bool) error {
	if e.opts.KeyFolding == FoldSafe {
		if fr, ok := tryFold(key, v, siblings, e.rootDotted, path, e.opts); ok {
			if fr.tail != nil {
				e.w.push(depth, quoteKey(fr.key)+":")
				return e.encodeObject(fr.tail, depth+1, appendPath(path, fr.segments...))
			}
			return e.encodeField(fr.key, fr.leaf, depth, path)
		}
	}
	return e.encodeField(key, v, depth, path)
}

// encodeField renders one key/value pair by value kind.
func (e *encoder) encodeField(key string, v *Value, depth int, path []string) error {
	qk := quoteKey(key)
	switch v.Kind() {
	case KindArray:
		return e.encodeKeyedArray(qk, v, depth)
	case KindObject:
		e.w.push(depth, qk+":")
		if v.Len() == 0 {
			return nil
		}
		return e.encodeObject(v, depth+1, appendPath(path, key))
	default:
		s, err := encodePrimitive(v, e.opts.Delimiter)
		if err != nil {
			return err
		}
		e.w.push(depth, qk+": "+s)
		return nil
	}
}

func appendPath(path []string, segs ...string) []string {
	out := make([]string, 0, len(path)+len(segs))
	out = append(out, path...)
	return append(out, segs...)
}
