package toon

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts JSON documents into the Value model for re-encoding as
// TOON. Numbers decode through json.Number so integers beyond the
// float64 safe range keep their exact decimal text.

// FromJSON converts JSON bytes to a Value using default options.
func FromJSON(data []byte) (*Value, error) {
	return FromJSONWithOptions(data, DefaultEncodeOptions())
}

// FromJSONWithOptions converts JSON bytes to a Value using the
// options' depth bound.
func FromJSONWithOptions(data []byte, opts EncodeOptions) (*Value, error) {
	opts = opts.withDefaults()
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("toon: invalid JSON: %w", err)
	}
	return normalize(raw, 0, opts.MaxDepth)
}

// EncodeJSON converts a JSON document directly to TOON text.
func EncodeJSON(data []byte, opts EncodeOptions) (string, error) {
	opts = opts.withDefaults()
	v, err := FromJSONWithOptions(data, opts)
	if err != nil {
		return "", err
	}
	return EncodeValue(v, opts)
}
