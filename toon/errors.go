package toon

import "fmt"

// MaxDepthError reports that normalization descended past the
// configured depth bound. It aborts the whole encode call; any
// partially accumulated output is discarded.
type MaxDepthError struct {
	Depth int // depth at which the bound was exceeded
	Limit int // configured bound
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("toon: max depth exceeded at depth %d (limit %d)", e.Depth, e.Limit)
}

// NotEncodableError reports that a non-primitive value reached the
// primitive encoder. Given correct normalization this is unreachable;
// it indicates a programming error, not a data condition.
type NotEncodableError struct {
	Kind Kind
}

func (e *NotEncodableError) Error() string {
	return fmt.Sprintf("toon: %s value is not encodable as a primitive", e.Kind)
}
