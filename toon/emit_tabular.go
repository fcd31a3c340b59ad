package toon

import (
	"fmt"
	"strings"
)

// ============================================================
// Streaming Tabular Writer
// ============================================================

// TabularWriter assembles a keyed tabular block row-at-a-time. Useful
// when records arrive incrementally; the row count is only known at
// Finish, so rows buffer and the [N] header is composed last.
type TabularWriter struct {
	key      string
	columns  []string
	opts     EncodeOptions
	rows     []string
	finished bool
}

// NewTabularWriter creates a writer for the given key and column
// list. An empty key produces a root-level block.
func NewTabularWriter(key string, columns []string, opts EncodeOptions) *TabularWriter {
	return &TabularWriter{
		key:     key,
		columns: append([]string(nil), columns...),
		opts:    opts.withDefaults(),
	}
}

// WriteRow appends one row. Cells are normalized and must come out
// primitive; the arity must match the column list.
func (tw *TabularWriter) WriteRow(cells ...any) error {
	if tw.finished {
		return fmt.Errorf("toon: tabular writer already finished")
	}
	if len(cells) != len(tw.columns) {
		return fmt.Errorf("toon: row has %d cells, want %d", len(cells), len(tw.columns))
	}

	parts := make([]string, len(cells))
	for i, c := range cells {
		nv, err := normalize(c, 0, tw.opts.MaxDepth)
		if err != nil {
			return err
		}
		if !nv.IsPrimitive() {
			return fmt.Errorf("toon: tabular cell %d is %s, want a primitive", i, nv.Kind())
		}
		s, err := encodePrimitive(nv, tw.opts.Delimiter)
		if err != nil {
			return err
		}
		parts[i] = s
	}

	tw.rows = append(tw.rows, strings.Join(parts, tw.opts.Delimiter.String()))
	return nil
}

// Finish renders the complete block. The writer cannot be reused.
func (tw *TabularWriter) Finish() (string, error) {
	if tw.finished {
		return "", fmt.Errorf("toon: tabular writer already finished")
	}
	tw.finished = true

	w := newLineWriter(tw.opts.Indent)
	qkey := ""
	if tw.key != "" {
		qkey = quoteKey(tw.key)
	}
	w.push(0, qkey+tabularHead(len(tw.rows), tw.columns, tw.opts.Delimiter))
	for _, row := range tw.rows {
		w.push(1, row)
	}
	return w.render(), nil
}

// RowCount returns the number of rows written so far.
func (tw *TabularWriter) RowCount() int {
	return len(tw.rows)
}
