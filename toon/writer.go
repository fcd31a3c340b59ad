package toon

import "strings"

// lineWriter accumulates finished output lines with depth-based
// indentation. Exactly one encode call owns a writer at a time.
type lineWriter struct {
	lines []string
	unit  string
	cache []string // indent strings indexed by depth
}

func newLineWriter(indent int) *lineWriter {
	if indent <= 0 {
		indent = 2
	}
	return &lineWriter{unit: strings.Repeat(" ", indent)}
}

// indent returns the cached indent prefix for depth.
func (w *lineWriter) indent(depth int) string {
	for len(w.cache) <= depth {
		w.cache = append(w.cache, strings.Repeat(w.unit, len(w.cache)))
	}
	return w.cache[depth]
}

// push appends one line at the given depth. Trailing whitespace is
// trimmed from the content before the indent prefix is applied.
func (w *lineWriter) push(depth int, content string) {
	content = strings.TrimRight(content, " \t")
	if content == "" {
		w.lines = append(w.lines, "")
		return
	}
	w.lines = append(w.lines, w.indent(depth)+content)
}

// render joins the accumulated lines with line feeds. No trailing
// line terminator.
func (w *lineWriter) render() string {
	return strings.Join(w.lines, "\n")
}
