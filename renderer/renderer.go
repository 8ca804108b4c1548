// Package renderer formats statements, summaries and query results as
// markdown, ready for the terminal or for the assistant's tool responses.
package renderer

import (
	"fmt"
	"strings"
)

// builder is a small markdown writing helper shared by the renderers.
type builder struct {
	strings.Builder
}

// Printf formats according to a format specifier and writes to the buffer.
func (b *builder) Printf(format string, args ...any) {
	fmt.Fprintf(b, format, args...)
}

// Row writes one markdown table row.
func (b *builder) Row(cells ...string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// Head writes a markdown table header with left-aligned columns, except
// those listed in right which are right-aligned.
func (b *builder) Head(cells []string, right ...int) {
	b.Row(cells...)
	seps := make([]string, len(cells))
	for i := range seps {
		seps[i] = ":---"
	}
	for _, i := range right {
		seps[i] = "---:"
	}
	b.Row(seps...)
}
