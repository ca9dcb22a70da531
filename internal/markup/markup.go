// Package markup splits AI advice text on paired ** delimiters into plain and
// emphasized spans.
package markup

import "strings"

type Segment struct {
	Text       string
	Emphasized bool
}

// Segments alternates plain/emphasized spans on each ** delimiter: pieces at
// odd split positions are emphasized. An odd trailing delimiter opens an
// unterminated span, so the remainder of the text stays emphasized. Empty
// pieces are dropped.
func Segments(text string) []Segment {
	parts := strings.Split(text, "**")

	out := make([]Segment, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, Segment{Text: part, Emphasized: i%2 == 1})
	}
	return out
}
