// Package document holds open documents and applies their edits.
package document

import (
	"sort"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Text is an immutable snapshot of document content with a line index, so
// LSP positions (0-based line, UTF-16 column) convert to byte offsets and
// back without rescanning. Characters outside the BMP count as two column
// units.
type Text struct {
	content    string
	lineStarts []int
}

// NewText indexes content into a Text.
func NewText(content string) Text {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Text{content: content, lineStarts: starts}
}

func (t Text) String() string {
	return t.content
}

func (t Text) Len() int {
	return len(t.content)
}

func (t Text) LineCount() int {
	return len(t.lineStarts)
}

// OffsetAt converts an LSP position to a byte offset. Positions past the end
// of a line clamp to the line end; lines past the end of the document clamp
// to the document end. A column landing inside a surrogate pair snaps to the
// start of the character.
func (t Text) OffsetAt(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(t.lineStarts) {
		return len(t.content)
	}

	start := t.lineStarts[line]
	end := len(t.content)
	if line+1 < len(t.lineStarts) {
		end = t.lineStarts[line+1] - 1 // exclude the newline
	}

	remaining := int(pos.Character)
	off := start
	for off < end && remaining > 0 {
		r, size := utf8.DecodeRuneInString(t.content[off:])
		units := 1
		if r > 0xFFFF {
			units = 2
		}
		if remaining < units {
			break
		}
		remaining -= units
		off += size
	}
	return off
}

// PositionAt converts a byte offset to an LSP position.
func (t Text) PositionAt(offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.content) {
		offset = len(t.content)
	}

	line := sort.Search(len(t.lineStarts), func(i int) bool {
		return t.lineStarts[i] > offset
	}) - 1

	col := 0
	for off := t.lineStarts[line]; off < offset; {
		r, size := utf8.DecodeRuneInString(t.content[off:])
		if r > 0xFFFF {
			col += 2
		} else {
			col++
		}
		off += size
	}
	return protocol.Position{Line: uint32(line), Character: uint32(col)}
}

// Edit returns a new Text with [start, end) replaced.
func (t Text) Edit(start, end int, replacement string) Text {
	if start < 0 {
		start = 0
	}
	if end > len(t.content) {
		end = len(t.content)
	}
	if start > end {
		start = end
	}
	return NewText(t.content[:start] + replacement + t.content[end:])
}
