// Package hover assembles schema documentation for the symbol under the
// cursor.
package hover

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/position"
	"github.com/blvp/json-ls/internal/schema"
)

// Resolve returns hover documentation for the key or value at pos, or nil
// when the cursor is in no documentable slot or the schema has nothing to
// say about it.
func Resolve(text document.Text, pos protocol.Position, loaded *schema.Loaded) *protocol.Hover {
	ctx := position.Analyze(text.String(), text.OffsetAt(pos))

	switch ctx.Kind {
	case position.ContextKey, position.ContextValue:
	default:
		return nil
	}

	node := loaded.Root.Navigate(ctx.Path)
	if node == nil {
		return nil
	}

	markdown := node.Info().Markdown()
	if markdown == "" {
		return nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: markdown,
		},
	}
}
