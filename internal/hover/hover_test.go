package hover

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/xeipuuv/gojsonschema"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/schema"
)

func loadedSchema(t *testing.T, src string) *schema.Loaded {
	t.Helper()
	var value any
	require.NoError(t, json.Unmarshal([]byte(src), &value))

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(value))
	require.NoError(t, err)

	return &schema.Loaded{
		Root:     schema.NewNode(value, value),
		Compiled: compiled,
	}
}

const personSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "description": "person's name"},
		"bare": {}
	}
}`

// hoverAt computes the cursor from a '|' marker in the document.
func hoverAt(t *testing.T, marked string, loaded *schema.Loaded) *protocol.Hover {
	t.Helper()
	i := strings.IndexByte(marked, '|')
	require.GreaterOrEqual(t, i, 0)
	text := document.NewText(marked[:i] + marked[i+1:])
	return Resolve(text, text.PositionAt(i), loaded)
}

func TestHoverOnKey(t *testing.T) {
	loaded := loadedSchema(t, personSchema)

	h := hoverAt(t, `{"na|me": "x"}`, loaded)
	require.NotNil(t, h)

	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(t, content.Value, "person's name")
	assert.Contains(t, content.Value, "string")
}

func TestHoverOnValue(t *testing.T) {
	loaded := loadedSchema(t, personSchema)

	h := hoverAt(t, `{"name": "ab|c"}`, loaded)
	require.NotNil(t, h)

	content := h.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "person's name")
}

func TestHoverOutsideDocumentedSlots(t *testing.T) {
	loaded := loadedSchema(t, personSchema)

	// Cursor on the root brace classifies as no slot at all.
	assert.Nil(t, hoverAt(t, `|{"name": "x"}`, loaded))
	// A key-start slot has no single field to document.
	assert.Nil(t, hoverAt(t, `{"name": "x", |}`, loaded))
}

func TestHoverUndeclaredPath(t *testing.T) {
	loaded := loadedSchema(t, personSchema)
	assert.Nil(t, hoverAt(t, `{"unkn|own": 1}`, loaded))
}

func TestHoverEmptySchemaInfo(t *testing.T) {
	loaded := loadedSchema(t, personSchema)
	assert.Nil(t, hoverAt(t, `{"ba|re": 1}`, loaded))
}
