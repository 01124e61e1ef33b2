package diagnostics

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/xeipuuv/gojsonschema"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/position"
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

const nameSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"}
	},
	"required": ["name"]
}`

func TestValidateClean(t *testing.T) {
	loaded := loadedSchema(t, nameSchema)
	text := document.NewText(`{"name": "x"}`)

	assert.Empty(t, Validate(text, loaded))
}

func TestValidateTypeMismatch(t *testing.T) {
	loaded := loadedSchema(t, nameSchema)
	raw := `{"name": 42}`
	text := document.NewText(raw)

	diags := Validate(text, loaded)
	require.Len(t, diags, 1)

	d := diags[0]
	require.NotNil(t, d.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	require.NotNil(t, d.Source)
	assert.Equal(t, "json-ls", *d.Source)

	// The range covers the offending value.
	start := int(d.Range.Start.Character)
	end := int(d.Range.End.Character)
	assert.Equal(t, "42", raw[start:end])
}

func TestValidateNestedViolationRange(t *testing.T) {
	loaded := loadedSchema(t, `{
		"type": "object",
		"properties": {
			"outer": {
				"type": "object",
				"properties": {"inner": {"type": "boolean"}}
			}
		}
	}`)
	raw := `{"outer": {"inner": "yes"}}`
	text := document.NewText(raw)

	diags := Validate(text, loaded)
	require.Len(t, diags, 1)

	start := int(diags[0].Range.Start.Character)
	end := int(diags[0].Range.End.Character)
	assert.Equal(t, `"yes"`, raw[start:end])
}

func TestValidateMissingRequiredFallsBackToDocumentStart(t *testing.T) {
	loaded := loadedSchema(t, nameSchema)
	text := document.NewText(`{}`)

	diags := Validate(text, loaded)
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Line)
	assert.Equal(t, uint32(0), diags[0].Range.Start.Character)
}

func TestValidateSyntaxError(t *testing.T) {
	loaded := loadedSchema(t, nameSchema)
	text := document.NewText("{\"name\": \n")

	diags := Validate(text, loaded)
	require.Len(t, diags, 1)
	assert.Contains(t, strings.ToLower(diags[0].Message), "syntax")
	require.NotNil(t, diags[0].Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
}

func TestFieldPath(t *testing.T) {
	assert.Nil(t, fieldPath("(root)"))
	assert.Nil(t, fieldPath(""))
	assert.Equal(t, position.Path{position.Key("name")}, fieldPath("name"))
	assert.Equal(t,
		position.Path{position.Key("items"), position.Index(2), position.Key("id")},
		fieldPath("items.2.id"),
	)
}
