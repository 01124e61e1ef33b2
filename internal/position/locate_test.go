package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSpanTopLevel(t *testing.T) {
	text := `{"name": "hello", "count": 42}`

	start, end, ok := PathSpan(text, Path{Key("name")})
	require.True(t, ok)
	assert.Equal(t, `"hello"`, text[start:end])

	start, end, ok = PathSpan(text, Path{Key("count")})
	require.True(t, ok)
	assert.Equal(t, "42", text[start:end])
}

func TestPathSpanNested(t *testing.T) {
	text := `{"a": {"b": [1, 2, {"c": true}]}}`

	start, end, ok := PathSpan(text, Path{Key("a"), Key("b"), Index(2), Key("c")})
	require.True(t, ok)
	assert.Equal(t, "true", text[start:end])

	start, end, ok = PathSpan(text, Path{Key("a"), Key("b"), Index(1)})
	require.True(t, ok)
	assert.Equal(t, "2", text[start:end])
}

func TestPathSpanWholeValue(t *testing.T) {
	text := `{"a": {"b": 1}}`

	start, end, ok := PathSpan(text, Path{Key("a")})
	require.True(t, ok)
	assert.Equal(t, `{"b": 1}`, text[start:end])

	start, end, ok = PathSpan(text, nil)
	require.True(t, ok)
	assert.Equal(t, text, text[start:end])
}

func TestPathSpanMissing(t *testing.T) {
	text := `{"a": [1]}`

	_, _, ok := PathSpan(text, Path{Key("b")})
	assert.False(t, ok)

	_, _, ok = PathSpan(text, Path{Key("a"), Index(3)})
	assert.False(t, ok)

	_, _, ok = PathSpan(text, Path{Key("a"), Key("b")})
	assert.False(t, ok)

	_, _, ok = PathSpan("", nil)
	assert.False(t, ok)
}

func TestObjectKeysRoot(t *testing.T) {
	text := `{"b": 1, "a": {"x": 2}, "c": [3]}`
	assert.Equal(t, []string{"b", "a", "c"}, ObjectKeys(text, nil))
}

func TestObjectKeysNested(t *testing.T) {
	text := `{"a": {"x": 1, "y": 2}}`
	assert.Equal(t, []string{"x", "y"}, ObjectKeys(text, Path{Key("a")}))
}

func TestObjectKeysNonObject(t *testing.T) {
	text := `{"a": [1, 2]}`
	assert.Nil(t, ObjectKeys(text, Path{Key("a")}))
	assert.Nil(t, ObjectKeys(text, Path{Key("missing")}))
	assert.Nil(t, ObjectKeys("[]", nil))
}

func TestObjectKeysMalformedTail(t *testing.T) {
	text := `{"a": 1, "b": `
	assert.Equal(t, []string{"a", "b"}, ObjectKeys(text, nil))
}
