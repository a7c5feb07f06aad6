package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}  "))
}

func TestOuterJSON(t *testing.T) {
	assert.Equal(t, `{"a":{"b":1}}`, outerJSON(`Sure! {"a":{"b":1}} Hope that helps.`))
	assert.Equal(t, `[1,2]`, outerJSON(`Here: [1,2]`))
	assert.Equal(t, `no json`, outerJSON(`no json`))
}

func TestParseResponse(t *testing.T) {
	var out struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	raw := "```json\n{\n  // draft\n  \"title\": \"Hello\",\n  \"tags\": [\"a\", \"b\",],\n}\n```"
	require.NoError(t, parseResponse(raw, &out))
	assert.Equal(t, "Hello", out.Title)
	assert.Equal(t, []string{"a", "b"}, out.Tags)

	err := parseResponse("I cannot help with that.", &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidResponse))

	err = parseResponse("   ", &out)
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}
