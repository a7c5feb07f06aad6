package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldTableAssignments(t *testing.T) {
	sets, err := serviceFields.assignments(patch(t, `{
		"title": "Kitchens",
		"features": ["a", "b"],
		"mediaType": null,
		"sortOrder": 3,
		"ignored": true
	}`))
	require.NoError(t, err)
	assert.Equal(t, []assignment{
		{Column: "title", Value: "Kitchens"},
		{Column: "features", Value: `["a","b"]`},
		{Column: "media_type", Value: nil},
		{Column: "sort_order", Value: 3},
	}, sets)
}

func TestFieldDecodeRejectsWrongTypes(t *testing.T) {
	cases := map[string]string{
		"text":   `{"title": 5}`,
		"status": `{"status": null}`,
		"list":   `{"features": "a"}`,
		"int":    `{"sortOrder": null}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := serviceFields.assignments(patch(t, raw))
			requireStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestBuildUpdate(t *testing.T) {
	query, args := buildUpdate("services", "id", []assignment{
		{Column: "title", Value: "T"},
		{Column: "status", Value: "published"},
	}, "stamp", "key")
	assert.Equal(t, "UPDATE services SET title = ?, status = ?, updated_at = ? WHERE id = ?", query)
	assert.Equal(t, []interface{}{"T", "published", "stamp", "key"}, args)
}

func TestUpdateBody(t *testing.T) {
	parsed, err := UpdateBody(nil)
	require.NoError(t, err)
	assert.Empty(t, parsed)

	_, err = UpdateBody([]byte(`[1,2]`))
	requireStatus(t, err, http.StatusBadRequest)
}

func TestDecodeListTolerance(t *testing.T) {
	assert.Equal(t, []string{}, decodeList[string](""))
	assert.Equal(t, []string{}, decodeList[string]("not json"))
	assert.Equal(t, []string{}, decodeList[string]("null"))
	assert.Equal(t, []string{"a"}, decodeList[string](`["a"]`))
}
