package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callInput struct {
	Workbook string   `json:"workbook" jsonschema:"required,description=Path to the workbook"`
	Sheet    string   `json:"sheet,omitempty" jsonschema:"description=Worksheet name"`
	Limit    *int     `json:"limit,omitempty" jsonschema:"description=Row limit"`
	Cells    []string `json:"cells,omitempty" jsonschema:"description=Cell addresses"`
}

func TestGenerate(t *testing.T) {
	s := Generate[callInput]()

	require.NotNil(t, s.Properties)
	assert.Contains(t, s.Required, "workbook")
	assert.NotContains(t, s.Required, "sheet")

	props, ok := s.Properties.(map[string]any)
	require.True(t, ok)

	wb, ok := props["workbook"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", wb["type"])
	assert.Equal(t, "Path to the workbook", wb["description"])

	// Pointer fields surface their element type, not anyOf.
	limit, ok := props["limit"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", limit["type"])

	cells, ok := props["cells"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "array", cells["type"])
	items, ok := cells["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", items["type"])
}

type emptyInput struct{}

func TestGenerateEmptyStruct(t *testing.T) {
	s := Generate[emptyInput]()
	assert.Empty(t, s.Required)
}
