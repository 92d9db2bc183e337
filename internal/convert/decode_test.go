package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"array body", `[]`},
		{"null body", `null`},
		{"missing parsed_content", `{"result": {}}`},
		{"null parsed_content", `{"parsed_content": null}`},
		{"parsed_content not object", `{"parsed_content": "text"}`},
		{"missing content", `{"parsed_content": {"metadata": {}}}`},
		{"null content", `{"parsed_content": {"content": null}}`},
		{"content not array", `{"parsed_content": {"content": {"type": "markdown"}}}`},
		{"item not object", `{"parsed_content": {"content": ["# hi"]}}`},
		{"item null", `{"parsed_content": {"content": [null]}}`},
		{"item without content", `{"parsed_content": {"content": [{"type": "markdown"}]}}`},
		{"item content not string", `{"parsed_content": {"content": [{"type": "markdown", "content": 42}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeEnvelope([]byte(tt.body))
			assert.Nil(t, doc)
			var merr *MalformedResponseError
			assert.True(t, errors.As(err, &merr), "got %v", err)
		})
	}
}

func TestDecodeEnvelope_EmptyContent(t *testing.T) {
	doc, err := DecodeEnvelope([]byte(`{"parsed_content": {"metadata": {"filename": "a.pdf"}, "content": []}}`))
	require.NoError(t, err)
	assert.NotNil(t, doc.Content)
	assert.Empty(t, doc.Content)
	assert.Equal(t, "a.pdf", *doc.Metadata.Filename)
}

func TestDecodeEnvelope_LenientMetadata(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing metadata", `{"parsed_content": {"content": []}}`},
		{"null metadata", `{"parsed_content": {"metadata": null, "content": []}}`},
		{"metadata not object", `{"parsed_content": {"metadata": "x", "content": []}}`},
		{"non-string fields", `{"parsed_content": {"metadata": {"filename": 7, "timestamp": false}, "content": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeEnvelope([]byte(tt.body))
			require.NoError(t, err)
			assert.Nil(t, doc.Metadata.Filename)
			assert.Nil(t, doc.Metadata.ParsingMethod)
			assert.Nil(t, doc.Metadata.Timestamp)
		})
	}
}

func TestDecodeEnvelope_HeaderSplitItems(t *testing.T) {
	body := `{"parsed_content": {
	  "metadata": {"filename": "report.pdf", "parsing_method": "by_headers", "timestamp": "2025-03-01T10:11:12.345678", "md_file_path": "05-markdown-docs/report_20250301101112.md"},
	  "content": [
	    {"type": "markdown", "section": 1, "title": "Intro", "content": "# Intro\n\ntext", "metadata": {"Header 1": "Intro"}},
	    {"type": "markdown", "section": 1, "title": "Intro", "content": "more"},
	    {"type": "markdown", "section": "2b", "content": "## Next"},
	    {"content": "untyped"}
	  ]
	}}`

	doc, err := DecodeEnvelope([]byte(body))
	require.NoError(t, err)
	require.Len(t, doc.Content, 4)

	assert.Equal(t, "05-markdown-docs/report_20250301101112.md", *doc.Metadata.MDFilePath)
	assert.Nil(t, doc.Metadata.Error)

	first := doc.Content[0]
	require.NotNil(t, first.Section)
	assert.Equal(t, "1", *first.Section)
	assert.Equal(t, "Intro", *first.Title)
	assert.Equal(t, map[string]string{"Header 1": "Intro"}, first.Metadata)

	// Same section twice stays two items, in response order.
	assert.Equal(t, "1", *doc.Content[1].Section)
	assert.Equal(t, "more", doc.Content[1].Content)

	assert.Equal(t, "2b", *doc.Content[2].Section)
	assert.Nil(t, doc.Content[2].Title)

	assert.Equal(t, "", doc.Content[3].Type)
	assert.Nil(t, doc.Content[3].Section)
}
