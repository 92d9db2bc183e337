package convert

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/docview/pkg/types"
)

// DecodeEnvelope parses a conversion response body of the form
// {"parsed_content": {"metadata": {...}, "content": [...]}}.
//
// The content sequence is strict: it must be an array of objects each
// carrying a string "content". Metadata is lenient: a missing metadata
// object, or fields that are not strings, are treated as absent.
func DecodeEnvelope(data []byte) (*types.ParsedDocument, error) {
	var env struct {
		ParsedContent json.RawMessage `json:"parsed_content"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &MalformedResponseError{Reason: "body is not a JSON object", Err: err}
	}
	if isNull(env.ParsedContent) {
		return nil, malformed("missing parsed_content")
	}

	var doc struct {
		Metadata json.RawMessage `json:"metadata"`
		Content  json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(env.ParsedContent, &doc); err != nil {
		return nil, &MalformedResponseError{Reason: "parsed_content is not an object", Err: err}
	}
	if isNull(doc.Content) {
		return nil, malformed("missing content sequence")
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(doc.Content, &rawItems); err != nil {
		return nil, &MalformedResponseError{Reason: "content is not an array", Err: err}
	}

	items := make([]types.ContentItem, 0, len(rawItems))
	for i, raw := range rawItems {
		item, err := decodeItem(raw)
		if err != nil {
			return nil, &MalformedResponseError{Reason: fmt.Sprintf("content item %d", i), Err: err}
		}
		items = append(items, item)
	}

	return &types.ParsedDocument{
		Metadata: decodeMetadata(doc.Metadata),
		Content:  items,
	}, nil
}

func decodeItem(raw json.RawMessage) (types.ContentItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return types.ContentItem{}, fmt.Errorf("not an object")
	}

	body, ok := fields["content"]
	if !ok || isNull(body) {
		return types.ContentItem{}, fmt.Errorf("missing content")
	}
	var content string
	if err := json.Unmarshal(body, &content); err != nil {
		return types.ContentItem{}, fmt.Errorf("content is not a string")
	}

	item := types.ContentItem{
		Content: content,
		Section: sectionLabel(fields["section"]),
		Title:   optionalString(fields["title"]),
	}
	if t := optionalString(fields["type"]); t != nil {
		item.Type = *t
	}
	item.Metadata = stringMap(fields["metadata"])
	return item, nil
}

func decodeMetadata(raw json.RawMessage) types.DocumentMetadata {
	var fields map[string]json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &fields) != nil {
		return types.DocumentMetadata{}
	}
	return types.DocumentMetadata{
		Filename:      optionalString(fields["filename"]),
		ParsingMethod: optionalString(fields["parsing_method"]),
		Timestamp:     optionalString(fields["timestamp"]),
		MDFilePath:    optionalString(fields["md_file_path"]),
		Error:         optionalString(fields["error"]),
	}
}

// sectionLabel accepts a section sent as a string or a number.
func sectionLabel(raw json.RawMessage) *string {
	if s := optionalString(raw); s != nil {
		return s
	}
	if isNull(raw) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return types.StringPtr(n.String())
}

func optionalString(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// stringMap keeps the string-valued entries of a JSON object.
func stringMap(raw json.RawMessage) map[string]string {
	if isNull(raw) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s := optionalString(v); s != nil {
			out[k] = *s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
