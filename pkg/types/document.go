// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ParsedDocument is the result of a successful conversion. It is treated as
// immutable once received; a new attempt replaces it wholesale.
type ParsedDocument struct {
	Metadata DocumentMetadata `json:"metadata" yaml:"metadata"`

	// Content is in display order, exactly as the service returned it.
	Content []ContentItem `json:"content" yaml:"content"`
}

// DocumentMetadata describes a converted document. Every field is optional;
// nil means the service did not send it.
type DocumentMetadata struct {
	Filename      *string `json:"filename,omitempty" yaml:"filename,omitempty"`
	ParsingMethod *string `json:"parsing_method,omitempty" yaml:"parsing_method,omitempty"`

	// Timestamp is the conversion time as ISO 8601 text, kept verbatim.
	Timestamp *string `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	// MDFilePath is where the service stored the generated Markdown file.
	MDFilePath *string `json:"md_file_path,omitempty" yaml:"md_file_path,omitempty"`

	// Error is set by the service when it fell back to an error document.
	Error *string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ContentItem is one labeled, Markdown-bearing section of a parsed document.
type ContentItem struct {
	Type string `json:"type" yaml:"type"`

	// Section is the section label. The service may send it as a number;
	// it is normalised to its decimal text.
	Section *string `json:"section,omitempty" yaml:"section,omitempty"`

	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Content is Markdown text.
	Content string `json:"content" yaml:"content"`

	// Metadata carries the header path of a header-split section
	// (e.g. "Header 1": "Introduction").
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ViewMode is the display mode applied to every content item.
type ViewMode string

const (
	// ViewRendered interprets content as Markdown.
	ViewRendered ViewMode = "rendered"
	// ViewRaw shows content as literal preformatted text.
	ViewRaw ViewMode = "raw"
)

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewRaw {
		return ViewRendered
	}
	return ViewRaw
}

// ParseViewMode converts user input to a ViewMode. The empty string selects
// ViewRendered.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case "", ViewRendered:
		return ViewRendered, nil
	case ViewRaw:
		return ViewRaw, nil
	default:
		return "", fmt.Errorf("unsupported view mode %q: use rendered or raw", s)
	}
}

// StringPtr returns a pointer to s. It is a convenience for building
// optional metadata fields.
func StringPtr(s string) *string {
	return &s
}
