// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for docview: the
// submission sent to the conversion service, the request lifecycle state,
// and the parsed document the service returns.
package types

import (
	"fmt"
	"strings"
)

// LoadingMethod selects the tool the conversion service uses to load the PDF.
type LoadingMethod string

const (
	LoadingMineru LoadingMethod = "mineru"
)

// ParsingOption selects how the converted Markdown is split into content items.
type ParsingOption string

const (
	// ParsingOne returns the whole document as a single content item.
	ParsingOne ParsingOption = "one"
	// ParsingByHeaders splits the document into one item per Markdown header.
	ParsingByHeaders ParsingOption = "by_headers"
)

// Choice is one entry of a fixed choice list offered to the user.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// LoadingMethods lists the loading methods offered to the user.
var LoadingMethods = []Choice{
	{Value: string(LoadingMineru), Label: "MinerU"},
}

// ParsingOptions lists the parsing options offered to the user.
var ParsingOptions = []Choice{
	{Value: string(ParsingOne), Label: "Whole document"},
	{Value: string(ParsingByHeaders), Label: "Split by headers"},
}

// FileBlob is a selected input file.
type FileBlob struct {
	// Name is the original filename, sent as the multipart filename.
	Name string
	// Data holds the file contents.
	Data []byte
}

// Submission bundles the inputs of one conversion attempt. It is built per
// attempt and not modified after it is handed to the orchestrator.
type Submission struct {
	File          *FileBlob
	LoadingMethod LoadingMethod
	ParsingOption ParsingOption
}

// Validate reports every required field that is missing.
func (s Submission) Validate() error {
	var missing []string
	if s.File == nil {
		missing = append(missing, "file")
	}
	if strings.TrimSpace(string(s.LoadingMethod)) == "" {
		missing = append(missing, "loading method")
	}
	if strings.TrimSpace(string(s.ParsingOption)) == "" {
		missing = append(missing, "parsing option")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ValidationError indicates a submission is missing required fields. It is
// raised before any request is issued.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please provide: %s", strings.Join(e.Missing, ", "))
}
