// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a PDF-to-Markdown conversion against the external
// conversion service and holds the lifecycle state of the current attempt.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/docview/internal/httputil"
	"github.com/pdiddy/docview/pkg/types"
)

const (
	parsePath = "/parse_md"

	fieldFile          = "file"
	fieldLoadingMethod = "loading_method"
	fieldParsingOption = "parsing_option"

	// defaultFilename is sent when the selected file has no name.
	defaultFilename = "document.pdf"

	// maxResponseBytes bounds the success body read into memory.
	maxResponseBytes = 256 << 20
)

// Converter turns a submission into a parsed document. The HTTP Client is
// the production implementation; tests substitute fakes.
type Converter interface {
	Convert(ctx context.Context, sub types.Submission) (*types.ParsedDocument, error)
}

// Client calls the conversion service's parse endpoint. It issues exactly
// one request per Convert call and never retries.
type Client struct {
	http *http.Client
	cfg  types.ClientConfig
}

// NewClient creates a Client. A nil httpClient selects one built from
// cfg.Timeout.
func NewClient(httpClient *http.Client, cfg types.ClientConfig) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = types.DefaultEndpoint
	}
	return &Client{http: httpClient, cfg: cfg}
}

// URL returns the full parse endpoint address.
func (c *Client) URL() string {
	return strings.TrimRight(c.cfg.Endpoint, "/") + parsePath
}

// Convert uploads the submission's file with its two options and decodes
// the parsed document from the response. Failures are returned as
// *TransportError, *ServerError, or *MalformedResponseError.
func (c *Client) Convert(ctx context.Context, sub types.Submission) (*types.ParsedDocument, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	filename := sub.File.Name
	if filename == "" {
		filename = defaultFilename
	}

	req, err := httputil.NewMultipartRequest(ctx, c.URL(),
		httputil.FilePart{Field: fieldFile, Filename: filename, Data: sub.File.Data},
		httputil.Field{Name: fieldLoadingMethod, Value: string(sub.LoadingMethod)},
		httputil.Field{Name: fieldParsingOption, Value: string(sub.ParsingOption)},
	)
	if err != nil {
		return nil, fmt.Errorf("building conversion request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: c.URL(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{
			StatusCode: resp.StatusCode,
			Detail:     httputil.ErrorDetail(resp.Body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: c.URL(), Err: fmt.Errorf("reading response: %w", err)}
	}
	return DecodeEnvelope(body)
}
