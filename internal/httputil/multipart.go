// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to the conversion service.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// maxDetailBytes bounds how much of an error body is kept for messages.
const maxDetailBytes = 512

// FilePart is the binary part of a multipart request.
type FilePart struct {
	Field    string
	Filename string
	Data     []byte
}

// Field is a plain form field of a multipart request.
type Field struct {
	Name  string
	Value string
}

// NewMultipartRequest builds a POST request whose body is a multipart form
// holding file followed by fields, in order. The body is buffered so the
// request can be cloned.
func NewMultipartRequest(ctx context.Context, url string, file FilePart, fields ...Field) (*http.Request, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(file.Field, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file %s: %w", file.Field, err)
	}
	if _, err := fw.Write(file.Data); err != nil {
		return nil, fmt.Errorf("writing form file %s: %w", file.Field, err)
	}

	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("writing form field %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// ErrorDetail reads a short description from an error response body. It
// prefers the "detail" or "error" field of a JSON body and otherwise returns
// the trimmed, truncated body text. The body is not closed.
func ErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 64*1024))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail any `json:"detail"`
		Error  any `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		for _, v := range []any{payload.Detail, payload.Error} {
			switch d := v.(type) {
			case string:
				if d != "" {
					return truncate(d)
				}
			case nil:
			default:
				if b, err := json.Marshal(d); err == nil {
					return truncate(string(b))
				}
			}
		}
	}

	return truncate(strings.TrimSpace(string(data)))
}

func truncate(s string) string {
	if len(s) <= maxDetailBytes {
		return s
	}
	return s[:maxDetailBytes-3] + "..."
}
