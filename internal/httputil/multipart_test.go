// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultipartRequest(t *testing.T) {
	var (
		gotFile     []byte
		gotFilename string
		gotLoading  string
		gotParsing  string
		gotMethod   string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotFile, _ = io.ReadAll(f)
		gotFilename = hdr.Filename
		gotLoading = r.FormValue("loading_method")
		gotParsing = r.FormValue("parsing_option")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	req, err := NewMultipartRequest(context.Background(), ts.URL,
		FilePart{Field: "file", Filename: "a.pdf", Data: []byte("%PDF")},
		Field{Name: "loading_method", Value: "mineru"},
		Field{Name: "parsing_option", Value: "by_headers"},
	)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data; boundary="))

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, []byte("%PDF"), gotFile)
	assert.Equal(t, "a.pdf", gotFilename)
	assert.Equal(t, "mineru", gotLoading)
	assert.Equal(t, "by_headers", gotParsing)
}

func TestNewMultipartRequest_BadURL(t *testing.T) {
	_, err := NewMultipartRequest(context.Background(), "://bad", FilePart{Field: "file", Filename: "a.pdf"})
	assert.Error(t, err)
}

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"fastapi detail", `{"detail":"Only PDF files are supported"}`, "Only PDF files are supported"},
		{"error field", `{"error":"boom"}`, "boom"},
		{"structured detail", `{"detail":[{"loc":["body","file"]}]}`, `[{"loc":["body","file"]}]`},
		{"plain text", "  upstream exploded \n", "upstream exploded"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorDetail(strings.NewReader(tt.body)))
		})
	}
}

func TestErrorDetail_Truncates(t *testing.T) {
	got := ErrorDetail(strings.NewReader(strings.Repeat("x", 2000)))
	assert.Len(t, got, maxDetailBytes)
	assert.True(t, strings.HasSuffix(got, "..."))
}
