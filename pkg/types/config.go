package types

import "time"

// DefaultEndpoint is the conversion service base address used when neither
// a flag, environment variable, nor config file supplies one.
const DefaultEndpoint = "http://localhost:8000"

// HTTPConfig holds shared HTTP settings for requests to the conversion service.
type HTTPConfig struct {
	// Timeout is the HTTP client timeout. Zero leaves hang behaviour to the
	// transport; the orchestrator never imposes its own.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests (e.g. "docview/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ClientConfig holds settings for talking to the conversion endpoint.
type ClientConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the base address of the conversion service. The client
	// appends /parse_md to it. Read once per process.
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

// ServeConfig holds settings for the local web UI.
type ServeConfig struct {
	ClientConfig `yaml:",inline"`

	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadBytes caps the multipart body accepted from the browser.
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`

	// InitialView is the view mode the presenter starts in.
	InitialView ViewMode `json:"initial_view" yaml:"initial_view"`
}
