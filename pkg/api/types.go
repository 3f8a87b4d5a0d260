package api

import "github.com/ssargent/fitkit/pkg/fit"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind          string
	Port          int
	APIKey        string
	MaxUploadSize int64
	ReadOptions   fit.ReadOptions
}

// DecodeResponse is the body of a successful decode
type DecodeResponse struct {
	ProfileVersion uint16                   `json:"profileVersion"`
	Integrity      bool                     `json:"integrity"`
	Counts         map[string]int           `json:"counts"`
	Messages       map[string][]fit.Message `json:"messages"`
	Errors         []string                 `json:"errors,omitempty"`
}

// CheckResponse reports whether a body is a FIT file and whether its checksums hold
type CheckResponse struct {
	IsFIT     bool            `json:"isFit"`
	Integrity bool            `json:"integrity"`
	Header    *fit.FileHeader `json:"header,omitempty"`
	Error     string          `json:"error,omitempty"`
}
