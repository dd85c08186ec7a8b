package models

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// APIVersion selects the storage API dialect. The zero value means "not set"
// and resolves to DefaultAPIVersion.
type APIVersion int

const (
	APIVersionV2 APIVersion = 2
	APIVersionV3 APIVersion = 3

	DefaultAPIVersion = APIVersionV3
)

// OutputFileName is the fixed name written inside PullRequest.OutputDir.
const OutputFileName = "sensors_lastperiod.json"

// Resolve maps the zero value to DefaultAPIVersion and leaves anything else as is.
func (v APIVersion) Resolve() APIVersion {
	if v == 0 {
		return DefaultAPIVersion
	}
	return v
}

// Valid reports whether v (after Resolve) is a supported dialect.
func (v APIVersion) Valid() bool {
	switch v.Resolve() {
	case APIVersionV2, APIVersionV3:
		return true
	}
	return false
}

func (v APIVersion) String() string {
	return "v" + strconv.Itoa(int(v))
}

// ParseAPIVersion accepts "2", "3", "v2" or "v3" (case-insensitive). An empty
// string yields DefaultAPIVersion.
func ParseAPIVersion(s string) (APIVersion, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "v")
	if s == "" {
		return DefaultAPIVersion, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid api version %q", s)
	}
	v := APIVersion(n)
	if !v.Valid() || n == 0 {
		return v, fmt.Errorf("unsupported api version %d (want 2 or 3)", n)
	}
	return v, nil
}

// PullRequest carries everything needed for one storage pull. It is built per
// call and never persisted.
type PullRequest struct {
	AppName    string     `json:"app_name" validate:"required"`
	AccessKey  string     `json:"-" validate:"required"`
	TimeWindow string     `json:"time_window" validate:"required"`
	APIVersion APIVersion `json:"api_version"`
	// OutputDir, when set, receives a verbatim copy of the response body.
	OutputDir string `json:"output_dir,omitempty"`
}

// String redacts the access key.
func (r PullRequest) String() string {
	return fmt.Sprintf("PullRequest{app=%s window=%s version=%s output_dir=%q access_key=%s}",
		r.AppName, r.TimeWindow, r.APIVersion.Resolve(), r.OutputDir, redact(r.AccessKey))
}

// MarshalLogObject lets the request be logged with zap.Object without leaking the key.
func (r PullRequest) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("app_name", r.AppName)
	enc.AddString("time_window", r.TimeWindow)
	enc.AddString("api_version", r.APIVersion.Resolve().String())
	if r.OutputDir != "" {
		enc.AddString("output_dir", r.OutputDir)
	}
	enc.AddString("access_key", redact(r.AccessKey))
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}

// PullResult is tagged by Version: V3 fills Records, V2 fills Raw.
type PullResult struct {
	Version    APIVersion
	Records    []Record
	Raw        []byte
	OutputPath string
	// Size is the length of the response body for either version.
	Size int
}

// Len returns the number of records for V3 or the byte count for V2.
func (r *PullResult) Len() int {
	if r == nil {
		return 0
	}
	if r.Version == APIVersionV2 {
		return len(r.Raw)
	}
	return len(r.Records)
}
