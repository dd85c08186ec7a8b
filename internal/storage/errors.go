package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

// excerptLimit bounds how much of a response body ends up in an error.
const excerptLimit = 64

var errNotObject = errors.New("line is not a JSON object")

// ConfigurationError reports a request that cannot be sent as built. It is
// returned before any network activity.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid configuration: %s is required", e.Field)
	}
	return fmt.Sprintf("invalid configuration: %s=%q", e.Field, e.Value)
}

// TransportError reports a round trip that did not complete with a 2xx
// status. It never carries the access key.
type TransportError struct {
	App        string
	Version    models.APIVersion
	TimeWindow string
	URL        string
	// StatusCode is zero when no response was received.
	StatusCode int
	// Body is a truncated excerpt of a non-2xx response.
	Body string
	Err  error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "storage %s pull for app %q (last=%s) failed", e.Version, e.App, e.TimeWindow)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": status %d", e.StatusCode)
		if e.Body != "" {
			fmt.Fprintf(&b, ": %s", e.Body)
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a V3 line that could not be decoded. Line is 1-based
// and counts non-empty lines only.
type DecodeError struct {
	Line    int
	Excerpt string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode uplink line %d (%q): %v", e.Line, e.Excerpt, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// OutputError reports a failed write of the optional output file.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("write output %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Kind names the error class of err for logs and metrics labels.
func Kind(err error) string {
	var (
		cfgErr *ConfigurationError
		trErr  *TransportError
		decErr *DecodeError
		outErr *OutputError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &trErr):
		return "transport"
	case errors.As(err, &decErr):
		return "decode"
	case errors.As(err, &outErr):
		return "output"
	}
	return "unknown"
}

// redactedMarker replaces the access key wherever a response echoes it.
const redactedMarker = "[REDACTED]"

// scrub removes every occurrence of secret from b. It runs before excerpt so
// truncation can never leave a partial key behind.
func scrub(b []byte, secret string) []byte {
	if secret == "" {
		return b
	}
	return bytes.ReplaceAll(b, []byte(secret), []byte(redactedMarker))
}

func excerpt(b []byte) string {
	if len(b) <= excerptLimit {
		return strings.ToValidUTF8(string(b), string(utf8.RuneError))
	}
	return strings.ToValidUTF8(string(b[:excerptLimit]), string(utf8.RuneError)) + "..."
}
