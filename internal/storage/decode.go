package storage

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

var newlineRuns = regexp.MustCompile(`\n+`)

// DecodeUplinks parses a V3 storage response: one JSON object per line, with
// blank keep-alive lines in between. Records keep the order they were
// received in. A single bad line fails the whole body.
func DecodeUplinks(body []byte) ([]models.Record, error) {
	return decodeUplinks(body, "")
}

// decodeUplinks is DecodeUplinks with secret removed from error excerpts.
func decodeUplinks(body []byte, secret string) ([]models.Record, error) {
	collapsed := newlineRuns.ReplaceAll(body, []byte{'\n'})

	records := make([]models.Record, 0, bytes.Count(collapsed, []byte{'\n'})+1)
	line := 0
	for _, raw := range bytes.Split(collapsed, []byte{'\n'}) {
		raw = bytes.TrimSuffix(raw, []byte{'\r'})
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		line++

		var rec models.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, &DecodeError{Line: line, Excerpt: excerpt(scrub(raw, secret)), Err: err}
		}
		if rec == nil {
			return nil, &DecodeError{Line: line, Excerpt: excerpt(scrub(raw, secret)), Err: errNotObject}
		}
		records = append(records, rec)
	}
	return records, nil
}
