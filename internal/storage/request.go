package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/Alwanly/ttn-storage-pull/pkg/validator"
)

const (
	v2QueryPath   = "/api/v2/query"
	v3StoragePath = "/api/v3/as/applications/%s/packages/storage/uplink_message"

	// v3FieldMask limits each V3 record to the decoded payload.
	v3FieldMask = "up.uplink_message.decoded_payload"
)

// BuildRequest returns the GET request for req. It has no side effects and
// the same input always yields the same method, URL and headers.
func (c *Client) BuildRequest(ctx context.Context, req models.PullRequest) (*http.Request, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var (
		target *url.URL
		accept string
		auth   string
		err    error
	)
	switch req.APIVersion.Resolve() {
	case models.APIVersionV2:
		target = c.v2URL(req)
		accept = "application/json"
		auth = "key " + req.AccessKey
	case models.APIVersionV3:
		target, err = c.v3URL(req)
		if err != nil {
			return nil, err
		}
		accept = "text/event-stream"
		auth = "Bearer " + req.AccessKey
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("Authorization", auth)
	return httpReq, nil
}

func (c *Client) v2URL(req models.PullRequest) *url.URL {
	return &url.URL{
		Scheme:   "https",
		Host:     req.AppName + "." + c.cfg.V2Domain,
		Path:     v2QueryPath,
		RawQuery: url.Values{"last": {req.TimeWindow}}.Encode(),
	}
}

func (c *Client) v3URL(req models.PullRequest) (*url.URL, error) {
	base, err := url.Parse(strings.TrimRight(c.cfg.V3BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &ConfigurationError{Field: "V3BaseURL", Value: c.cfg.V3BaseURL}
	}
	// AppName has no path separators (validateRequest); String() escapes the rest.
	base.Path += fmt.Sprintf(v3StoragePath, req.AppName)
	base.RawPath = ""
	base.RawQuery = url.Values{
		"last":       {req.TimeWindow},
		"field_mask": {v3FieldMask},
	}.Encode()
	return base, nil
}

// validateRequest checks the version first so that an unsupported value is
// reported even when other fields are also missing.
func validateRequest(req models.PullRequest) error {
	if !req.APIVersion.Valid() {
		return &ConfigurationError{Field: "APIVersion", Value: fmt.Sprintf("%d", int(req.APIVersion))}
	}
	if err := validator.ValidateStruct(req); err != nil {
		if fe := validator.FieldErrors(err); len(fe) > 0 {
			return &ConfigurationError{Field: fe[0].Field()}
		}
		return fmt.Errorf("validate pull request: %w", err)
	}
	if !validAppName(req.AppName) {
		return &ConfigurationError{Field: "AppName", Value: req.AppName}
	}
	return nil
}

// validAppName rejects anything that would change the meaning of the URL:
// separators, escapes, whitespace and control characters.
func validAppName(name string) bool {
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("/?#@:%", r) {
			return false
		}
	}
	return true
}
