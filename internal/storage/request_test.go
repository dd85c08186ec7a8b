package storage

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_V2(t *testing.T) {
	c := NewClient(Config{}, nil)
	req, err := c.BuildRequest(context.Background(), models.PullRequest{
		AppName:    "weather",
		AccessKey:  "ttn-account-v2.abc",
		TimeWindow: "1d",
		APIVersion: models.APIVersionV2,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https://weather.data.thethingsnetwork.org/api/v2/query?last=1d", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "key ttn-account-v2.abc", req.Header.Get("Authorization"))
}

func TestBuildRequest_V3(t *testing.T) {
	c := NewClient(Config{}, nil)
	req, err := c.BuildRequest(context.Background(), models.PullRequest{
		AppName:    "weather",
		AccessKey:  "NNSXS.abc",
		TimeWindow: "100h",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "https", req.URL.Scheme)
	assert.Equal(t, "nam1.cloud.thethings.network", req.URL.Host)
	assert.Equal(t, "/api/v3/as/applications/weather/packages/storage/uplink_message", req.URL.Path)
	assert.Equal(t, "100h", req.URL.Query().Get("last"))
	assert.Equal(t, "up.uplink_message.decoded_payload", req.URL.Query().Get("field_mask"))
	assert.Equal(t, "text/event-stream", req.Header.Get("Accept"))
	assert.Equal(t, "Bearer NNSXS.abc", req.Header.Get("Authorization"))
}

func TestBuildRequest_V3CustomCluster(t *testing.T) {
	c := NewClient(Config{V3BaseURL: "https://eu1.cloud.thethings.network/"}, nil)
	req, err := c.BuildRequest(context.Background(), models.PullRequest{
		AppName: "weather", AccessKey: "k", TimeWindow: "1d", APIVersion: models.APIVersionV3,
	})
	require.NoError(t, err)
	assert.Equal(t, "eu1.cloud.thethings.network", req.URL.Host)
	assert.Equal(t, "/api/v3/as/applications/weather/packages/storage/uplink_message", req.URL.Path)
}

func TestBuildRequest_IsDeterministic(t *testing.T) {
	c := NewClient(Config{}, nil)
	for _, v := range []models.APIVersion{models.APIVersionV2, models.APIVersionV3} {
		in := models.PullRequest{AppName: "weather", AccessKey: "k", TimeWindow: "1d", APIVersion: v}

		first, err := c.BuildRequest(context.Background(), in)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := c.BuildRequest(context.Background(), in)
			require.NoError(t, err)
			assert.Equal(t, first.Method, again.Method)
			assert.Equal(t, first.URL.String(), again.URL.String())
			assert.Equal(t, first.Header, again.Header)
		}
	}
}

func TestBuildRequest_ConfigurationErrors(t *testing.T) {
	valid := models.PullRequest{AppName: "weather", AccessKey: "secret-key", TimeWindow: "1d"}

	tests := []struct {
		name      string
		mutate    func(r *models.PullRequest)
		wantField string
		wantValue string
	}{
		{"version 1", func(r *models.PullRequest) { r.APIVersion = 1 }, "APIVersion", "1"},
		{"version 4", func(r *models.PullRequest) { r.APIVersion = 4 }, "APIVersion", "4"},
		{"version negative", func(r *models.PullRequest) { r.APIVersion = -3 }, "APIVersion", "-3"},
		{"missing app", func(r *models.PullRequest) { r.AppName = "" }, "AppName", ""},
		{"missing key", func(r *models.PullRequest) { r.AccessKey = "" }, "AccessKey", ""},
		{"missing window", func(r *models.PullRequest) { r.TimeWindow = "" }, "TimeWindow", ""},
		{"app with slash", func(r *models.PullRequest) { r.AppName = "a/b" }, "AppName", "a/b"},
		{"app with tab", func(r *models.PullRequest) { r.AppName = "a\tb" }, "AppName", "a\tb"},
		{"app with newline", func(r *models.PullRequest) { r.AppName = "a\nb" }, "AppName", "a\nb"},
		{"app with percent", func(r *models.PullRequest) { r.AppName = "a%zz" }, "AppName", "a%zz"},
		{"app with control char", func(r *models.PullRequest) { r.AppName = "a\x00b" }, "AppName", "a\x00b"},
		{"v2 app with newline", func(r *models.PullRequest) { r.AppName = "a\nb"; r.APIVersion = models.APIVersionV2 }, "AppName", "a\nb"},
	}

	c := NewClient(Config{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			_, err := c.BuildRequest(context.Background(), in)
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Equal(t, tt.wantValue, cfgErr.Value)
			assert.NotContains(t, cfgErr.Error(), "secret-key")
		})
	}
}

func TestBuildRequest_BadBaseURL(t *testing.T) {
	c := NewClient(Config{V3BaseURL: "not a url"}, nil)
	_, err := c.BuildRequest(context.Background(), models.PullRequest{AppName: "a", AccessKey: "k", TimeWindow: "1d"})

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "V3BaseURL", cfgErr.Field)
}
