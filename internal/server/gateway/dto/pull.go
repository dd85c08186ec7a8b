package dto

import (
	"time"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

// PullRequestBody is the body of POST /pull.
type PullRequestBody struct {
	AppName    string `json:"app_name" validate:"required" example:"weather-station"`
	AccessKey  string `json:"access_key" validate:"required" example:"NNSXS.XXXXXXXX"`
	TimeWindow string `json:"time_window" validate:"required" example:"1d"`
	// APIVersion is 2 or 3; zero selects 3.
	APIVersion int `json:"api_version" validate:"omitempty,oneof=2 3" example:"3"`
}

// ToModel converts the body into a storage request without an output dir.
func (b *PullRequestBody) ToModel() models.PullRequest {
	return models.PullRequest{
		AppName:    b.AppName,
		AccessKey:  b.AccessKey,
		TimeWindow: b.TimeWindow,
		APIVersion: models.APIVersion(b.APIVersion).Resolve(),
	}
}

// PullResponse is the data of a successful pull.
type PullResponse struct {
	PullID      string          `json:"pull_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	APIVersion  string          `json:"api_version" example:"v3"`
	RecordCount int             `json:"record_count" example:"12"`
	Bytes       int             `json:"bytes" example:"4096"`
	Records     []models.Record `json:"records,omitempty" swaggertype:"array,object"`
	// Raw is the V2 body, embedded as JSON when it is valid JSON and as a string otherwise.
	Raw any `json:"raw,omitempty" swaggertype:"object"`
}

// PullFailure is the data of a failed pull.
type PullFailure struct {
	PullID    string `json:"pull_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ErrorKind string `json:"error_kind" example:"transport"`
}

// PullCompletedNotification is published to redis after a successful pull.
type PullCompletedNotification struct {
	PullID      string    `json:"pull_id"`
	AppName     string    `json:"app_name"`
	APIVersion  string    `json:"api_version"`
	RecordCount int       `json:"record_count"`
	Bytes       int       `json:"bytes"`
	CompletedAt time.Time `json:"completed_at"`
}
