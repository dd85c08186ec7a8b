package storage

import (
	"context"
	"net/http"

	"github.com/Alwanly/ttn-storage-pull/internal/models"
)

// IStoragePuller fetches one time window of uplinks from the storage API.
type IStoragePuller interface {
	Pull(ctx context.Context, req models.PullRequest) (*models.PullResult, error)
}

// Doer executes a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
