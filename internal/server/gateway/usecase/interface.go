package usecase

import (
	"context"

	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
	"github.com/Alwanly/ttn-storage-pull/pkg/wrapper"
)

// IUseCase defines the business logic of the pull gateway
type IUseCase interface {
	// Pull runs one storage pull and wraps the outcome for the HTTP layer
	Pull(ctx context.Context, req *dto.PullRequestBody) wrapper.JSONResult
	// Health reports gateway and redis status
	Health(ctx context.Context) wrapper.JSONResult
}
