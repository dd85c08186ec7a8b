package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Alwanly/ttn-storage-pull/internal/metrics"
	"github.com/Alwanly/ttn-storage-pull/internal/models"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/repository"
	"github.com/Alwanly/ttn-storage-pull/internal/storage"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/wrapper"
)

type UseCase struct {
	Puller storage.IStoragePuller
	Repo   repository.IRepository
	Logger *logger.CanonicalLogger

	// NewID and Now are overridable in tests.
	NewID func() string
	Now   func() time.Time
}

func NewUseCase(uc UseCase) *UseCase {
	if uc.Logger == nil {
		uc.Logger = logger.NewNop()
	}
	if uc.NewID == nil {
		uc.NewID = uuid.NewString
	}
	if uc.Now == nil {
		uc.Now = time.Now
	}
	return &uc
}

func (uc *UseCase) Pull(ctx context.Context, body *dto.PullRequestBody) wrapper.JSONResult {
	req := body.ToModel()
	pullID := uc.NewID()
	ctx = logger.WithCorrelationID(ctx, pullID)

	logger.AddToContext(ctx,
		zap.String(logger.FieldPullID, pullID),
		zap.String(logger.FieldAppName, req.AppName),
		zap.String(logger.FieldAPIVersion, req.APIVersion.String()),
		zap.String(logger.FieldTimeWindow, req.TimeWindow),
	)

	start := uc.Now()
	res, err := uc.Puller.Pull(ctx, req)
	took := uc.Now().Sub(start)
	kind := storage.Kind(err)

	if err != nil {
		metrics.ObservePull(req.APIVersion.String(), kind, took, 0)
		logger.AddToContext(ctx, zap.String(logger.FieldErrorKind, kind), zap.Error(err))
		return failure(pullID, kind, err)
	}

	data := dto.PullResponse{
		PullID:     pullID,
		APIVersion: res.Version.String(),
		Bytes:      res.Size,
	}
	switch res.Version {
	case models.APIVersionV2:
		data.Raw, data.RecordCount = embedRaw(res.Raw)
	default:
		data.Records = res.Records
		data.RecordCount = len(res.Records)
	}

	metrics.ObservePull(req.APIVersion.String(), kind, took, len(res.Records))
	logger.AddToContext(ctx,
		zap.Int(logger.FieldRecordCount, data.RecordCount),
		zap.Int(logger.FieldBytes, data.Bytes),
	)

	notification := dto.PullCompletedNotification{
		PullID:      pullID,
		AppName:     req.AppName,
		APIVersion:  data.APIVersion,
		RecordCount: data.RecordCount,
		Bytes:       data.Bytes,
		CompletedAt: uc.Now().UTC(),
	}
	if err := uc.Repo.PublishPullCompleted(ctx, notification); err != nil {
		metrics.NotificationErrors.Inc()
		uc.Logger.WithPullID(pullID).WithError(err).Warn("failed to publish pull notification")
	}

	return wrapper.ResponseSuccess(http.StatusOK, data)
}

func (uc *UseCase) Health(ctx context.Context) wrapper.JSONResult {
	return wrapper.ResponseSuccess(http.StatusOK, dto.HealthResponse{
		Status: "healthy",
		Redis:  uc.Repo.RedisHealthy(ctx),
	})
}

// failure maps storage error kinds onto HTTP statuses. Storage scrubs the
// access key from response excerpts before they reach an error message.
func failure(pullID, kind string, err error) wrapper.JSONResult {
	data := dto.PullFailure{PullID: pullID, ErrorKind: kind}

	var cfgErr *storage.ConfigurationError
	var trErr *storage.TransportError
	var decErr *storage.DecodeError
	switch {
	case errors.As(err, &cfgErr):
		return wrapper.ResponseFailed(http.StatusBadRequest, err.Error(), data)
	case errors.As(err, &trErr), errors.As(err, &decErr):
		return wrapper.ResponseFailed(http.StatusBadGateway, err.Error(), data)
	default:
		return wrapper.ResponseFailed(http.StatusInternalServerError, "internal server error", data)
	}
}

// embedRaw returns the V2 body as embeddable JSON plus its element count when
// it is a JSON array. Anything that is not valid JSON is returned as a string.
func embedRaw(raw []byte) (any, int) {
	if len(raw) == 0 {
		return nil, 0
	}
	if !json.Valid(raw) {
		return string(raw), 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return json.RawMessage(raw), 0
	}
	return json.RawMessage(raw), len(items)
}
