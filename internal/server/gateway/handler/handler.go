package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Alwanly/ttn-storage-pull/internal/config"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/dto"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/repository"
	"github.com/Alwanly/ttn-storage-pull/internal/server/gateway/usecase"
	"github.com/Alwanly/ttn-storage-pull/pkg/deps"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/validator"
	"github.com/Alwanly/ttn-storage-pull/pkg/wrapper"
)

type Handler struct {
	Logger  *logger.CanonicalLogger
	UseCase usecase.IUseCase
}

func NewHandler(d deps.App, cfg *config.GatewayConfig) *Handler {
	channel := ""
	if cfg != nil && cfg.Redis != nil {
		channel = cfg.Redis.Channel
	}
	repo := repository.NewRepository(d.Pub, channel)

	uc := usecase.NewUseCase(usecase.UseCase{
		Puller: d.Puller,
		Repo:   repo,
		Logger: d.Logger,
	})

	h := &Handler{
		Logger:  d.Logger,
		UseCase: uc,
	}

	// Health check endpoint (no auth required)
	d.Fiber.Get("/health", h.health)

	d.Fiber.Post("/pull", d.Middleware.BasicAuth(), h.pull)

	d.Fiber.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return h
}

// health godoc
// @Summary      Health check
// @Description  Reports gateway liveness and whether redis answers a ping
// @Tags         health
// @Produce      json
// @Success      200 {object} wrapper.JSONResult{data=dto.HealthResponse}
// @Router       /health [get]
func (h *Handler) health(c *fiber.Ctx) error {
	return h.UseCase.Health(c.UserContext()).Send(c)
}

// pull godoc
// @Summary      Pull uplinks from the TTN storage integration
// @Description  Runs one storage API request for the given application and time window and returns the decoded V3 records or the raw V2 body. A completion event is published to redis on success.
// @Tags         storage
// @Accept       json
// @Produce      json
// @Param        request body dto.PullRequestBody true "Pull parameters"
// @Success      200 {object} wrapper.JSONResult{data=dto.PullResponse} "Pull completed"
// @Failure      400 {object} wrapper.JSONResult{data=dto.PullFailure} "Invalid request or configuration"
// @Failure      401 {object} wrapper.JSONResult "Missing or invalid credentials"
// @Failure      502 {object} wrapper.JSONResult{data=dto.PullFailure} "Storage API unreachable, refused the request or returned undecodable data"
// @Failure      500 {object} wrapper.JSONResult{data=dto.PullFailure} "Internal server error"
// @Router       /pull [post]
// @Security     BasicAuth
func (h *Handler) pull(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "pull"))

	req := new(dto.PullRequestBody)
	if err := c.BodyParser(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return wrapper.ResponseFailed(fiber.StatusBadRequest, "invalid request body", nil).Send(c)
	}

	if err := validator.ValidateStruct(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		return wrapper.ResponseFailed(fiber.StatusBadRequest, "validation failed", validator.TranslateError(err)).Send(c)
	}

	return h.UseCase.Pull(c.UserContext(), req).Send(c)
}
