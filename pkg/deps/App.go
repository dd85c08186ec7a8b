package deps

import (
	"github.com/Alwanly/ttn-storage-pull/internal/storage"
	"github.com/Alwanly/ttn-storage-pull/pkg/logger"
	"github.com/Alwanly/ttn-storage-pull/pkg/middleware"
	"github.com/Alwanly/ttn-storage-pull/pkg/pubsub"
	"github.com/gofiber/fiber/v2"
)

// App bundles what a service handler needs to register itself.
type App struct {
	Fiber      *fiber.App
	Logger     *logger.CanonicalLogger
	Middleware *middleware.AuthMiddleware
	// Pub is nil when redis is not configured.
	Pub    pubsub.PubSub
	Puller storage.IStoragePuller
}
