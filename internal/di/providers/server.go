package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/api"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/logger"
	"github.com/pagekeep/pagekeep-server/internal/service"
)

// HTTPServerHandle wraps the API server with Shutdownable.
type HTTPServerHandle struct {
	*api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	limiterHandle := do.MustInvoke[*AuthRateLimiterHandle](i)

	services := &api.Services{
		Auth:      do.MustInvoke[*service.AuthService](i),
		Author:    do.MustInvoke[*service.AuthorService](i),
		Publisher: do.MustInvoke[*service.PublisherService](i),
		Book:      do.MustInvoke[*service.BookService](i),
		Borrow:    do.MustInvoke[*service.BorrowService](i),
	}

	srv := api.NewServer(cfg, storeHandle.Store, services, limiterHandle.KeyedRateLimiter, log.Logger)

	// Start in background
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "port", cfg.Server.Port)

	return &HTTPServerHandle{Server: srv}, nil
}
