// Package di provides dependency injection configuration for the PageKeep server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/di/providers"
	"github.com/pagekeep/pagekeep-server/internal/logger"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/tags"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvideAuthRateLimiter)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideVocabulary)
	do.Provide(injector, providers.ProvideAuthorService)
	do.Provide(injector, providers.ProvidePublisherService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideBorrowService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*providers.AuthRateLimiterHandle](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*tags.Vocabulary](injector)
	_ = do.MustInvoke[*service.AuthorService](injector)
	_ = do.MustInvoke[*service.PublisherService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.BorrowService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
