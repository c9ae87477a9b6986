package providers

import (
	"github.com/samber/do/v2"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/logger"
	"github.com/pagekeep/pagekeep-server/internal/ratelimit"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/tags"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

// ProvideValidator provides the request input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideVocabulary provides the catalog tag vocabulary.
func ProvideVocabulary(i do.Injector) (*tags.Vocabulary, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return tags.NewVocabulary(cfg.Catalog.AllowedTags), nil
}

// ProvideAuthorService provides the author catalog service.
func ProvideAuthorService(i do.Injector) (*service.AuthorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthorService(storeHandle.Store, validator, log.Logger), nil
}

// ProvidePublisherService provides the publisher catalog service.
func ProvidePublisherService(i do.Injector) (*service.PublisherService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPublisherService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideBookService provides the book catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	vocabulary := do.MustInvoke[*tags.Vocabulary](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, vocabulary, validator, log.Logger), nil
}

// ProvideBorrowService provides the borrow request service.
func ProvideBorrowService(i do.Injector) (*service.BorrowService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBorrowService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideAuthService provides the admin session service.
// The admin password from config is hashed here, at startup, so the
// plaintext never reaches the service layer.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	adminHash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(storeHandle.Store, tokens, cfg.Admin.Username, adminHash, log.Logger), nil
}

// AuthRateLimiterHandle wraps the login rate limiter with Shutdownable.
type AuthRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *AuthRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideAuthRateLimiter provides the per-IP login rate limiter.
func ProvideAuthRateLimiter(i do.Injector) (*AuthRateLimiterHandle, error) {
	// One login attempt per second per client, with a small burst.
	return &AuthRateLimiterHandle{KeyedRateLimiter: ratelimit.New(1, 5)}, nil
}
