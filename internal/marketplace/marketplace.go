package marketplace

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/events"
	"github.com/Skotchmaster/eco_shop/internal/logging"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

// Marketplace is the entry point for every storefront action. Callers pass
// the acting principal explicitly; the zero Principal is an anonymous visitor.
type Marketplace struct {
	Catalog  *service.CatalogService
	Accounts *service.AccountService
	Reviews  *service.ReviewService
	Tokens   *service.TokenService
	Events   events.Publisher
}

func New(store service.Store, tokens *service.TokenService, pub events.Publisher) *Marketplace {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Marketplace{
		Catalog:  &service.CatalogService{Repo: store},
		Accounts: &service.AccountService{Users: store, Catalog: store, Holdings: store},
		Reviews:  &service.ReviewService{Repo: store, Catalog: store},
		Tokens:   tokens,
		Events:   pub,
	}
}

func (m *Marketplace) publish(ctx context.Context, topic string, ev events.Event) {
	key := strconv.FormatUint(uint64(ev.UserID), 10)
	if err := m.Events.PublishEvent(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed",
			"topic", topic,
			"type", ev.Type,
			"error", err,
		)
	}
}

// fatal logs and wraps an error that is not a user-facing condition.
func fatal(ctx context.Context, op string, err error) error {
	logging.FromContext(ctx).Error(op+"_failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}

func loginRequired(msg string) Outcome {
	return failure(domain.ErrUnauthenticated, msg)
}
