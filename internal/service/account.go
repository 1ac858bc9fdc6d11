package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/hash"
	"github.com/Skotchmaster/eco_shop/internal/logging"
)

type AccountService struct {
	Users    UserRepo
	Catalog  CatalogRepo
	Holdings HoldingsStore
}

func (s *AccountService) Register(ctx context.Context, username, password string) (domain.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	username = strings.TrimSpace(username)
	if err := domain.ValidateCredentials(username, password); err != nil {
		return domain.User{}, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{Username: username, PasswordHash: pwHash}
	if err := s.Users.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return domain.User{}, err
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// VerifyCredentials does not tell an unknown user apart from a wrong password.
func (s *AccountService) VerifyCredentials(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Users.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !hash.CheckPassword(u.PasswordHash, password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}

func (s *AccountService) User(ctx context.Context, id domain.UserID) (domain.User, error) {
	return s.Users.UserByID(ctx, id)
}

func (s *AccountService) AddToCart(ctx context.Context, userID domain.UserID, itemID domain.ItemID) (domain.Item, error) {
	item, err := s.Catalog.ItemByID(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}

	err = s.Holdings.Atomic(ctx, func(tx HoldingsTx) error {
		h, err := tx.Holdings(ctx, userID)
		if err != nil {
			return err
		}
		if err := h.AddToCart(itemID); err != nil {
			return err
		}
		return tx.AddCartItem(ctx, userID, itemID)
	})
	if err != nil {
		return item, err
	}
	return item, nil
}

func (s *AccountService) RemoveFromCart(ctx context.Context, userID domain.UserID, itemID domain.ItemID) (domain.Item, error) {
	item, err := s.Catalog.ItemByID(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}

	err = s.Holdings.Atomic(ctx, func(tx HoldingsTx) error {
		h, err := tx.Holdings(ctx, userID)
		if err != nil {
			return err
		}
		if err := h.RemoveFromCart(itemID); err != nil {
			return err
		}
		return tx.RemoveCartItem(ctx, userID, itemID)
	})
	return item, err
}

// Checkout moves the whole cart into the inventory in one transaction.
func (s *AccountService) Checkout(ctx context.Context, userID domain.UserID) (domain.ItemList, error) {
	var moved []domain.ItemID
	err := s.Holdings.Atomic(ctx, func(tx HoldingsTx) error {
		h, err := tx.Holdings(ctx, userID)
		if err != nil {
			return err
		}
		moved, err = h.Checkout()
		if err != nil {
			return err
		}
		if err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}
		for _, id := range moved {
			if err := tx.AddInventoryItem(ctx, userID, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	items, err := s.Catalog.ItemsByID(ctx, moved)
	if err != nil {
		// the move is committed; report it with bare ids
		logging.FromContext(ctx).With("svc", "account.checkout").Error("checkout_items_load_failed", "error", err)
		items = make(domain.ItemList, len(moved))
		for i, id := range moved {
			items[i] = domain.Item{ID: id}
		}
	}
	return items, nil
}

// Sell drops an owned item from the inventory. The returned item carries the
// sale price for display; no money moves.
func (s *AccountService) Sell(ctx context.Context, userID domain.UserID, itemID domain.ItemID) (domain.Item, error) {
	item, err := s.Catalog.ItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return domain.Item{}, domain.ErrNotOwned
		}
		return domain.Item{}, err
	}

	err = s.Holdings.Atomic(ctx, func(tx HoldingsTx) error {
		h, err := tx.Holdings(ctx, userID)
		if err != nil {
			return err
		}
		if err := h.Sell(itemID); err != nil {
			return err
		}
		return tx.RemoveInventoryItem(ctx, userID, itemID)
	})
	return item, err
}

func (s *AccountService) Cart(ctx context.Context, userID domain.UserID) (domain.ItemList, error) {
	h, err := s.Holdings.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Catalog.ItemsByID(ctx, h.CartIDs())
}

func (s *AccountService) Inventory(ctx context.Context, userID domain.UserID) (domain.ItemList, error) {
	h, err := s.Holdings.Holdings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Catalog.ItemsByID(ctx, h.InventoryIDs())
}
