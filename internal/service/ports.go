package service

import (
	"context"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

type CatalogRepo interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Items(ctx context.Context, q domain.CatalogQuery) (domain.ItemList, error)
	ItemByID(ctx context.Context, id domain.ItemID) (domain.Item, error)
	ItemsByID(ctx context.Context, ids []domain.ItemID) (domain.ItemList, error)
}

type UserRepo interface {
	// CreateUser returns domain.ErrDuplicateUsername when the name is taken.
	CreateUser(ctx context.Context, u *domain.User) error
	UserByUsername(ctx context.Context, username string) (domain.User, error)
	UserByID(ctx context.Context, id domain.UserID) (domain.User, error)
}

// HoldingsTx is the cart/inventory view of one persistence transaction.
type HoldingsTx interface {
	// Holdings loads the user's sets and, where supported, locks the user
	// for the rest of the transaction.
	Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error)
	AddCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error
	RemoveCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error
	ClearCart(ctx context.Context, userID domain.UserID) error
	AddInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error
	RemoveInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error
}

type HoldingsStore interface {
	Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error)
	// Atomic runs fn in one transaction; any error rolls back every change fn made.
	Atomic(ctx context.Context, fn func(tx HoldingsTx) error) error
}

type ReviewRepo interface {
	CreateReview(ctx context.Context, r *domain.Review) error
	ReviewByID(ctx context.Context, id domain.ReviewID) (domain.Review, error)
	DeleteReview(ctx context.Context, id domain.ReviewID) error
	ReviewsByItem(ctx context.Context, itemID domain.ItemID) ([]domain.Review, error)
	ReviewsByUser(ctx context.Context, userID domain.UserID) ([]domain.Review, error)
}

type TokenRepo interface {
	SaveRefresh(ctx context.Context, t domain.RefreshToken) error
	RefreshByJTI(ctx context.Context, jti string) (domain.RefreshToken, error)
	// RotateRefresh revokes oldJTI and stores next in one transaction. It fails
	// with domain.ErrInvalidRefreshToken if oldJTI is already revoked or expired.
	RotateRefresh(ctx context.Context, oldJTI string, next domain.RefreshToken) error
	RevokeRefresh(ctx context.Context, tokenHash string) error
}

// Store is everything a persistence adapter provides.
type Store interface {
	CatalogRepo
	UserRepo
	HoldingsStore
	ReviewRepo
	TokenRepo
}
