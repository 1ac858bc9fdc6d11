package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/eco_shop/internal/db"
	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/repo/memory"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

type seedWriter interface {
	EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error)
	CreateItem(ctx context.Context, it *domain.Item) error
	CreateUser(ctx context.Context, u *domain.User) error
}

func newSQLiteRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	r := New(gdb)
	t.Cleanup(func() { _ = r.Close() })
	require.NoError(t, r.Ping(context.Background()))
	return r
}

func seedCatalog(t *testing.T, w seedWriter) domain.UserID {
	t.Helper()
	ctx := context.Background()

	home, err := w.EnsureCategory(ctx, "home")
	require.NoError(t, err)
	travel, err := w.EnsureCategory(ctx, "travel")
	require.NoError(t, err)

	items := []domain.Item{
		{Name: "Bamboo Toothbrush", CategoryID: home, Description: "Compostable handle", Price: 300, Carbon: 2},
		{Name: "Steel Bottle", CategoryID: travel, Description: "Reusable bottle", Price: 1500, Carbon: 9},
		{Name: "Cotton Tote", CategoryID: travel, Description: "Organic BAMBOO-free bag", Price: 500, Carbon: 4},
		{Name: "Beeswax Wraps", CategoryID: home, Description: "Replace cling film, 100% natural", Price: 500, Carbon: 1},
	}
	for i := range items {
		require.NoError(t, w.CreateItem(ctx, &items[i]))
	}

	u := domain.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, w.CreateUser(ctx, &u))
	return u.ID
}

func TestGormRepo_ItemsMatchesInMemoryModel(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	seedCatalog(t, r)
	mem := memory.NewStore()
	seedCatalog(t, mem)

	queries := []domain.CatalogQuery{
		{},
		{Sort: domain.SortPriceAsc},
		{Sort: domain.SortCarbonAsc},
		{Sort: "unknown"},
		{Search: "bamboo"},
		{Search: "BOTTLE", Sort: domain.SortPriceAsc},
		{CategoryID: 1},
		{CategoryID: 2, Search: "bag"},
		{Search: "100%"},
		{Search: "nothing matches"},
	}
	for _, q := range queries {
		want, err := mem.Items(ctx, q)
		require.NoError(t, err)
		got, err := r.Items(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, want.IDs(), got.IDs(), "query %+v", q)
	}
}

func TestGormRepo_ItemByID(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	seedCatalog(t, r)

	it, err := r.ItemByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bamboo Toothbrush", it.Name)
	assert.Equal(t, "home", it.CategoryName)
	assert.Equal(t, domain.DefaultPicture, it.Picture)

	_, err = r.ItemByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	list, err := r.ItemsByID(ctx, []domain.ItemID{3, 1, 99})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{1, 3}, list.IDs())
}

func TestGormRepo_CreateUserDuplicate(t *testing.T) {
	r := newSQLiteRepo(t)
	seedCatalog(t, r)

	err := r.CreateUser(context.Background(), &domain.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	_, err = r.UserByUsername(context.Background(), "bob")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGormRepo_AtomicCheckoutAndRollback(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	uid := seedCatalog(t, r)

	require.NoError(t, r.Atomic(ctx, func(tx service.HoldingsTx) error {
		if err := tx.AddCartItem(ctx, uid, 1); err != nil {
			return err
		}
		return tx.AddCartItem(ctx, uid, 2)
	}))

	err := r.Atomic(ctx, func(tx service.HoldingsTx) error {
		return tx.AddCartItem(ctx, uid, 1)
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyInCart)

	// a failure halfway through leaves nothing behind
	err = r.Atomic(ctx, func(tx service.HoldingsTx) error {
		require.NoError(t, tx.ClearCart(ctx, uid))
		require.NoError(t, tx.AddInventoryItem(ctx, uid, 1))
		return tx.RemoveInventoryItem(ctx, uid, 3)
	})
	assert.ErrorIs(t, err, domain.ErrNotOwned)

	h, err := r.Holdings(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{1, 2}, h.CartIDs())
	assert.Empty(t, h.Inventory)

	require.NoError(t, r.Atomic(ctx, func(tx service.HoldingsTx) error {
		h, err := tx.Holdings(ctx, uid)
		if err != nil {
			return err
		}
		moved, err := h.Checkout()
		if err != nil {
			return err
		}
		if err := tx.ClearCart(ctx, uid); err != nil {
			return err
		}
		for _, id := range moved {
			if err := tx.AddInventoryItem(ctx, uid, id); err != nil {
				return err
			}
		}
		return nil
	}))

	h, err = r.Holdings(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, h.Cart)
	assert.Equal(t, []domain.ItemID{1, 2}, h.InventoryIDs())
}

func TestGormRepo_HoldingsUnknownUser(t *testing.T) {
	r := newSQLiteRepo(t)
	_, err := r.Holdings(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGormRepo_Reviews(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	uid := seedCatalog(t, r)

	rv := domain.Review{Rating: 5, Title: "Great", Text: "Lasts ages", UserID: uid, ItemID: 2}
	require.NoError(t, r.CreateReview(ctx, &rv))
	assert.NotZero(t, rv.ID)
	assert.Equal(t, "alice", rv.Username)
	assert.False(t, rv.CreatedAt.IsZero())

	err := r.CreateReview(ctx, &domain.Review{Rating: 5, Title: "x", Text: "y", UserID: uid, ItemID: 99})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	byItem, err := r.ReviewsByItem(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	assert.Equal(t, "alice", byItem[0].Username)

	byUser, err := r.ReviewsByUser(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	require.NoError(t, r.DeleteReview(ctx, rv.ID))
	assert.ErrorIs(t, r.DeleteReview(ctx, rv.ID), domain.ErrReviewNotFound)
	_, err = r.ReviewByID(ctx, rv.ID)
	assert.ErrorIs(t, err, domain.ErrReviewNotFound)
}

func TestGormRepo_RefreshRotation(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	uid := seedCatalog(t, r)
	exp := time.Now().Add(time.Hour)

	require.NoError(t, r.SaveRefresh(ctx, domain.RefreshToken{JTI: "j1", TokenHash: "h1", UserID: uid, ExpiresAt: exp}))
	require.NoError(t, r.RotateRefresh(ctx, "j1", domain.RefreshToken{JTI: "j2", TokenHash: "h2", UserID: uid, ExpiresAt: exp}))

	old, err := r.RefreshByJTI(ctx, "j1")
	require.NoError(t, err)
	assert.True(t, old.Revoked)

	err = r.RotateRefresh(ctx, "j1", domain.RefreshToken{JTI: "j3", TokenHash: "h3", UserID: uid, ExpiresAt: exp})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
	_, err = r.RefreshByJTI(ctx, "j3")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	require.NoError(t, r.RevokeRefresh(ctx, "h2"))
	cur, err := r.RefreshByJTI(ctx, "j2")
	require.NoError(t, err)
	assert.True(t, cur.Revoked)
}

func TestGormRepo_RotateExpired(t *testing.T) {
	ctx := context.Background()
	r := newSQLiteRepo(t)
	uid := seedCatalog(t, r)

	require.NoError(t, r.SaveRefresh(ctx, domain.RefreshToken{JTI: "old", TokenHash: "h", UserID: uid, ExpiresAt: time.Now().Add(-time.Minute)}))
	err := r.RotateRefresh(ctx, "old", domain.RefreshToken{JTI: "new", TokenHash: "n", UserID: uid, ExpiresAt: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}
