package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

func seeded(t *testing.T) (*Store, domain.UserID) {
	t.Helper()
	ctx := context.Background()
	s := NewStore()

	home, err := s.EnsureCategory(ctx, "home")
	require.NoError(t, err)
	for _, it := range []domain.Item{
		{Name: "Bamboo Brush", CategoryID: home, Price: 300, Carbon: 2},
		{Name: "Steel Bottle", CategoryID: home, Price: 1500, Carbon: 9},
	} {
		it := it
		require.NoError(t, s.CreateItem(ctx, &it))
	}

	u := domain.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, s.CreateUser(ctx, &u))
	return s, u.ID
}

func TestStore_EnsureCategoryIsIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	a, err := s.EnsureCategory(ctx, "garden")
	require.NoError(t, err)
	b, err := s.EnsureCategory(ctx, " garden ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStore_CreateItemDefaultsPicture(t *testing.T) {
	s, _ := seeded(t)
	it, err := s.ItemByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPicture, it.Picture)
	assert.Equal(t, "home", it.CategoryName)
}

func TestStore_CreateUserDuplicate(t *testing.T) {
	s, _ := seeded(t)
	err := s.CreateUser(context.Background(), &domain.User{Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestStore_AtomicRollsBackOnError(t *testing.T) {
	s, uid := seeded(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(tx service.HoldingsTx) error {
		require.NoError(t, tx.AddCartItem(ctx, uid, 1))
		require.NoError(t, tx.AddInventoryItem(ctx, uid, 2))
		return boom
	})
	require.ErrorIs(t, err, boom)

	h, err := s.Holdings(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, h.Cart)
	assert.Empty(t, h.Inventory)
}

func TestStore_AtomicCommits(t *testing.T) {
	s, uid := seeded(t)
	ctx := context.Background()

	require.NoError(t, s.Atomic(ctx, func(tx service.HoldingsTx) error {
		if err := tx.AddCartItem(ctx, uid, 1); err != nil {
			return err
		}
		return tx.AddCartItem(ctx, uid, 2)
	}))

	h, err := s.Holdings(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{1, 2}, h.CartIDs())
}

func TestStore_HoldingsReturnsCopy(t *testing.T) {
	s, uid := seeded(t)
	ctx := context.Background()

	h, err := s.Holdings(ctx, uid)
	require.NoError(t, err)
	h.Cart[1] = struct{}{}

	again, err := s.Holdings(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, again.Cart)
}

func TestStore_ItemsAppliesQuery(t *testing.T) {
	s, _ := seeded(t)
	list, err := s.Items(context.Background(), domain.CatalogQuery{Search: "BOTTLE"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Steel Bottle", list[0].Name)
}

func TestStore_RotateRefresh(t *testing.T) {
	s, uid := seeded(t)
	ctx := context.Background()
	exp := s.Now().Add(time.Hour)

	require.NoError(t, s.SaveRefresh(ctx, domain.RefreshToken{JTI: "a", TokenHash: "ha", UserID: uid, ExpiresAt: exp}))
	require.NoError(t, s.RotateRefresh(ctx, "a", domain.RefreshToken{JTI: "b", TokenHash: "hb", UserID: uid, ExpiresAt: exp}))

	old, err := s.RefreshByJTI(ctx, "a")
	require.NoError(t, err)
	assert.True(t, old.Revoked)

	err = s.RotateRefresh(ctx, "a", domain.RefreshToken{JTI: "c"})
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	require.NoError(t, s.RevokeRefresh(ctx, "hb"))
	next, err := s.RefreshByJTI(ctx, "b")
	require.NoError(t, err)
	assert.True(t, next.Revoked)
}

func TestStore_ReviewsFilter(t *testing.T) {
	s, uid := seeded(t)
	ctx := context.Background()

	r := domain.Review{Rating: 4, Title: "ok", Text: "fine", UserID: uid, ItemID: 1}
	require.NoError(t, s.CreateReview(ctx, &r))
	assert.Equal(t, "alice", r.Username)

	byItem, err := s.ReviewsByItem(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byItem, 1)

	byItem, err = s.ReviewsByItem(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, byItem)

	require.NoError(t, s.DeleteReview(ctx, r.ID))
	assert.ErrorIs(t, s.DeleteReview(ctx, r.ID), domain.ErrReviewNotFound)
}
