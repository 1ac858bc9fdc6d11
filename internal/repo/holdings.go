package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/models"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

func (r *GormRepo) Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error) {
	return loadHoldings(r.DB.WithContext(ctx), userID, false)
}

func (r *GormRepo) Atomic(ctx context.Context, fn func(tx service.HoldingsTx) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&holdingsTx{db: tx})
	})
}

// loadHoldings reads both sets. With lock set, the user row is selected
// FOR UPDATE so concurrent transactions on the same user queue up.
func loadHoldings(db *gorm.DB, userID domain.UserID, lock bool) (*domain.Holdings, error) {
	q := db
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var u models.User
	if err := q.Select("id").Where("id = ?", uint(userID)).First(&u).Error; err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}

	var cart, inventory []uint
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", u.ID).Order("item_id").Pluck("item_id", &cart).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.InventoryItem{}).Where("user_id = ?", u.ID).Order("item_id").Pluck("item_id", &inventory).Error; err != nil {
		return nil, err
	}
	return domain.NewHoldings(itemIDs(cart), itemIDs(inventory)), nil
}

func itemIDs(raw []uint) []domain.ItemID {
	out := make([]domain.ItemID, len(raw))
	for i, id := range raw {
		out[i] = domain.ItemID(id)
	}
	return out
}

type holdingsTx struct {
	db *gorm.DB
}

func (t *holdingsTx) Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error) {
	return loadHoldings(t.db.WithContext(ctx), userID, true)
}

func (t *holdingsTx) AddCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	row := models.CartItem{UserID: uint(userID), ItemID: uint(itemID)}
	res := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyInCart
	}
	return nil
}

func (t *holdingsTx) RemoveCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	res := t.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", uint(userID), uint(itemID)).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

func (t *holdingsTx) ClearCart(ctx context.Context, userID domain.UserID) error {
	return t.db.WithContext(ctx).Where("user_id = ?", uint(userID)).Delete(&models.CartItem{}).Error
}

func (t *holdingsTx) AddInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	row := models.InventoryItem{UserID: uint(userID), ItemID: uint(itemID)}
	res := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyOwned
	}
	return nil
}

func (t *holdingsTx) RemoveInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	res := t.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", uint(userID), uint(itemID)).
		Delete(&models.InventoryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotOwned
	}
	return nil
}
