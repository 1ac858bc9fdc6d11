package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/models"
)

func (r *GormRepo) CreateReview(ctx context.Context, rv *domain.Review) error {
	row := models.Review{
		Rating: rv.Rating,
		Title:  rv.Title,
		Text:   rv.Text,
		UserID: uint(rv.UserID),
		ItemID: uint(rv.ItemID),
	}
	if !rv.CreatedAt.IsZero() {
		row.CreatedAt = rv.CreatedAt
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Item{}).Where("id = ?", row.ItemID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrItemNotFound
		}
		if err := tx.Where("id = ?", row.UserID).First(&row.User).Error; err != nil {
			return notFound(err, domain.ErrUserNotFound)
		}
		return tx.Omit("User").Create(&row).Error
	})
	if err != nil {
		return err
	}

	*rv = row.ToDomain()
	return nil
}

func (r *GormRepo) ReviewByID(ctx context.Context, id domain.ReviewID) (domain.Review, error) {
	var row models.Review
	if err := r.DB.WithContext(ctx).Preload("User").Where("id = ?", uint(id)).First(&row).Error; err != nil {
		return domain.Review{}, notFound(err, domain.ErrReviewNotFound)
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) DeleteReview(ctx context.Context, id domain.ReviewID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, uint(id))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *GormRepo) ReviewsByItem(ctx context.Context, itemID domain.ItemID) ([]domain.Review, error) {
	return r.reviewsWhere(ctx, "item_id = ?", uint(itemID))
}

func (r *GormRepo) ReviewsByUser(ctx context.Context, userID domain.UserID) ([]domain.Review, error) {
	return r.reviewsWhere(ctx, "user_id = ?", uint(userID))
}

func (r *GormRepo) reviewsWhere(ctx context.Context, cond string, arg uint) ([]domain.Review, error) {
	var rows []models.Review
	if err := r.DB.WithContext(ctx).Preload("User").Where(cond, arg).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Review, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out, nil
}
