package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/models"
)

func (r *GormRepo) SaveRefresh(ctx context.Context, t domain.RefreshToken) error {
	row := models.RefreshFromDomain(t)
	return r.DB.WithContext(ctx).Create(&row).Error
}

func (r *GormRepo) RefreshByJTI(ctx context.Context, jti string) (domain.RefreshToken, error) {
	var row models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("jti = ?", jti).First(&row).Error; err != nil {
		return domain.RefreshToken{}, notFound(err, domain.ErrInvalidRefreshToken)
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) RotateRefresh(ctx context.Context, oldJTI string, next domain.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ? AND expires_at > ?", oldJTI, false, r.Now().Unix()).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidRefreshToken
		}

		row := models.RefreshFromDomain(next)
		return tx.Create(&row).Error
	})
}

func (r *GormRepo) RevokeRefresh(ctx context.Context, tokenHash string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokenHash).
		Update("revoked", true).Error
}
