package repo

import (
	"context"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *domain.User) error {
	row := models.User{Username: u.Username, PasswordHash: u.PasswordHash}
	tx := r.DB.WithContext(ctx).Where("username = ?", row.Username).FirstOrCreate(&row)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return domain.ErrDuplicateUsername
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrDuplicateUsername
	}
	u.ID = domain.UserID(row.ID)
	return nil
}

func (r *GormRepo) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	var row models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return domain.User{}, notFound(err, domain.ErrUserNotFound)
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	var row models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", uint(id)).First(&row).Error; err != nil {
		return domain.User{}, notFound(err, domain.ErrUserNotFound)
	}
	return row.ToDomain(), nil
}
