package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func orderFor(key domain.SortKey) string {
	switch key {
	case domain.SortPriceAsc:
		return "price ASC"
	case domain.SortPriceDesc:
		return "price DESC"
	default:
		return "carbon ASC"
	}
}

func (r *GormRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	var rows []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(rows))
	for i, c := range rows {
		out[i] = c.ToDomain()
	}
	return out, nil
}

func (r *GormRepo) Items(ctx context.Context, q domain.CatalogQuery) (domain.ItemList, error) {
	q = q.Normalize()

	tx := r.DB.WithContext(ctx).Model(&models.Item{}).Preload("Category")
	if q.CategoryID != 0 {
		tx = tx.Where("category_id = ?", uint(q.CategoryID))
	}
	if q.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern)
	}

	var rows []models.Item
	if err := tx.Order(orderFor(q.Sort)).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toItemList(rows), nil
}

func (r *GormRepo) ItemByID(ctx context.Context, id domain.ItemID) (domain.Item, error) {
	var row models.Item
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id = ?", uint(id)).First(&row).Error; err != nil {
		return domain.Item{}, notFound(err, domain.ErrItemNotFound)
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) ItemsByID(ctx context.Context, ids []domain.ItemID) (domain.ItemList, error) {
	if len(ids) == 0 {
		return domain.ItemList{}, nil
	}
	raw := make([]uint, len(ids))
	for i, id := range ids {
		raw[i] = uint(id)
	}

	var rows []models.Item
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id IN ?", raw).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toItemList(rows), nil
}

func toItemList(rows []models.Item) domain.ItemList {
	out := make(domain.ItemList, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out
}

// seeding

func (r *GormRepo) CountItems(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Item{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error) {
	c := models.Category{Name: strings.TrimSpace(name)}
	if err := r.DB.WithContext(ctx).Where("name = ?", c.Name).FirstOrCreate(&c).Error; err != nil {
		return 0, err
	}
	return domain.CategoryID(c.ID), nil
}

func (r *GormRepo) CreateItem(ctx context.Context, it *domain.Item) error {
	if it.Picture == "" {
		it.Picture = domain.DefaultPicture
	}
	row := models.ItemFromDomain(*it)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Category{}).Where("id = ?", row.CategoryID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrValidation
		}
		return tx.Omit("Category").Create(&row).Error
	})
	if err != nil {
		return err
	}
	it.ID = domain.ItemID(row.ID)
	return nil
}
