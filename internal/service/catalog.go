package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

type CatalogService struct {
	Repo CatalogRepo
}

// Query returns the catalog filtered by category and search text, sorted by
// the query's key.
func (s *CatalogService) Query(ctx context.Context, q domain.CatalogQuery) (domain.ItemList, error) {
	items, err := s.Repo.Items(ctx, q.Normalize())
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.Repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CatalogService) Item(ctx context.Context, id domain.ItemID) (domain.Item, error) {
	if id == 0 {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return s.Repo.ItemByID(ctx, id)
}
