package marketplace

import (
	"context"
	"errors"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

func (m *Marketplace) Browse(ctx context.Context, req BrowseRequest) (BrowseResult, Outcome, error) {
	if err := req.Validate(); err != nil {
		return BrowseResult{}, failure(err, "Search text is too long."), nil
	}

	q := req.Query()
	items, err := m.Catalog.Query(ctx, q)
	if err != nil {
		return BrowseResult{}, Outcome{}, fatal(ctx, "browse", err)
	}
	cats, err := m.Catalog.Categories(ctx)
	if err != nil {
		return BrowseResult{}, Outcome{}, fatal(ctx, "browse", err)
	}

	return BrowseResult{
		Items:      items,
		Categories: cats,
		CategoryID: q.CategoryID,
		Search:     q.Search,
		Sort:       q.Sort,
	}, success(""), nil
}

func (m *Marketplace) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := m.Catalog.Categories(ctx)
	if err != nil {
		return nil, fatal(ctx, "categories", err)
	}
	return cats, nil
}

// ItemDetail shows one item together with its reviews.
func (m *Marketplace) ItemDetail(ctx context.Context, id domain.ItemID) (ItemView, Outcome, error) {
	item, err := m.Catalog.Item(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return ItemView{}, failure(err, "Could not find item."), nil
		}
		return ItemView{}, Outcome{}, fatal(ctx, "item_detail", err)
	}
	reviews, err := m.Reviews.ItemReviews(ctx, id)
	if err != nil {
		return ItemView{}, Outcome{}, fatal(ctx, "item_detail", err)
	}
	return ItemView{Item: item, Reviews: reviews}, success(""), nil
}
