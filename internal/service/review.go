package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

type ReviewService struct {
	Repo    ReviewRepo
	Catalog CatalogRepo
}

type NewReview struct {
	UserID domain.UserID
	ItemID domain.ItemID
	Rating int
	Title  string
	Text   string
}

// AddReview has no ownership precondition: anyone logged in may review any item.
func (s *ReviewService) AddReview(ctx context.Context, in NewReview) (domain.Review, domain.Item, error) {
	item, err := s.Catalog.ItemByID(ctx, in.ItemID)
	if err != nil {
		return domain.Review{}, domain.Item{}, err
	}

	r := domain.Review{
		Rating: in.Rating,
		Title:  strings.TrimSpace(in.Title),
		Text:   strings.TrimSpace(in.Text),
		UserID: in.UserID,
		ItemID: in.ItemID,
	}
	if err := r.Validate(); err != nil {
		return domain.Review{}, item, err
	}
	if err := s.Repo.CreateReview(ctx, &r); err != nil {
		return domain.Review{}, item, err
	}
	return r, item, nil
}

// DeleteReview removes a review written by requester.
func (s *ReviewService) DeleteReview(ctx context.Context, id domain.ReviewID, requester domain.UserID) (domain.Review, error) {
	r, err := s.Repo.ReviewByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if r.UserID != requester {
		return domain.Review{}, domain.ErrNotAuthor
	}
	if err := s.Repo.DeleteReview(ctx, id); err != nil {
		return domain.Review{}, err
	}
	return r, nil
}

func (s *ReviewService) ItemReviews(ctx context.Context, itemID domain.ItemID) ([]domain.Review, error) {
	return s.Repo.ReviewsByItem(ctx, itemID)
}

func (s *ReviewService) UserReviews(ctx context.Context, userID domain.UserID) ([]domain.Review, error) {
	return s.Repo.ReviewsByUser(ctx, userID)
}
