package marketplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/events"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

const msgReviewLogin = "You must be logged in to review an item."

func (m *Marketplace) AddReview(ctx context.Context, p domain.Principal, req AddReviewRequest) (Outcome, error) {
	if !p.Authenticated() {
		return loginRequired(msgReviewLogin), nil
	}
	if err := req.Validate(); err != nil {
		if req.ItemID == 0 {
			return failure(err, msgNoItem), nil
		}
		return failure(err, reviewRules()), nil
	}

	r, item, err := m.Reviews.AddReview(ctx, service.NewReview{
		UserID: p.UserID,
		ItemID: req.ItemID,
		Rating: req.Rating,
		Title:  req.Title,
		Text:   req.Text,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrItemNotFound):
		return failure(err, msgNoItem), nil
	case errors.Is(err, domain.ErrValidation):
		return failure(err, reviewRules()), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return loginRequired(msgReviewLogin), nil
	default:
		return Outcome{}, fatal(ctx, "add_review", err)
	}

	ev := events.New(events.ReviewAdded, uint(p.UserID))
	ev.ItemID = uint(item.ID)
	ev.ReviewID = uint(r.ID)
	m.publish(ctx, events.TopicReviews, ev)

	return success(fmt.Sprintf("Your review has been added to %s", item.Name)), nil
}

func reviewRules() string {
	return fmt.Sprintf("Reviews need a rating from %d to %d, a title of at most %d characters and text of at most %d characters.",
		domain.MinRating, domain.MaxRating, domain.MaxTitleLen, domain.MaxReviewTextLen)
}

func (m *Marketplace) DeleteReview(ctx context.Context, p domain.Principal, req DeleteReviewRequest) (Outcome, error) {
	if !p.Authenticated() {
		return loginRequired(msgProfileLogin), nil
	}
	if err := req.Validate(); err != nil {
		return failure(err, "Could not find review."), nil
	}

	r, err := m.Reviews.DeleteReview(ctx, req.ReviewID, p.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrReviewNotFound):
		return failure(err, "Could not find review."), nil
	case errors.Is(err, domain.ErrNotAuthor):
		return failure(err, "You can only delete your own reviews."), nil
	default:
		return Outcome{}, fatal(ctx, "delete_review", err)
	}

	ev := events.New(events.ReviewDeleted, uint(p.UserID))
	ev.ItemID = uint(r.ItemID)
	ev.ReviewID = uint(r.ID)
	m.publish(ctx, events.TopicReviews, ev)

	return success("Review has been deleted."), nil
}
