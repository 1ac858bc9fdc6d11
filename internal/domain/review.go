package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
	"time"
)

type ReviewID uint

const (
	MinRating        = 1
	MaxRating        = 5
	MaxTitleLen      = 100
	MaxReviewTextLen = 1000
)

type Review struct {
	ID        ReviewID  `json:"id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	UserID    UserID    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	ItemID    ItemID    `json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (r Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d: %w", MinRating, MaxRating, ErrValidation)
	}
	if t := strings.TrimSpace(r.Title); t == "" || utf8.RuneCountInString(t) > MaxTitleLen {
		return fmt.Errorf("title must be 1-%d characters: %w", MaxTitleLen, ErrValidation)
	}
	if t := strings.TrimSpace(r.Text); t == "" || utf8.RuneCountInString(t) > MaxReviewTextLen {
		return fmt.Errorf("text must be 1-%d characters: %w", MaxReviewTextLen, ErrValidation)
	}
	return nil
}
