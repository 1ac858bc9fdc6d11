package marketplace

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/eco_shop/internal/domain"
)

const maxSearchLen = 100

type BrowseRequest struct {
	CategoryID domain.CategoryID
	Search     string
	Sort       string
}

func (r BrowseRequest) Validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(r.Search)) > maxSearchLen {
		return fmt.Errorf("search must be at most %d characters: %w", maxSearchLen, domain.ErrValidation)
	}
	return nil
}

func (r BrowseRequest) Query() domain.CatalogQuery {
	return domain.CatalogQuery{
		CategoryID: r.CategoryID,
		Search:     r.Search,
		Sort:       domain.ParseSortKey(r.Sort),
	}.Normalize()
}

func requireItem(id domain.ItemID) error {
	if id == 0 {
		return fmt.Errorf("item id required: %w", domain.ErrValidation)
	}
	return nil
}

type AddToCartRequest struct {
	ItemID domain.ItemID
}

func (r AddToCartRequest) Validate() error { return requireItem(r.ItemID) }

type RemoveFromCartRequest struct {
	ItemID domain.ItemID
}

func (r RemoveFromCartRequest) Validate() error { return requireItem(r.ItemID) }

type CheckoutRequest struct {
	Confirm bool
}

func (r CheckoutRequest) Validate() error {
	if !r.Confirm {
		return fmt.Errorf("checkout not confirmed: %w", domain.ErrValidation)
	}
	return nil
}

type SellRequest struct {
	ItemID domain.ItemID
}

func (r SellRequest) Validate() error { return requireItem(r.ItemID) }

type AddReviewRequest struct {
	ItemID domain.ItemID
	Rating int
	Title  string
	Text   string
}

func (r AddReviewRequest) Validate() error {
	if err := requireItem(r.ItemID); err != nil {
		return err
	}
	return domain.Review{Rating: r.Rating, Title: r.Title, Text: r.Text}.Validate()
}

type DeleteReviewRequest struct {
	ReviewID domain.ReviewID
}

func (r DeleteReviewRequest) Validate() error {
	if r.ReviewID == 0 {
		return fmt.Errorf("review id required: %w", domain.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Username string
	Password string
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return fmt.Errorf("username and password required: %w", domain.ErrValidation)
	}
	return nil
}

type RegisterRequest struct {
	Username             string
	Password             string
	PasswordConfirmation string
}

func (r RegisterRequest) Validate() error {
	if err := domain.ValidateCredentials(r.Username, r.Password); err != nil {
		return err
	}
	if r.Password != r.PasswordConfirmation {
		return fmt.Errorf("passwords do not match: %w", domain.ErrValidation)
	}
	return nil
}
