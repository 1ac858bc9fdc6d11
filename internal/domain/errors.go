package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

var (
	ErrValidation     = errors.New("validation")
	ErrItemNotFound   = errors.New("item not found")
	ErrAlreadyInCart  = errors.New("item already in cart")
	ErrAlreadyOwned   = errors.New("item already owned")
	ErrNotInCart      = errors.New("item not in cart")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotOwned       = errors.New("item not owned")
	ErrReviewNotFound = errors.New("review not found")
	ErrNotAuthor      = errors.New("review belongs to another user")
	ErrUserNotFound   = errors.New("user not found")
)

var authErrors = []error{ErrInvalidCredentials, ErrDuplicateUsername, ErrUnauthenticated, ErrInvalidRefreshToken}

var domainErrors = []error{
	ErrValidation, ErrItemNotFound, ErrAlreadyInCart, ErrAlreadyOwned, ErrNotInCart,
	ErrEmptyCart, ErrNotOwned, ErrReviewNotFound, ErrNotAuthor, ErrUserNotFound,
}

func IsAuthError(err error) bool { return isOneOf(err, authErrors) }

func IsDomainError(err error) bool { return isOneOf(err, domainErrors) }

// IsExpected reports whether err is a user-facing condition rather than a fatal failure.
func IsExpected(err error) bool { return IsAuthError(err) || IsDomainError(err) }

func isOneOf(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
