package domain

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
	"time"
)

type UserID uint

const (
	MaxUsernameLen = 20
	MinPasswordLen = 1
)

type User struct {
	ID           UserID `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

func ValidateCredentials(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLen {
		return fmt.Errorf("username must be 1-%d characters: %w", MaxUsernameLen, ErrValidation)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password required: %w", ErrValidation)
	}
	return nil
}

// Principal identifies who is acting. The zero value is an anonymous visitor.
type Principal struct {
	UserID   UserID
	Username string
}

func (p Principal) Authenticated() bool { return p.UserID != 0 }

func PrincipalOf(u User) Principal { return Principal{UserID: u.ID, Username: u.Username} }

type ItemState int

const (
	Unowned ItemState = iota
	InCart
	Owned
)

func (s ItemState) String() string {
	switch s {
	case InCart:
		return "in_cart"
	case Owned:
		return "owned"
	default:
		return "unowned"
	}
}

// Holdings are the two item sets a user has: the cart and the inventory.
// An item is never a member of both.
type Holdings struct {
	Cart      map[ItemID]struct{}
	Inventory map[ItemID]struct{}
}

func NewHoldings(cart, inventory []ItemID) *Holdings {
	h := &Holdings{
		Cart:      make(map[ItemID]struct{}, len(cart)),
		Inventory: make(map[ItemID]struct{}, len(inventory)),
	}
	for _, id := range cart {
		h.Cart[id] = struct{}{}
	}
	for _, id := range inventory {
		h.Inventory[id] = struct{}{}
	}
	return h
}

func (h *Holdings) State(id ItemID) ItemState {
	if _, ok := h.Inventory[id]; ok {
		return Owned
	}
	if _, ok := h.Cart[id]; ok {
		return InCart
	}
	return Unowned
}

func (h *Holdings) AddToCart(id ItemID) error {
	switch h.State(id) {
	case InCart:
		return ErrAlreadyInCart
	case Owned:
		return ErrAlreadyOwned
	}
	h.Cart[id] = struct{}{}
	return nil
}

func (h *Holdings) RemoveFromCart(id ItemID) error {
	if h.State(id) != InCart {
		return ErrNotInCart
	}
	delete(h.Cart, id)
	return nil
}

// Checkout moves every cart item into the inventory and returns the moved IDs
// in ascending order.
func (h *Holdings) Checkout() ([]ItemID, error) {
	if len(h.Cart) == 0 {
		return nil, ErrEmptyCart
	}
	moved := h.CartIDs()
	for _, id := range moved {
		h.Inventory[id] = struct{}{}
	}
	clear(h.Cart)
	return moved, nil
}

func (h *Holdings) Sell(id ItemID) error {
	if h.State(id) != Owned {
		return ErrNotOwned
	}
	delete(h.Inventory, id)
	return nil
}

func (h *Holdings) CartIDs() []ItemID { return sortedIDs(h.Cart) }

func (h *Holdings) InventoryIDs() []ItemID { return sortedIDs(h.Inventory) }

func (h *Holdings) Clone() *Holdings {
	return NewHoldings(h.CartIDs(), h.InventoryIDs())
}

func sortedIDs(set map[ItemID]struct{}) []ItemID {
	ids := make([]ItemID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type RefreshToken struct {
	JTI       string
	TokenHash string
	UserID    UserID
	ExpiresAt time.Time
	Revoked   bool
}
