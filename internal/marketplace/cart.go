package marketplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/events"
)

const (
	msgCartLogin     = "You must be logged in to access your cart."
	msgAddLogin      = "You must be logged in to add an item to your cart."
	msgCheckoutLogin = "You must be logged in to checkout."
	msgNoItem        = "Could not find item."
)

func (m *Marketplace) AddToCart(ctx context.Context, p domain.Principal, req AddToCartRequest) (Outcome, error) {
	if !p.Authenticated() {
		return loginRequired(msgAddLogin), nil
	}
	if err := req.Validate(); err != nil {
		return failure(err, msgNoItem), nil
	}

	item, err := m.Accounts.AddToCart(ctx, p.UserID, req.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrItemNotFound):
		return failure(err, msgNoItem), nil
	case errors.Is(err, domain.ErrAlreadyInCart):
		return failure(err, fmt.Sprintf("%s is already in your cart.", item.Name)), nil
	case errors.Is(err, domain.ErrAlreadyOwned):
		return failure(err, fmt.Sprintf("You already own %s.", item.Name)), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return loginRequired(msgAddLogin), nil
	default:
		return Outcome{}, fatal(ctx, "add_to_cart", err)
	}

	ev := events.New(events.CartItemAdded, uint(p.UserID))
	ev.ItemID = uint(item.ID)
	ev.Price = int64(item.Price)
	m.publish(ctx, events.TopicCart, ev)

	return success(fmt.Sprintf("%s has been added to your cart.", item.Name)), nil
}

func (m *Marketplace) RemoveFromCart(ctx context.Context, p domain.Principal, req RemoveFromCartRequest) (Outcome, error) {
	if !p.Authenticated() {
		return loginRequired(msgCartLogin), nil
	}
	if err := req.Validate(); err != nil {
		return failure(err, msgNoItem), nil
	}

	item, err := m.Accounts.RemoveFromCart(ctx, p.UserID, req.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrItemNotFound):
		return failure(err, msgNoItem), nil
	case errors.Is(err, domain.ErrNotInCart):
		return failure(err, fmt.Sprintf("%s is not in your cart.", item.Name)), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return loginRequired(msgCartLogin), nil
	default:
		return Outcome{}, fatal(ctx, "remove_from_cart", err)
	}

	ev := events.New(events.CartItemRemoved, uint(p.UserID))
	ev.ItemID = uint(item.ID)
	m.publish(ctx, events.TopicCart, ev)

	return success(fmt.Sprintf("%s has been removed from your cart.", item.Name)), nil
}

func (m *Marketplace) Cart(ctx context.Context, p domain.Principal) (CartView, Outcome, error) {
	if !p.Authenticated() {
		return CartView{}, loginRequired(msgCartLogin), nil
	}
	items, err := m.Accounts.Cart(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return CartView{}, loginRequired(msgCartLogin), nil
		}
		return CartView{}, Outcome{}, fatal(ctx, "cart", err)
	}
	return CartView{Items: items, Total: items.Total()}, success(""), nil
}

// CheckoutPreview lists what a confirmed checkout would move into the inventory.
func (m *Marketplace) CheckoutPreview(ctx context.Context, p domain.Principal) (CheckoutView, Outcome, error) {
	if !p.Authenticated() {
		return CheckoutView{}, loginRequired(msgCheckoutLogin), nil
	}
	items, err := m.Accounts.Cart(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return CheckoutView{}, loginRequired(msgCheckoutLogin), nil
		}
		return CheckoutView{}, Outcome{}, fatal(ctx, "checkout_preview", err)
	}
	if len(items) == 0 {
		return CheckoutView{}, failure(domain.ErrEmptyCart, "You dont have anything in your cart to checkout."), nil
	}
	return CheckoutView{Items: items, Total: items.Total()}, success(""), nil
}

func (m *Marketplace) Checkout(ctx context.Context, p domain.Principal, req CheckoutRequest) (CheckoutView, Outcome, error) {
	if !p.Authenticated() {
		return CheckoutView{}, loginRequired(msgCheckoutLogin), nil
	}
	if err := req.Validate(); err != nil {
		return CheckoutView{}, failure(err, "Please confirm your checkout."), nil
	}

	moved, err := m.Accounts.Checkout(ctx, p.UserID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrEmptyCart):
		return CheckoutView{}, failure(err, "You dont have anything in your cart to checkout."), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return CheckoutView{}, loginRequired(msgCheckoutLogin), nil
	default:
		return CheckoutView{}, Outcome{}, fatal(ctx, "checkout", err)
	}

	ev := events.New(events.CheckedOut, uint(p.UserID))
	for _, id := range moved.IDs() {
		ev.ItemIDs = append(ev.ItemIDs, uint(id))
	}
	ev.Price = int64(moved.Total())
	m.publish(ctx, events.TopicCart, ev)

	return CheckoutView{Items: moved, Total: moved.Total()}, success("Checkout successful."), nil
}
