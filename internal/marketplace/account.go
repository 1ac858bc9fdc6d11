package marketplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/events"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

const (
	msgAlreadyIn    = "You are already logged in."
	msgBadLogin     = "Invalid password or username."
	msgProfileLogin = "You must be logged in to view your profile."
)

// Login checks the credentials and starts a session.
func (m *Marketplace) Login(ctx context.Context, p domain.Principal, req LoginRequest) (*service.Session, Outcome, error) {
	if p.Authenticated() {
		return nil, failure(ErrAlreadyAuthenticated, msgAlreadyIn), nil
	}
	if err := req.Validate(); err != nil {
		return nil, failure(domain.ErrInvalidCredentials, msgBadLogin), nil
	}

	u, err := m.Accounts.VerifyCredentials(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, failure(err, msgBadLogin), nil
		}
		return nil, Outcome{}, fatal(ctx, "login", err)
	}

	sess, err := m.Tokens.Issue(ctx, u)
	if err != nil {
		return nil, Outcome{}, fatal(ctx, "login", err)
	}

	ev := events.New(events.UserLoggedIn, uint(u.ID))
	ev.Username = u.Username
	m.publish(ctx, events.TopicUsers, ev)

	return sess, success("You have been successfully logged in."), nil
}

func (m *Marketplace) Register(ctx context.Context, p domain.Principal, req RegisterRequest) (Outcome, error) {
	if p.Authenticated() {
		return failure(ErrAlreadyAuthenticated, msgAlreadyIn), nil
	}
	if err := req.Validate(); err != nil {
		if req.Password != req.PasswordConfirmation {
			return failure(err, "Passwords must match."), nil
		}
		return failure(err, fmt.Sprintf("Username must be 1-%d characters and password cannot be empty.", domain.MaxUsernameLen)), nil
	}

	u, err := m.Accounts.Register(ctx, req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrDuplicateUsername):
		return failure(err, "That username is already taken."), nil
	case errors.Is(err, domain.ErrValidation):
		return failure(err, fmt.Sprintf("Username must be 1-%d characters and password cannot be empty.", domain.MaxUsernameLen)), nil
	default:
		return Outcome{}, fatal(ctx, "register", err)
	}

	ev := events.New(events.UserRegistered, uint(u.ID))
	ev.Username = u.Username
	m.publish(ctx, events.TopicUsers, ev)

	return success("You have been successfully registered."), nil
}

// Logout revokes refreshToken. A visitor with neither a principal nor a
// refresh token is already logged out.
func (m *Marketplace) Logout(ctx context.Context, p domain.Principal, refreshToken string) (Outcome, error) {
	if !p.Authenticated() && refreshToken == "" {
		return failure(domain.ErrUnauthenticated, "You are already logged out."), nil
	}
	if err := m.Tokens.Revoke(ctx, refreshToken); err != nil {
		return Outcome{}, fatal(ctx, "logout", err)
	}

	if p.Authenticated() {
		ev := events.New(events.UserLoggedOut, uint(p.UserID))
		ev.Username = p.Username
		m.publish(ctx, events.TopicUsers, ev)
	}
	return success("You have been successfully logged out."), nil
}

func (m *Marketplace) Profile(ctx context.Context, p domain.Principal) (ProfileView, Outcome, error) {
	if !p.Authenticated() {
		return ProfileView{}, loginRequired(msgProfileLogin), nil
	}

	u, err := m.Accounts.User(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return ProfileView{}, loginRequired(msgProfileLogin), nil
		}
		return ProfileView{}, Outcome{}, fatal(ctx, "profile", err)
	}
	inv, err := m.Accounts.Inventory(ctx, p.UserID)
	if err != nil {
		return ProfileView{}, Outcome{}, fatal(ctx, "profile", err)
	}
	reviews, err := m.Reviews.UserReviews(ctx, p.UserID)
	if err != nil {
		return ProfileView{}, Outcome{}, fatal(ctx, "profile", err)
	}
	return ProfileView{User: u, Inventory: inv, Reviews: reviews}, success(""), nil
}

// Inventory returns the owned items only; used by the spreadsheet export.
func (m *Marketplace) Inventory(ctx context.Context, p domain.Principal) (domain.ItemList, Outcome, error) {
	if !p.Authenticated() {
		return nil, loginRequired(msgProfileLogin), nil
	}
	inv, err := m.Accounts.Inventory(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, loginRequired(msgProfileLogin), nil
		}
		return nil, Outcome{}, fatal(ctx, "inventory", err)
	}
	return inv, success(""), nil
}

func (m *Marketplace) Sell(ctx context.Context, p domain.Principal, req SellRequest) (Outcome, error) {
	if !p.Authenticated() {
		return loginRequired(msgProfileLogin), nil
	}
	if err := req.Validate(); err != nil {
		return failure(err, msgNoItem), nil
	}

	item, err := m.Accounts.Sell(ctx, p.UserID, req.ItemID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotOwned):
		return failure(err, "You do not own that item."), nil
	case errors.Is(err, domain.ErrUserNotFound):
		return loginRequired(msgProfileLogin), nil
	default:
		return Outcome{}, fatal(ctx, "sell", err)
	}

	ev := events.New(events.ItemSold, uint(p.UserID))
	ev.ItemID = uint(item.ID)
	ev.Price = int64(item.Price)
	m.publish(ctx, events.TopicCart, ev)

	return success(fmt.Sprintf("You have sold %s for %s.", item.Name, item.Price)), nil
}
