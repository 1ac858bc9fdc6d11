package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/service"
)

// Store keeps the whole marketplace in process memory. All mutations run
// under one mutex, so Atomic blocks are serialized.
type Store struct {
	mu sync.RWMutex

	categories     map[domain.CategoryID]domain.Category
	categoryByName map[string]domain.CategoryID
	items          map[domain.ItemID]domain.Item
	users          map[domain.UserID]domain.User
	userByName     map[string]domain.UserID
	holdings       map[domain.UserID]*domain.Holdings
	reviews        map[domain.ReviewID]domain.Review
	refresh        map[string]domain.RefreshToken

	nextCategory domain.CategoryID
	nextItem     domain.ItemID
	nextUser     domain.UserID
	nextReview   domain.ReviewID

	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		categories:     make(map[domain.CategoryID]domain.Category),
		categoryByName: make(map[string]domain.CategoryID),
		items:          make(map[domain.ItemID]domain.Item),
		users:          make(map[domain.UserID]domain.User),
		userByName:     make(map[string]domain.UserID),
		holdings:       make(map[domain.UserID]*domain.Holdings),
		reviews:        make(map[domain.ReviewID]domain.Review),
		refresh:        make(map[string]domain.RefreshToken),
		Now:            func() time.Time { return time.Now().UTC() },
	}
}

// catalog

func (s *Store) CountItems(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

func (s *Store) EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if id, ok := s.categoryByName[name]; ok {
		return id, nil
	}
	s.nextCategory++
	s.categories[s.nextCategory] = domain.Category{ID: s.nextCategory, Name: name}
	s.categoryByName[name] = s.nextCategory
	return s.nextCategory, nil
}

func (s *Store) CreateItem(ctx context.Context, it *domain.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[it.CategoryID]; !ok {
		return domain.ErrValidation
	}
	if it.Picture == "" {
		it.Picture = domain.DefaultPicture
	}
	s.nextItem++
	it.ID = s.nextItem
	s.items[it.ID] = *it
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Category) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (s *Store) Items(ctx context.Context, q domain.CatalogQuery) (domain.ItemList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		all = append(all, s.withCategory(it))
	}
	return q.Apply(all), nil
}

func (s *Store) ItemByID(ctx context.Context, id domain.ItemID) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return domain.Item{}, domain.ErrItemNotFound
	}
	return s.withCategory(it), nil
}

func (s *Store) ItemsByID(ctx context.Context, ids []domain.ItemID) (domain.ItemList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(domain.ItemList, 0, len(ids))
	for _, id := range ids {
		if it, ok := s.items[id]; ok {
			out = append(out, s.withCategory(it))
		}
	}
	slices.SortFunc(out, func(a, b domain.Item) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (s *Store) withCategory(it domain.Item) domain.Item {
	it.CategoryName = s.categories[it.CategoryID].Name
	return it
}

// users

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.userByName[u.Username]; taken {
		return domain.ErrDuplicateUsername
	}
	s.nextUser++
	u.ID = s.nextUser
	s.users[u.ID] = *u
	s.userByName[u.Username] = u.ID
	s.holdings[u.ID] = domain.NewHoldings(nil, nil)
	return nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.userByName[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// holdings

func (s *Store) Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holdingsOf(userID)
}

func (s *Store) holdingsOf(userID domain.UserID) (*domain.Holdings, error) {
	h, ok := s.holdings[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return h.Clone(), nil
}

func (s *Store) Atomic(ctx context.Context, fn func(tx service.HoldingsTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[domain.UserID]*domain.Holdings, len(s.holdings))
	for id, h := range s.holdings {
		snapshot[id] = h.Clone()
	}

	if err := fn(&tx{s: s}); err != nil {
		s.holdings = snapshot
		return err
	}
	return nil
}

// tx runs with Store.mu already held for writing.
type tx struct{ s *Store }

func (t *tx) Holdings(ctx context.Context, userID domain.UserID) (*domain.Holdings, error) {
	return t.s.holdingsOf(userID)
}

func (t *tx) live(userID domain.UserID) (*domain.Holdings, error) {
	h, ok := t.s.holdings[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return h, nil
}

func (t *tx) AddCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	h, err := t.live(userID)
	if err != nil {
		return err
	}
	if _, ok := h.Cart[itemID]; ok {
		return domain.ErrAlreadyInCart
	}
	h.Cart[itemID] = struct{}{}
	return nil
}

func (t *tx) RemoveCartItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	h, err := t.live(userID)
	if err != nil {
		return err
	}
	if _, ok := h.Cart[itemID]; !ok {
		return domain.ErrNotInCart
	}
	delete(h.Cart, itemID)
	return nil
}

func (t *tx) ClearCart(ctx context.Context, userID domain.UserID) error {
	h, err := t.live(userID)
	if err != nil {
		return err
	}
	clear(h.Cart)
	return nil
}

func (t *tx) AddInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	h, err := t.live(userID)
	if err != nil {
		return err
	}
	if _, ok := h.Inventory[itemID]; ok {
		return domain.ErrAlreadyOwned
	}
	h.Inventory[itemID] = struct{}{}
	return nil
}

func (t *tx) RemoveInventoryItem(ctx context.Context, userID domain.UserID, itemID domain.ItemID) error {
	h, err := t.live(userID)
	if err != nil {
		return err
	}
	if _, ok := h.Inventory[itemID]; !ok {
		return domain.ErrNotOwned
	}
	delete(h.Inventory, itemID)
	return nil
}

// reviews

func (s *Store) CreateReview(ctx context.Context, r *domain.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[r.ItemID]; !ok {
		return domain.ErrItemNotFound
	}
	u, ok := s.users[r.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}
	s.nextReview++
	r.ID = s.nextReview
	r.Username = u.Username
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.Now()
	}
	s.reviews[r.ID] = *r
	return nil
}

func (s *Store) ReviewByID(ctx context.Context, id domain.ReviewID) (domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	return r, nil
}

func (s *Store) DeleteReview(ctx context.Context, id domain.ReviewID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(s.reviews, id)
	return nil
}

func (s *Store) ReviewsByItem(ctx context.Context, itemID domain.ItemID) ([]domain.Review, error) {
	return s.filterReviews(func(r domain.Review) bool { return r.ItemID == itemID }), nil
}

func (s *Store) ReviewsByUser(ctx context.Context, userID domain.UserID) ([]domain.Review, error) {
	return s.filterReviews(func(r domain.Review) bool { return r.UserID == userID }), nil
}

func (s *Store) filterReviews(keep func(domain.Review) bool) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Review, 0)
	for _, r := range s.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b domain.Review) int { return int(a.ID) - int(b.ID) })
	return out
}

// refresh tokens

func (s *Store) SaveRefresh(ctx context.Context, t domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[t.JTI] = t
	return nil
}

func (s *Store) RefreshByJTI(ctx context.Context, jti string) (domain.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.refresh[jti]
	if !ok {
		return domain.RefreshToken{}, domain.ErrInvalidRefreshToken
	}
	return t, nil
}

func (s *Store) RotateRefresh(ctx context.Context, oldJTI string, next domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.refresh[oldJTI]
	if !ok || old.Revoked || s.Now().After(old.ExpiresAt) {
		return domain.ErrInvalidRefreshToken
	}
	old.Revoked = true
	s.refresh[oldJTI] = old
	s.refresh[next.JTI] = next
	return nil
}

func (s *Store) RevokeRefresh(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for jti, t := range s.refresh {
		if t.TokenHash == tokenHash {
			t.Revoked = true
			s.refresh[jti] = t
		}
	}
	return nil
}

var _ service.Store = (*Store)(nil)
