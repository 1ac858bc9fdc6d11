package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	TopicUsers   = "user_events"
	TopicCart    = "cart_events"
	TopicReviews = "review_events"
)

const (
	UserRegistered  = "user_registered"
	UserLoggedIn    = "user_logged_in"
	UserLoggedOut   = "user_logged_out"
	CartItemAdded   = "cart_item_added"
	CartItemRemoved = "cart_item_removed"
	CheckedOut      = "checked_out"
	ItemSold        = "item_sold"
	ReviewAdded     = "review_added"
	ReviewDeleted   = "review_deleted"
)

func Topics() []string { return []string{TopicUsers, TopicCart, TopicReviews} }

type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	UserID   uint      `json:"userID"`
	Username string    `json:"username,omitempty"`
	ItemID   uint      `json:"itemID,omitempty"`
	ItemIDs  []uint    `json:"itemIDs,omitempty"`
	ReviewID uint      `json:"reviewID,omitempty"`
	Price    int64     `json:"price,omitempty"`
	At       time.Time `json:"at"`
}

func New(typ string, userID uint) Event {
	return Event{ID: uuid.NewString(), Type: typ, UserID: userID, At: time.Now().UTC()}
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// Nop drops every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) PublishEvent(context.Context, string, string, any) error { return nil }

type Published struct {
	Topic string
	Key   string
	Event any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Published
	Err    error
}

func (r *Recorder) PublishEvent(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, Published{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, p := range r.Events {
		if ev, ok := p.Event.(Event); ok {
			out = append(out, ev.Type)
		}
	}
	return out
}
