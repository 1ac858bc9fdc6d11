package domain

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	ItemID     uint
	CategoryID uint
)

// Money is an amount in the smallest currency unit (pence).
type Money int64

func (m Money) Add(o Money) Money { return m + o }

// String renders pence as pounds, e.g. 1250 -> "£12.50".
func (m Money) String() string {
	return "£" + decimal.New(int64(m), -2).StringFixed(2)
}

// CarbonScore is the environmental impact metric of an item; lower is better.
type CarbonScore int64

type Category struct {
	ID   CategoryID `json:"id"`
	Name string     `json:"name"`
}

type Item struct {
	ID           ItemID      `json:"id"`
	Name         string      `json:"name"`
	CategoryID   CategoryID  `json:"category_id"`
	CategoryName string      `json:"category,omitempty"`
	Description  string      `json:"description"`
	Picture      string      `json:"picture"`
	Price        Money       `json:"price"`
	Carbon       CarbonScore `json:"carbon"`
}

const DefaultPicture = "default.jpg"

type SortKey string

const (
	SortPriceDesc SortKey = "price_high"
	SortPriceAsc  SortKey = "price_low"
	SortCarbonAsc SortKey = "carbon"
)

// ParseSortKey maps a raw sort parameter to a SortKey. An empty value means
// the default price_high ordering; unknown values fall back to carbon.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.TrimSpace(s)) {
	case "", SortPriceDesc:
		return SortPriceDesc
	case SortPriceAsc:
		return SortPriceAsc
	default:
		return SortCarbonAsc
	}
}

type CatalogQuery struct {
	CategoryID CategoryID
	Search     string
	Sort       SortKey
}

func (q CatalogQuery) Normalize() CatalogQuery {
	q.Sort = ParseSortKey(string(q.Sort))
	return q
}

// Matches reports whether it passes the search and category filters.
func (q CatalogQuery) Matches(it Item) bool {
	if q.CategoryID != 0 && it.CategoryID != q.CategoryID {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(it.Name), needle) ||
		strings.Contains(strings.ToLower(it.Description), needle)
}

// Compare orders items by the query's sort key, ties broken by ascending ID.
func (q CatalogQuery) Compare(a, b Item) int {
	var c int
	switch ParseSortKey(string(q.Sort)) {
	case SortPriceAsc:
		c = cmp.Compare(a.Price, b.Price)
	case SortPriceDesc:
		c = cmp.Compare(b.Price, a.Price)
	default:
		c = cmp.Compare(a.Carbon, b.Carbon)
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Apply filters and sorts items without modifying the input slice.
func (q CatalogQuery) Apply(items []Item) ItemList {
	out := make(ItemList, 0, len(items))
	for _, it := range items {
		if q.Matches(it) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, q.Compare)
	return out
}

type ItemList []Item

// All yields the items in order. The sequence can be ranged over repeatedly.
func (l ItemList) All() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		for _, it := range l {
			if !yield(it) {
				return
			}
		}
	}
}

func (l ItemList) Total() Money {
	var total Money
	for _, it := range l {
		total = total.Add(it.Price)
	}
	return total
}

func (l ItemList) IDs() []ItemID {
	ids := make([]ItemID, len(l))
	for i, it := range l {
		ids[i] = it.ID
	}
	return ids
}
