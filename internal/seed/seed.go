package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/logging"
)

const maxCategoryName = 15

// Writer is what a store needs to accept a seed catalog.
type Writer interface {
	CountItems(ctx context.Context) (int64, error)
	EnsureCategory(ctx context.Context, name string) (domain.CategoryID, error)
	CreateItem(ctx context.Context, it *domain.Item) error
}

type Catalog struct {
	Categories []Category `yaml:"categories"`
}

type Category struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

type Item struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Picture     string `yaml:"picture"`
	// Price is written in pounds, e.g. "12.50".
	Price  string `yaml:"price"`
	Carbon int64  `yaml:"carbon"`
}

func Parse(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (c *Catalog) Validate() error {
	for _, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" || utf8.RuneCountInString(name) > maxCategoryName {
			return fmt.Errorf("category %q: name must be 1-%d characters: %w", cat.Name, maxCategoryName, domain.ErrValidation)
		}
		for _, it := range cat.Items {
			if strings.TrimSpace(it.Name) == "" {
				return fmt.Errorf("category %q: item without name: %w", name, domain.ErrValidation)
			}
			if _, err := ParsePrice(it.Price); err != nil {
				return fmt.Errorf("item %q: %w", it.Name, err)
			}
			if it.Carbon < 0 {
				return fmt.Errorf("item %q: negative carbon score: %w", it.Name, domain.ErrValidation)
			}
		}
	}
	return nil
}

// ParsePrice converts a pound amount with at most two decimals to pence.
func ParsePrice(s string) (domain.Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", s, domain.ErrValidation)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("price %q is negative: %w", s, domain.ErrValidation)
	}
	pence := d.Shift(2)
	if !pence.Equal(pence.Truncate(0)) {
		return 0, fmt.Errorf("price %q has more than two decimals: %w", s, domain.ErrValidation)
	}
	return domain.Money(pence.IntPart()), nil
}

// Apply writes the catalog into w unless w already lists items. It returns
// the number of items created.
func Apply(ctx context.Context, w Writer, c *Catalog) (int, error) {
	l := logging.FromContext(ctx).With("svc", "seed")

	n, err := w.CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	if n > 0 {
		l.Info("seed_skipped", "reason", "catalog not empty", "items", n)
		return 0, nil
	}

	created := 0
	for _, cat := range c.Categories {
		catID, err := w.EnsureCategory(ctx, cat.Name)
		if err != nil {
			return created, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		for _, it := range cat.Items {
			price, err := ParsePrice(it.Price)
			if err != nil {
				return created, err
			}
			item := domain.Item{
				Name:        strings.TrimSpace(it.Name),
				CategoryID:  catID,
				Description: it.Description,
				Picture:     it.Picture,
				Price:       price,
				Carbon:      domain.CarbonScore(it.Carbon),
			}
			if err := w.CreateItem(ctx, &item); err != nil {
				return created, fmt.Errorf("item %q: %w", it.Name, err)
			}
			created++
		}
	}
	l.Info("seed_applied", "items", created, "categories", len(c.Categories))
	return created, nil
}
