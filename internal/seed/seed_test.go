package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/eco_shop/internal/domain"
	"github.com/Skotchmaster/eco_shop/internal/repo/memory"
)

const sample = `
categories:
  - name: home
    items:
      - name: Bamboo Toothbrush
        description: Compostable handle
        price: "3.00"
        carbon: 2
      - name: Beeswax Wraps
        description: Replace cling film
        picture: wraps.jpg
        price: "5"
        carbon: 1
  - name: travel
    items:
      - name: Steel Bottle
        description: Reusable bottle
        price: "15.50"
        carbon: 9
`

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Money
		wantErr bool
	}{
		{in: "12.50", want: 1250},
		{in: "5", want: 500},
		{in: "0.05", want: 5},
		{in: "1.234", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrValidation, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("categories:\n  - name: home\n    colour: green\n"))
	assert.Error(t, err)
}

func TestParse_RejectsLongCategory(t *testing.T) {
	_, err := Parse(strings.NewReader("categories:\n  - name: a-very-long-category-name\n"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApply_SeedsOnlyEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	c, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	s := memory.NewStore()
	n, err := Apply(ctx, s, c)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	items, err := s.Items(ctx, domain.CatalogQuery{Sort: domain.SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Bamboo Toothbrush", items[0].Name)
	assert.Equal(t, domain.DefaultPicture, items[0].Picture)
	assert.Equal(t, "wraps.jpg", items[1].Picture)
	assert.Equal(t, domain.Money(1550), items[2].Price)
	assert.Equal(t, "travel", items[2].CategoryName)

	n, err = Apply(ctx, s, c)
	require.NoError(t, err)
	assert.Zero(t, n)
}
