package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore map[string]Item

func (m memStore) GetItem(_ context.Context, id string) (*Item, error) {
	it, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func TestPrice(t *testing.T) {
	it := Item{SellingPrice: 50, CostPrice: 20, MarkupPercent: 100}

	tests := []struct {
		name   string
		item   Item
		mode   PricingMode
		markup float64
		want   float64
	}{
		{"selling", it, ModeSelling, 0, 50},
		{"cost", it, ModeCost, 0, 20},
		{"cost with explicit markup", it, ModeCostWithMarkup, 50, 30},
		{"cost with item markup", it, ModeCostWithMarkup, -1, 40},
		{"selling falls back to cost+markup", Item{CostPrice: 10, MarkupPercent: 30}, ModeSelling, 0, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Price(tc.item, tc.mode, tc.markup)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}

	_, err := Price(it, "retail", 0)
	assert.ErrorIs(t, err, ErrBadMode)
}

func TestResolver(t *testing.T) {
	r := NewResolver(memStore{
		"motor-1": {ID: "motor-1", SellingPrice: 320, CostPrice: 200, Active: true},
		"old":     {ID: "old", SellingPrice: 10, Active: false},
	})
	ctx := context.Background()

	p, err := r.ResolvePrice(ctx, "motor-1", ModeCostWithMarkup, 25)
	require.NoError(t, err)
	assert.InDelta(t, 250, p, 1e-9)

	_, err = r.ResolvePrice(ctx, "old", ModeSelling, 0)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = r.ResolvePrice(ctx, "missing", ModeSelling, 0)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
