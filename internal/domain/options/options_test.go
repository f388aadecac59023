package options

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
)

type fakePricer struct {
	prices map[string]float64
	calls  []inventory.PricingMode
}

func (f *fakePricer) ResolvePrice(_ context.Context, id string, mode inventory.PricingMode, markup float64) (float64, error) {
	f.calls = append(f.calls, mode)
	p, ok := f.prices[id]
	if !ok {
		return 0, inventory.ErrItemNotFound
	}
	if mode == inventory.ModeCostWithMarkup {
		p *= 1 + markup/100
	}
	return p, nil
}

func curtainTree() []Node {
	motorGrid := grid.New(grid.TypeWidth, []grid.Tier{{Width: 200, Price: 150}, {Width: 400, Price: 260}})
	return []Node{
		{
			ID: "lining", Key: "lining", Label: "Lining", Method: MethodFixed,
			Children: []Node{
				{ID: "lining-blackout", Key: "lining_type", Label: "Blackout", Method: MethodPerLinear, BasePrice: 12},
				{ID: "lining-thermal", Key: "lining_type", Label: "Thermal", Method: MethodPerArea, BasePrice: 20},
			},
		},
		{
			ID: "hardware", Key: "hardware", Label: "Hardware", Method: MethodFixed,
			Children: []Node{
				{
					ID: "track", Key: "track", Label: "Track", Method: MethodFixed, BasePrice: 45,
					Children: []Node{
						{
							ID: "track-motor", Key: "motor", Label: "Motor", Method: MethodGrid, Grid: &motorGrid,
							Children: []Node{
								{ID: "remote", Key: "remote", Label: "Remote", Method: MethodFixed, BasePrice: 999, InventoryRef: "inv-remote"},
							},
						},
					},
				},
				{ID: "brackets", Key: "brackets", Label: "Brackets", Method: MethodPerPanel, BasePrice: 4},
			},
		},
		{ID: "rush", Key: "rush", Label: "Rush order", Method: MethodPercentage, BasePrice: 10},
		{ID: "eyelet-rings", Key: "rings", Label: "Eyelet rings", Method: MethodPerPanel, BasePrice: 6, Headings: []string{"Eyelet"}},
	}
}

func ctxFor() Context {
	return Context{Width: 150, Drop: 220, PanelCount: 3, Heading: "pinch_pleat", BaseAmount: 336.6}
}

func TestAggregate_AllMethods(t *testing.T) {
	pricer := &fakePricer{prices: map[string]float64{"inv-remote": 35}}
	agg := NewAggregator(pricer)

	sel := NewSelection("lining-blackout", "track", "track-motor", "remote", "brackets", "rush")
	cost, err := agg.Aggregate(context.Background(), curtainTree(), sel, ctxFor())
	require.NoError(t, err)

	// 12×1.5 + 45 + 150 + 35 + 4×3
	wantSub := 18.0 + 45 + 150 + 35 + 12
	assert.InDelta(t, wantSub, cost.Subtotal, 1e-9)
	assert.InDelta(t, (336.6+wantSub)*0.10, cost.PercentageDelta, 1e-9)
	assert.InDelta(t, cost.Subtotal+cost.PercentageDelta, cost.Total, 1e-9)
	assert.Len(t, cost.Lines, 6)

	// процент всегда в конце
	assert.Equal(t, MethodPercentage, cost.Lines[len(cost.Lines)-1].Method)
}

func TestAggregate_InventoryOverridesLiteralPrice(t *testing.T) {
	pricer := &fakePricer{prices: map[string]float64{"inv-remote": 35}}
	agg := NewAggregator(pricer)

	c := ctxFor()
	c.InventoryMode = inventory.ModeCostWithMarkup
	c.InventoryMarkup = 20

	cost, err := agg.Aggregate(context.Background(), curtainTree(), NewSelection("remote"), c)
	require.NoError(t, err)
	require.Len(t, cost.Lines, 1)
	assert.True(t, cost.Lines[0].Inventory)
	assert.InDelta(t, 42, cost.Total, 1e-9, "basePrice 999 must be ignored")
	assert.Equal(t, []inventory.PricingMode{inventory.ModeCostWithMarkup}, pricer.calls)
}

func TestAggregate_InventoryDefaultsToSelling(t *testing.T) {
	pricer := &fakePricer{prices: map[string]float64{"inv-remote": 35}}
	_, err := NewAggregator(pricer).Aggregate(context.Background(), curtainTree(), NewSelection("remote"), ctxFor())
	require.NoError(t, err)
	assert.Equal(t, []inventory.PricingMode{inventory.ModeSelling}, pricer.calls)
}

func TestAggregate_InventoryErrors(t *testing.T) {
	_, err := NewAggregator(nil).Aggregate(context.Background(), curtainTree(), NewSelection("remote"), ctxFor())
	assert.ErrorIs(t, err, ErrNoInventoryPricer)

	_, err = NewAggregator(&fakePricer{}).Aggregate(context.Background(), curtainTree(), NewSelection("remote"), ctxFor())
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
}

func TestAggregate_HeadingFilterExcludesStaleSelections(t *testing.T) {
	agg := NewAggregator(nil)

	cost, err := agg.Aggregate(context.Background(), curtainTree(), NewSelection("eyelet-rings", "brackets"), ctxFor())
	require.NoError(t, err)
	assert.InDelta(t, 12, cost.Total, 1e-9)
	assert.Equal(t, []string{"eyelet-rings"}, cost.Excluded)

	c := ctxFor()
	c.Heading = "eyelet"
	cost, err = agg.Aggregate(context.Background(), curtainTree(), NewSelection("eyelet-rings", "brackets"), c)
	require.NoError(t, err)
	assert.InDelta(t, 12+18, cost.Total, 1e-9)
	assert.Empty(t, cost.Excluded)
}

func TestAggregate_HeadingFilterCoversSubtree(t *testing.T) {
	tree := []Node{{
		ID: "wave", Key: "wave", Method: MethodFixed, BasePrice: 10, Headings: []string{"wave"},
		Children: []Node{{ID: "wave-tape", Key: "wave_tape", Method: MethodFixed, BasePrice: 5}},
	}}
	cost, err := NewAggregator(nil).Aggregate(context.Background(), tree, NewSelection("wave", "wave-tape"), ctxFor())
	require.NoError(t, err)
	assert.Zero(t, cost.Total)
	assert.ElementsMatch(t, []string{"wave", "wave-tape"}, cost.Excluded)
}

func TestAggregate_DeduplicatesByNormalizedKey(t *testing.T) {
	tree := []Node{
		{ID: "a", Key: "control_type", Method: MethodFixed, BasePrice: 30},
		{ID: "grp", Key: "group", Method: MethodFixed, Children: []Node{
			{ID: "b", Key: "Control_Type_a1b2c3d4", Method: MethodFixed, BasePrice: 30},
		}},
	}
	cost, err := NewAggregator(nil).Aggregate(context.Background(), tree, NewSelection("a", "b"), ctxFor())
	require.NoError(t, err)
	assert.InDelta(t, 30, cost.Total, 1e-9)
	assert.Equal(t, []string{"b"}, cost.Duplicates)
}

func TestAggregate_KeylessNodesAreDistinct(t *testing.T) {
	tree := []Node{
		{ID: "trim-0000a001", Method: MethodFixed, BasePrice: 30},
		{ID: "trim-0000a002", Method: MethodFixed, BasePrice: 50},
	}
	cost, err := NewAggregator(nil).Aggregate(context.Background(), tree, NewSelection("trim-0000a001", "trim-0000a002"), ctxFor())
	require.NoError(t, err)
	assert.InDelta(t, 80, cost.Total, 1e-9)
	assert.Empty(t, cost.Duplicates)
	assert.Len(t, cost.Lines, 2)
}

func TestAggregate_UnselectedParentStillVisitsChildren(t *testing.T) {
	cost, err := NewAggregator(nil).Aggregate(context.Background(), curtainTree(), NewSelection("brackets"), ctxFor())
	require.NoError(t, err)
	assert.InDelta(t, 12, cost.Total, 1e-9)
}

func TestAggregate_UnboundedDepth(t *testing.T) {
	var leaf Node
	const depth = 40
	for i := depth; i >= 0; i-- {
		n := Node{ID: fmt.Sprintf("n%d", i), Key: fmt.Sprintf("k%d", i), Method: MethodFixed, BasePrice: 1}
		if i < depth {
			n.Children = []Node{leaf}
		}
		leaf = n
	}
	sel := NewSelection("n0", "n20", "n40")
	cost, err := NewAggregator(nil).Aggregate(context.Background(), []Node{leaf}, sel, ctxFor())
	require.NoError(t, err)
	assert.InDelta(t, 3, cost.Total, 1e-9)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	tree := curtainTree()
	sel := NewSelection("lining-thermal", "track", "brackets", "rush")
	want, err := NewAggregator(nil).Aggregate(context.Background(), tree, sel, ctxFor())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]Node(nil), tree...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := NewAggregator(nil).Aggregate(context.Background(), shuffled, sel, ctxFor())
		require.NoError(t, err)
		assert.InDelta(t, want.Subtotal, got.Subtotal, 1e-9)
		assert.InDelta(t, want.PercentageDelta, got.PercentageDelta, 1e-9)
	}
}

func TestAggregate_NegativePercentageAllowed(t *testing.T) {
	tree := []Node{
		{ID: "x", Key: "x", Method: MethodFixed, BasePrice: 100},
		{ID: "promo", Key: "promo", Method: MethodPercentage, BasePrice: -10},
	}
	c := Context{BaseAmount: 100}
	cost, err := NewAggregator(nil).Aggregate(context.Background(), tree, NewSelection("x", "promo"), c)
	require.NoError(t, err)
	assert.InDelta(t, -20, cost.PercentageDelta, 1e-9)
	assert.InDelta(t, 80, cost.Total, 1e-9)
}

func TestAggregate_GridOutOfRange(t *testing.T) {
	c := ctxFor()
	c.Width = 500
	_, err := NewAggregator(nil).Aggregate(context.Background(), curtainTree(), NewSelection("track-motor"), c)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)

	tree := []Node{{ID: "g", Method: MethodGrid}}
	_, err = NewAggregator(nil).Aggregate(context.Background(), tree, NewSelection("g"), c)
	assert.True(t, errors.Is(err, ErrNodeConfig))
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{
		"fixed":           MethodFixed,
		"per-linear-unit": MethodPerLinear,
		"PER_METER":       MethodPerLinear,
		"per area unit":   MethodPerArea,
		"per-panel":       MethodPerPanel,
		"percentage":      MethodPercentage,
		"grid":            MethodGrid,
	} {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMethod("formula")
	assert.Error(t, err)
}

func TestBuildTree(t *testing.T) {
	rows := []FlatNode{
		{Node: Node{ID: "extra"}, ParentID: "sub", SortOrder: 1},
		{Node: Node{ID: "cat"}, SortOrder: 2},
		{Node: Node{ID: "sub"}, ParentID: "cat"},
		{Node: Node{ID: "first"}, SortOrder: 1},
		{Node: Node{ID: "subsub"}, ParentID: "sub", SortOrder: 0},
	}
	tree, err := BuildTree(rows)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "first", tree[0].ID)
	assert.Equal(t, "cat", tree[1].ID)
	require.Len(t, tree[1].Children, 1)
	sub := tree[1].Children[0]
	require.Len(t, sub.Children, 2)
	assert.Equal(t, "subsub", sub.Children[0].ID)
	assert.Equal(t, "extra", sub.Children[1].ID)
}

func TestBuildTree_BadData(t *testing.T) {
	_, err := BuildTree([]FlatNode{{Node: Node{ID: "a"}, ParentID: "ghost"}})
	assert.ErrorIs(t, err, ErrNodeConfig)

	_, err = BuildTree([]FlatNode{
		{Node: Node{ID: "a"}, ParentID: "b"},
		{Node: Node{ID: "b"}, ParentID: "a"},
	})
	assert.ErrorIs(t, err, ErrNodeConfig)

	_, err = BuildTree([]FlatNode{{Node: Node{ID: "a"}}, {Node: Node{ID: "a"}}})
	assert.ErrorIs(t, err, ErrNodeConfig)
}

func TestStripInstanceSuffix(t *testing.T) {
	assert.Equal(t, "control_type", StripInstanceSuffix("control_type_a1b2c3d4"))
	assert.Equal(t, "control_type", StripInstanceSuffix("control_type"))
	assert.Equal(t, "fabric_colour", StripInstanceSuffix("fabric_colour-DEADBEEF"))
	assert.Equal(t, "width_1234567", StripInstanceSuffix("width_1234567"), "7 chars is not an instance id")
	assert.Equal(t, "control_type", NormalizeKey(" Control_Type_a1b2c3d4 "))
}

func TestNode_JSONAcceptsMethodAliases(t *testing.T) {
	var n Node
	err := json.Unmarshal([]byte(`{"id":"a","pricing_method":"per-metre","base_price":5,"children":[{"id":"b","pricing_method":"PERCENT"}]}`), &n)
	require.NoError(t, err)
	assert.Equal(t, MethodPerLinear, n.Method)
	assert.Equal(t, MethodPercentage, n.Children[0].Method)

	assert.Error(t, json.Unmarshal([]byte(`{"pricing_method":"formula"}`), &n))
}
