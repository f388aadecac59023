package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/quote"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

const curtainRequest = `{
  "template": {"family": "fabric", "heading": "pinch_pleat", "fullness_ratio": 2,
               "header_allowance": 20, "bottom_hem": 15, "waste_percent": 10},
  "material": {"id": 7, "roll_width": 137, "price_per_linear_unit": 40},
  "width": "150",
  "drop": 220,
  "options": [
    {"id": "lining", "key": "lining", "pricing_method": "per-linear-unit", "base_price": 12},
    {"id": "motor", "key": "motor", "pricing_method": "fixed", "base_price": 999, "inventory_ref": "m-1"}
  ],
  "selected": ["lining", "motor"],
  "inventory": [{"id": "m-1", "selling_price": 180, "cost_price": 100}]
}`

func TestQuoteCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(curtainRequest), 0o600))

	out, err := execute(t, "quote", path)
	require.NoError(t, err)

	var q quote.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	require.True(t, q.Complete)
	assert.Equal(t, 3, q.Quantity.WidthsRequired)
	assert.InDelta(t, 8.415*40, q.Breakdown.MaterialCost, 1e-9)
	assert.InDelta(t, 18+180, q.Breakdown.OptionsCost, 1e-9)
}

func TestGridConvertCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte("width,drop,price\n60,100,40\n120,150,65\nbad,row\n"), 0o600))

	xlsx := filepath.Join(dir, "grid.xlsx")
	out, err := execute(t, "grid", "convert", src, xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, "2 tiers (width_drop)")

	back := filepath.Join(dir, "back.csv")
	_, err = execute(t, "grid", "convert", xlsx, back)
	require.NoError(t, err)

	raw, err := os.ReadFile(back)
	require.NoError(t, err)
	assert.Equal(t, "width,drop,price\n60,100,40\n120,150,65\n", string(raw))
}
