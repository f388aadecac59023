package treatment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceBreakdown_Rounded(t *testing.T) {
	b := NewBreakdown(336.6, 10.005, 0.004)
	assert.InDelta(t, 346.609, b.TotalCost, 1e-9)

	r := b.Rounded()
	assert.Equal(t, "336.60", r.MaterialCost.StringFixed(2))
	assert.Equal(t, "0.00", r.LaborCost.StringFixed(2))
	assert.Equal(t, "346.61", r.TotalCost.StringFixed(2))
}

func TestPriceBreakdown_NegativeOptions(t *testing.T) {
	b := NewBreakdown(100, -20, 0)
	assert.InDelta(t, 80, b.TotalCost, 1e-9)
	assert.Equal(t, "-20.00", b.Rounded().OptionsCost.StringFixed(2))
}
