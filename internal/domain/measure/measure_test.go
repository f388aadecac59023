package measure

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   Dimension
		wantOK bool
	}{
		{"plain string", "150", 150, true},
		{"padded string", "  220.5 ", 220.5, true},
		{"comma decimal", "137,5", 137.5, true},
		{"float", 90.0, 90, true},
		{"int", 42, 42, true},
		{"json number", json.Number("12"), 12, true},
		{"blank", "", 0, false},
		{"spaces", "   ", 0, false},
		{"zero string", "0", 0, false},
		{"zero float", 0.0, 0, false},
		{"negative", "-5", 0, false},
		{"garbage", "12cm", 0, false},
		{"nan", math.NaN(), 0, false},
		{"inf", math.Inf(1), 0, false},
		{"nil", nil, 0, false},
		{"unsupported", []int{1}, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.raw)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseAllowZero(t *testing.T) {
	got, ok := ParseAllowZero("0")
	assert.True(t, ok)
	assert.Equal(t, Dimension(0), got)

	_, ok = ParseAllowZero("")
	assert.False(t, ok, "blank is still 'not entered'")

	_, ok = ParseAllowZero(-1)
	assert.False(t, ok)
}

func TestParse_NilPointers(t *testing.T) {
	var s *string
	var f *float64
	_, ok := Parse(s)
	assert.False(t, ok)
	_, ok = Parse(f)
	assert.False(t, ok)

	v := 3.5
	got, ok := Parse(&v)
	assert.True(t, ok)
	assert.Equal(t, Dimension(3.5), got)
	assert.InDelta(t, 0.035, got.Meters(), 1e-12)
}
