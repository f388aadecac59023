package treatment

import "github.com/shopspring/decimal"

// PriceBreakdown — итог по позиции. Внутри float64 без округления,
// деньги округляются только при показе (Rounded).
type PriceBreakdown struct {
	MaterialCost float64 `json:"materialCost"`
	OptionsCost  float64 `json:"optionsCost"`
	LaborCost    float64 `json:"laborCost,omitempty"`
	TotalCost    float64 `json:"totalCost"`
}

func NewBreakdown(material, options, labor float64) PriceBreakdown {
	return PriceBreakdown{
		MaterialCost: material,
		OptionsCost:  options,
		LaborCost:    labor,
		TotalCost:    material + options + labor,
	}
}

// RoundedBreakdown — суммы для показа, 2 знака.
type RoundedBreakdown struct {
	MaterialCost decimal.Decimal `json:"materialCost"`
	OptionsCost  decimal.Decimal `json:"optionsCost"`
	LaborCost    decimal.Decimal `json:"laborCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// Rounded округляет каждую сумму отдельно (half-up). Total округляется от
// точной суммы, поэтому может отличаться от суммы округлённых частей на копейку.
func (b PriceBreakdown) Rounded() RoundedBreakdown {
	r := func(v float64) decimal.Decimal { return decimal.NewFromFloat(v).Round(2) }
	return RoundedBreakdown{
		MaterialCost: r(b.MaterialCost),
		OptionsCost:  r(b.OptionsCost),
		LaborCost:    r(b.LaborCost),
		TotalCost:    r(b.TotalCost),
	}
}
