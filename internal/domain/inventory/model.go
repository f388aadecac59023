package inventory

import "time"

// PricingMode — какую цену складской позиции брать для опции.
type PricingMode string

const (
	ModeSelling        PricingMode = "selling"
	ModeCost           PricingMode = "cost"
	ModeCostWithMarkup PricingMode = "cost_with_markup"
)

func (m PricingMode) Valid() bool {
	switch m {
	case ModeSelling, ModeCost, ModeCostWithMarkup:
		return true
	}
	return false
}

// Item — складская позиция (кронштейн, мотор, цепь), на которую может
// ссылаться опция вместо своей цены.
type Item struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku,omitempty"`
	SellingPrice  float64   `json:"selling_price"`
	CostPrice     float64   `json:"cost_price"`
	MarkupPercent float64   `json:"markup_percent"` // своя наценка позиции, если задана
	Active        bool      `json:"active"`
	UpdatedAt     time.Time `json:"updated_at"`
}
