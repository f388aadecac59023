package quote

import (
	"context"
	"fmt"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/options"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/treatment"
)

// Request — запрос на расчёт. Размеры приходят как есть из формы:
// строка, число или пусто.
type Request struct {
	TemplateID      int64                 `json:"templateId"`
	MaterialID      int64                 `json:"materialId"`
	Width           any                   `json:"width"`
	Drop            any                   `json:"drop"`
	Pooling         any                   `json:"pooling,omitempty"`
	SelectedOptions []string              `json:"selectedOptions"`
	InventoryMode   inventory.PricingMode `json:"inventoryMode,omitempty"`
	MarkupPercent   *float64              `json:"markupPercent,omitempty"`
}

// Context — всё, что нужно для расчёта одной позиции, уже загруженное.
type Context struct {
	Template     treatment.Template
	Material     treatment.Material
	Measurements treatment.Measurements
	Tree         []options.Node
	Selection    options.Selection
	Pricing      Pricing
}

// Quote — результат. Без Complete цены нет: Breakdown и Rounded пустые.
type Quote struct {
	Complete  bool                        `json:"complete"`
	Quantity  treatment.Quantity          `json:"quantity"`
	UnitPrice float64                     `json:"unitPrice,omitempty"`
	Options   options.Cost                `json:"options"`
	Breakdown *treatment.PriceBreakdown   `json:"breakdown,omitempty"`
	Rounded   *treatment.RoundedBreakdown `json:"rounded,omitempty"`
}

// Configure: калькулятор по семейству, затем опции, затем сумма.
// Проценты в опциях считаются от материала + работы + непроцентных опций.
func Configure(ctx context.Context, agg *options.Aggregator, tc Context) (Quote, error) {
	res, err := treatment.Calculate(tc.Measurements, tc.Template, tc.Material)
	if err != nil {
		return Quote{}, err
	}
	if !res.Complete {
		return Quote{Complete: false}, nil
	}

	cost, err := agg.Aggregate(ctx, tc.Tree, tc.Selection, options.Context{
		Width:           tc.Measurements.Width.Float(),
		Drop:            tc.Measurements.Drop.Float(),
		PanelCount:      panelCount(res.Quantity),
		Heading:         tc.Template.Heading,
		BaseAmount:      res.MaterialCost + res.LaborCost,
		InventoryMode:   tc.Pricing.InventoryMode,
		InventoryMarkup: tc.Pricing.MarkupPercent,
	})
	if err != nil {
		return Quote{}, fmt.Errorf("options: %w", err)
	}

	b := treatment.NewBreakdown(res.MaterialCost, cost.Total, res.LaborCost)
	rounded := b.Rounded()
	return Quote{
		Complete:  true,
		Quantity:  res.Quantity,
		UnitPrice: res.UnitPrice,
		Options:   cost,
		Breakdown: &b,
		Rounded:   &rounded,
	}, nil
}

// panelCount — полотнища для per_panel: у штор ширины, у обоев полосы.
func panelCount(q treatment.Quantity) int {
	switch {
	case q.WidthsRequired > 0:
		return q.WidthsRequired
	case q.StripsNeeded > 0:
		return q.StripsNeeded
	default:
		return 1
	}
}
