package options

import (
	"context"
	"errors"
	"fmt"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
)

var (
	ErrNoInventoryPricer = errors.New("option references inventory but no pricer is configured")
	ErrNodeConfig        = errors.New("option node configuration error")
)

// InventoryPricer — внешний resolveInventoryPrice. Как хранится склад,
// агрегатору неважно.
type InventoryPricer interface {
	ResolvePrice(ctx context.Context, itemID string, mode inventory.PricingMode, markupPercent float64) (float64, error)
}

type Aggregator struct {
	inv InventoryPricer
}

// NewAggregator; inv может быть nil, если опций со складскими ссылками нет.
func NewAggregator(inv InventoryPricer) *Aggregator { return &Aggregator{inv: inv} }

// Aggregate обходит всё дерево и суммирует выбранные узлы.
// Два прохода: сначала всё, кроме процентов, потом проценты от
// BaseAmount + непроцентная сумма. Поэтому порядок выбора на итог не влияет.
func (a *Aggregator) Aggregate(ctx context.Context, tree []Node, sel Selection, c Context) (Cost, error) {
	var (
		cost    Cost
		picked  []Node
		seen    = map[string]bool{}
		collect func(nodes []Node)
	)

	collect = func(nodes []Node) {
		for _, n := range nodes {
			if !n.appliesTo(c.Heading) {
				// устаревший выбор после смены шаблона — вместе с поддеревом
				markExcluded(n, sel, &cost.Excluded)
				continue
			}
			if sel.Has(n.ID) {
				k := n.dedupKey()
				if seen[k] {
					cost.Duplicates = append(cost.Duplicates, n.ID)
				} else {
					seen[k] = true
					picked = append(picked, n)
				}
			}
			collect(n.Children)
		}
	}
	collect(tree)

	var percents []Line
	for _, n := range picked {
		rate, fromInv, err := a.rate(ctx, n, c)
		if err != nil {
			return Cost{}, err
		}
		line := Line{NodeID: n.ID, Key: n.Key, Label: n.Label, Method: n.Method, Rate: rate, Inventory: fromInv}

		switch n.Method {
		case MethodFixed:
			line.Amount = rate
		case MethodPerLinear:
			line.Amount = rate * c.Width / 100
		case MethodPerArea:
			line.Amount = rate * c.Width * c.Drop / 10000
		case MethodPerPanel:
			line.Amount = rate * float64(c.PanelCount)
		case MethodGrid:
			line.Amount = rate
		case MethodPercentage:
			percents = append(percents, line)
			continue
		default:
			return Cost{}, fmt.Errorf("%w: node %s has unknown method %q", ErrNodeConfig, n.ID, n.Method)
		}
		cost.Subtotal += line.Amount
		cost.Lines = append(cost.Lines, line)
	}

	basis := c.BaseAmount + cost.Subtotal
	for _, line := range percents {
		// знак не ограничиваем: отрицательный процент — скидка
		line.Amount = basis * line.Rate / 100
		cost.PercentageDelta += line.Amount
		cost.Lines = append(cost.Lines, line)
	}

	cost.Total = cost.Subtotal + cost.PercentageDelta
	return cost, nil
}

// rate — действующая базовая цена узла: склад, таблица или BasePrice.
func (a *Aggregator) rate(ctx context.Context, n Node, c Context) (float64, bool, error) {
	if n.InventoryRef != "" {
		if a.inv == nil {
			return 0, false, fmt.Errorf("%w (node %s)", ErrNoInventoryPricer, n.ID)
		}
		mode := c.InventoryMode
		if mode == "" {
			mode = inventory.ModeSelling
		}
		p, err := a.inv.ResolvePrice(ctx, n.InventoryRef, mode, c.InventoryMarkup)
		if err != nil {
			return 0, false, fmt.Errorf("option %s inventory %s: %w", n.ID, n.InventoryRef, err)
		}
		return p, true, nil
	}

	if n.Method == MethodGrid {
		if n.Grid == nil {
			return 0, false, fmt.Errorf("%w: grid node %s has no table", ErrNodeConfig, n.ID)
		}
		p, err := n.Grid.Resolve(c.Width, c.Drop)
		if err != nil {
			return 0, false, fmt.Errorf("option %s: %w", n.ID, err)
		}
		return p, false, nil
	}

	return n.BasePrice, false, nil
}

func markExcluded(n Node, sel Selection, out *[]string) {
	if sel.Has(n.ID) {
		*out = append(*out, n.ID)
	}
	for _, ch := range n.Children {
		markExcluded(ch, sel, out)
	}
}
