package inventory

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrItemNotFound = errors.New("inventory item not found")
	ErrBadMode      = errors.New("unknown inventory pricing mode")
)

// Price считает цену позиции по режиму. markupPercent < 0 значит
// "взять наценку самой позиции".
func Price(it Item, mode PricingMode, markupPercent float64) (float64, error) {
	switch mode {
	case ModeSelling:
		if it.SellingPrice > 0 {
			return it.SellingPrice, nil
		}
		// продажной цены нет — считаем от себестоимости с наценкой позиции
		return it.CostPrice * (1 + it.MarkupPercent/100), nil
	case ModeCost:
		return it.CostPrice, nil
	case ModeCostWithMarkup:
		if markupPercent < 0 {
			markupPercent = it.MarkupPercent
		}
		return it.CostPrice * (1 + markupPercent/100), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMode, mode)
	}
}

// ItemStore — откуда брать позиции; в проде это Repo.
type ItemStore interface {
	GetItem(ctx context.Context, id string) (*Item, error)
}

// Resolver реализует resolveInventoryPrice поверх ItemStore.
type Resolver struct {
	store ItemStore
}

func NewResolver(store ItemStore) *Resolver { return &Resolver{store: store} }

func (r *Resolver) ResolvePrice(ctx context.Context, itemID string, mode PricingMode, markupPercent float64) (float64, error) {
	it, err := r.store.GetItem(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if it == nil || !it.Active {
		return 0, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	return Price(*it, mode, markupPercent)
}
