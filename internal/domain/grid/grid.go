package grid

import (
	"errors"
	"fmt"
	"sort"
)

// Type — по каким осям задана таблица.
type Type string

const (
	TypeWidth     Type = "width"      // только ширина, drop игнорируется
	TypeWidthDrop Type = "width_drop" // ширина + высота
)

var (
	ErrEmpty      = errors.New("pricing grid has no tiers")
	ErrOutOfRange = errors.New("dimensions exceed every pricing grid tier")
)

// Tier — строка таблицы: порог по ширине (и высоте) и цена.
type Tier struct {
	Width float64 `json:"width"`
	Drop  float64 `json:"drop,omitempty"`
	Price float64 `json:"price"`
}

type Grid struct {
	Type  Type   `json:"type"`
	Tiers []Tier `json:"tiers"`
}

// OutOfRangeError несёт запрошенные размеры и максимальный порог таблицы.
type OutOfRangeError struct {
	Width, Drop       float64
	MaxWidth, MaxDrop float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%v: requested %.1fx%.1f, largest tier %.1fx%.1f",
		ErrOutOfRange, e.Width, e.Drop, e.MaxWidth, e.MaxDrop)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// New копирует строки и сортирует их по порогам (ширина, затем высота).
func New(t Type, tiers []Tier) Grid {
	if t == "" {
		t = TypeWidthDrop
	}
	g := Grid{Type: t, Tiers: make([]Tier, len(tiers))}
	copy(g.Tiers, tiers)
	sortTiers(g.Tiers)
	return g
}

func sortTiers(tiers []Tier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].Width != tiers[j].Width {
			return tiers[i].Width < tiers[j].Width
		}
		return tiers[i].Drop < tiers[j].Drop
	})
}

func (g Grid) WidthOnly() bool { return g.Type == TypeWidth }

// Resolve возвращает цену первой строки в порядке (ширина, высота), порог
// которой покрывает и ширину, и высоту. Более узкая строка выигрывает, даже
// если у более широкой цена ниже. Если не покрывает ни одна — OutOfRangeError,
// последнюю строку молча не берём.
func (g Grid) Resolve(width, drop float64) (float64, error) {
	if len(g.Tiers) == 0 {
		return 0, ErrEmpty
	}

	tiers := make([]Tier, len(g.Tiers))
	copy(tiers, g.Tiers)
	sortTiers(tiers)

	for _, t := range tiers {
		if t.Width < width {
			continue
		}
		if !g.WidthOnly() && t.Drop < drop {
			continue
		}
		return t.Price, nil
	}

	oe := &OutOfRangeError{Width: width, Drop: drop}
	for _, t := range tiers {
		if t.Width > oe.MaxWidth {
			oe.MaxWidth = t.Width
		}
		if t.Drop > oe.MaxDrop {
			oe.MaxDrop = t.Drop
		}
	}
	if g.WidthOnly() {
		oe.Drop, oe.MaxDrop = 0, 0
	}
	return 0, oe
}
