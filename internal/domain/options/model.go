package options

import (
	"fmt"
	"strings"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/inventory"
)

// Method — способ цены опции. Набор закрыт.
type Method string

const (
	MethodFixed      Method = "fixed"
	MethodPerLinear  Method = "per_linear_unit" // за погонный метр ширины
	MethodPerArea    Method = "per_area_unit"   // за м² (ширина × высота)
	MethodPerPanel   Method = "per_panel"       // за полотнище
	MethodPercentage Method = "percentage"      // % от промежуточной суммы
	MethodGrid       Method = "grid"            // своя таблица ширина×высота
)

var methodAliases = map[string]Method{
	"fixed":           MethodFixed,
	"flat":            MethodFixed,
	"per_linear_unit": MethodPerLinear,
	"per_linear":      MethodPerLinear,
	"per_meter":       MethodPerLinear,
	"per_metre":       MethodPerLinear,
	"per_running_m":   MethodPerLinear,
	"per_area_unit":   MethodPerArea,
	"per_area":        MethodPerArea,
	"per_sqm":         MethodPerArea,
	"per_panel":       MethodPerPanel,
	"per_width":       MethodPerPanel,
	"percentage":      MethodPercentage,
	"percent":         MethodPercentage,
	"grid":            MethodGrid,
	"pricing_grid":    MethodGrid,
}

// ParseMethod принимает и "per-linear-unit", и "PER_METER" и т.п.
func ParseMethod(s string) (Method, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("-", "_", " ", "_").Replace(k)
	if m, ok := methodAliases[k]; ok {
		return m, nil
	}
	return "", fmt.Errorf("unknown pricing method %q", s)
}

// UnmarshalText — для JSON: принимает те же варианты записи, что ParseMethod.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Node — узел дерева опций. Глубина не ограничена: категория → подкатегория →
// ... → extra, всё это просто вложенные Children.
type Node struct {
	ID           string     `json:"id"`
	Key          string     `json:"key"`                           // внутренний ключ, по нему дедупликация
	Label        string     `json:"label"`
	Method       Method     `json:"pricing_method"`
	BasePrice    float64    `json:"base_price"`
	Grid         *grid.Grid `json:"grid,omitempty"`                // только для MethodGrid
	InventoryRef string     `json:"inventory_ref,omitempty"`       // если задан, BasePrice игнорируется
	Headings     []string   `json:"applies_to_headings,omitempty"` // пусто = подходит к любому heading
	Children     []Node     `json:"children,omitempty"`
}

// dedupKey — суффикс экземпляра снимаем только с Key. Узел без ключа
// уникален по своему id, id не нормализуем.
func (n Node) dedupKey() string {
	if k := NormalizeKey(n.Key); k != "" {
		return k
	}
	return "id:" + n.ID
}

func (n Node) appliesTo(heading string) bool {
	if len(n.Headings) == 0 {
		return true
	}
	h := NormalizeKey(heading)
	for _, x := range n.Headings {
		if NormalizeKey(x) == h && h != "" {
			return true
		}
	}
	return false
}

// Selection — выбранные покупателем id узлов.
type Selection map[string]struct{}

func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Context — всё, что нужно для цены опций, кроме самого дерева.
type Context struct {
	Width      float64 // см
	Drop       float64 // см
	PanelCount int     // обычно WidthsRequired из калькулятора
	Heading    string

	// BaseAmount — стоимость материала (и работы); проценты считаются
	// от BaseAmount + сумма непроцентных опций.
	BaseAmount float64

	InventoryMode   inventory.PricingMode
	InventoryMarkup float64
}

// Line — вклад одной опции.
type Line struct {
	NodeID    string  `json:"nodeId"`
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Method    Method  `json:"method"`
	Rate      float64 `json:"rate"` // действующая базовая цена (или %)
	Amount    float64 `json:"amount"`
	Inventory bool    `json:"inventory,omitempty"`
}

// Cost — итог по опциям.
type Cost struct {
	Lines           []Line   `json:"lines"`
	Subtotal        float64  `json:"subtotal"`        // без процентных
	PercentageDelta float64  `json:"percentageDelta"` // сумма процентных
	Total           float64  `json:"total"`
	Excluded        []string `json:"excluded,omitempty"`   // выбраны, но не подходят к heading
	Duplicates      []string `json:"duplicates,omitempty"` // выбраны повторно под тем же ключом
}
