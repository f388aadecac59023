package treatment

import (
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/measure"
)

// Family — семейство изделий, от него зависит калькулятор.
type Family string

const (
	FamilyFabric       Family = "fabric"       // шторы: полнота × ширина, погонные метры
	FamilyWallcovering Family = "wallcovering" // обои: полосы и рулоны
	FamilyHardware     Family = "hardware"     // жалюзи/ставни: цена из таблицы
)

// Template — шаблон изделия. Все линейные величины в см, waste в процентах.
type Template struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Family          Family  `json:"family"`
	Heading         string  `json:"heading"`
	FullnessRatio   float64 `json:"fullness_ratio"`
	HeaderAllowance float64 `json:"header_allowance"`
	BottomHem       float64 `json:"bottom_hem"`
	SideHems        float64 `json:"side_hems"`
	SeamHems        float64 `json:"seam_hems"`
	ReturnLeft      float64 `json:"return_left"`
	ReturnRight     float64 `json:"return_right"`
	WastePercent    float64 `json:"waste_percent"`
	LaborPerPanel   float64 `json:"labor_per_panel"`
}

// PricingUnit — как продаётся материал.
type PricingUnit string

const (
	UnitLinearMeter PricingUnit = "m"
	UnitRoll        PricingUnit = "roll"
	UnitSquareMeter PricingUnit = "m2"
)

// Material — ткань, обои или полотно для жалюзи.
type Material struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	Colour             string      `json:"colour"`
	RollWidth          float64     `json:"roll_width"`            // см
	RollLength         float64     `json:"roll_length"`           // см, только обои
	PatternRepeat      float64     `json:"pattern_repeat"`        // см, только обои
	PricingUnit        PricingUnit `json:"pricing_unit"`
	PricePerLinearUnit float64     `json:"price_per_linear_unit"` // за погонный метр
	PricePerRoll       float64     `json:"price_per_roll"`
	PricePerArea       float64     `json:"price_per_area"`        // за м²
	Grid               *grid.Grid  `json:"pricing_grid,omitempty"`
}

// Measurements — размеры окна (ткани) или стены (обои), см.
type Measurements struct {
	Width   measure.Dimension
	Drop    measure.Dimension
	Pooling measure.Dimension
}

// ParseMeasurements собирает размеры из сырых значений формы.
// Не введённая ширина/высота остаётся нулём — калькулятор вернёт "incomplete".
func ParseMeasurements(width, drop, pooling any) Measurements {
	var m Measurements
	m.Width, _ = measure.Parse(width)
	m.Drop, _ = measure.Parse(drop)
	m.Pooling, _ = measure.ParseAllowZero(pooling)
	return m
}

func (m Measurements) complete() bool { return m.Width > 0 && m.Drop > 0 }

// Quantity — сколько материала нужно. Не сохраняется, считается заново.
type Quantity struct {
	FabricWidthRequired float64 `json:"fabricWidthRequired,omitempty"` // см
	WidthsRequired      int     `json:"widthsRequired"`
	TotalDrop           float64 `json:"totalDrop,omitempty"` // см
	LinearMeters        float64 `json:"linearMeters,omitempty"`      // без отходов
	LinearMetersWaste   float64 `json:"linearMetersWithWaste,omitempty"`
	SquareMeters        float64 `json:"squareMeters,omitempty"`
	WastePercentApplied float64 `json:"wastePercentApplied"`

	// обои
	StripsNeeded int     `json:"stripsNeeded,omitempty"`
	StripLength  float64 `json:"stripLength,omitempty"` // см
	TotalLength  float64 `json:"totalLength,omitempty"` // см
	RollsNeeded  int     `json:"rollsNeeded,omitempty"`

	// Unit и Amount — что показывать покупателю: "m", "roll" или "m2".
	Unit   PricingUnit `json:"unit"`
	Amount float64     `json:"amount"`
}

// Result — итог калькулятора. Complete=false значит "размеры ещё не введены":
// цены нет, и показывать её нельзя.
type Result struct {
	Complete     bool     `json:"complete"`
	Quantity     Quantity `json:"quantity"`
	UnitPrice    float64  `json:"unitPrice"`
	MaterialCost float64  `json:"materialCost"`
	LaborCost    float64  `json:"laborCost"`
}

// Incomplete — результат для незаполненных размеров.
func Incomplete() Result { return Result{} }
