package treatment

import (
	"fmt"
	"math"
)

// eps гасит хвосты float при делении "ровных" сантиметров (300/150 и т.п.).
const eps = 1e-9

func ceilInt(x float64) int { return int(math.Ceil(x - eps)) }

// Fabric считает расход ткани для штор по полноте.
//
//	ширина ткани  = ширина × полнота + отвороты
//	полотнищ      = ceil(ширина ткани / ширина рулона), минимум 1
//	высота кроя   = высота + pooling + верх + низ
//	пог. м        = полотнищ × высота кроя / 100 + полотнищ × (боковые + швы) / 100
//	с отходами    = пог. м × (1 + waste/100)
//
// Деньги не округляются: округление только при показе.
func Fabric(m Measurements, t Template, mat Material) (Result, error) {
	if err := validateFabric(t, mat); err != nil {
		return Result{}, err
	}
	if !m.complete() {
		return Incomplete(), nil
	}

	width, drop := m.Width.Float(), m.Drop.Float()

	fabricWidth := width*t.FullnessRatio + t.ReturnLeft + t.ReturnRight
	widths := ceilInt(fabricWidth / mat.RollWidth)
	if widths < 1 {
		widths = 1
	}

	totalDrop := drop + m.Pooling.Float() + t.HeaderAllowance + t.BottomHem

	// боковые подгибы и швы — на каждое полотнище, отдельным слагаемым
	hemCorrection := float64(widths) * (t.SideHems + t.SeamHems) / 100
	linear := float64(widths)*totalDrop/100 + hemCorrection
	withWaste := linear * (1 + t.WastePercent/100)

	unitPrice := mat.PricePerLinearUnit
	if mat.Grid != nil {
		p, err := mat.Grid.Resolve(width, drop)
		if err != nil {
			return Result{}, fmt.Errorf("material %d grid: %w", mat.ID, err)
		}
		unitPrice = p
	}

	return Result{
		Complete: true,
		Quantity: Quantity{
			FabricWidthRequired: fabricWidth,
			WidthsRequired:      widths,
			TotalDrop:           totalDrop,
			LinearMeters:        linear,
			LinearMetersWaste:   withWaste,
			WastePercentApplied: t.WastePercent,
			Unit:                UnitLinearMeter,
			Amount:              withWaste,
		},
		UnitPrice:    unitPrice,
		MaterialCost: withWaste * unitPrice,
		LaborCost:    t.LaborPerPanel * float64(widths),
	}, nil
}

func validateFabric(t Template, mat Material) error {
	if mat.RollWidth <= 0 {
		return configErr("roll_width", "must be > 0")
	}
	if t.FullnessRatio < 1 {
		return configErr("fullness_ratio", "must be >= 1")
	}
	if t.WastePercent < 0 {
		return configErr("waste_percent", "must be >= 0")
	}
	if t.HeaderAllowance < 0 || t.BottomHem < 0 || t.SideHems < 0 || t.SeamHems < 0 ||
		t.ReturnLeft < 0 || t.ReturnRight < 0 {
		return configErr("allowances", "must be >= 0")
	}
	if mat.Grid == nil && mat.PricePerLinearUnit < 0 {
		return configErr("price_per_linear_unit", "must be >= 0")
	}
	return nil
}
