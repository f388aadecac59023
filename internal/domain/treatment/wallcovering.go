package treatment

import (
	"fmt"
	"math"
)

// Wallcovering считает обои: полосы по ширине стены, длина полосы
// округляется вверх до кратного раппорту, рулоны — по общей длине.
// Материал с PricingUnit=m2 продаётся по площади, иначе — рулонами.
func Wallcovering(m Measurements, mat Material) (Result, error) {
	byArea := mat.PricingUnit == UnitSquareMeter

	if mat.RollWidth <= 0 {
		return Result{}, configErr("roll_width", "must be > 0")
	}
	if !byArea && mat.RollLength <= 0 {
		return Result{}, configErr("roll_length", "must be > 0")
	}
	if mat.PatternRepeat < 0 {
		return Result{}, configErr("pattern_repeat", "must be >= 0")
	}
	if !m.complete() {
		return Incomplete(), nil
	}

	wallWidth, wallHeight := m.Width.Float(), m.Drop.Float()

	strips := ceilInt(wallWidth / mat.RollWidth)
	stripLength := wallHeight
	if mat.PatternRepeat > 0 {
		stripLength = math.Ceil(wallHeight/mat.PatternRepeat-eps) * mat.PatternRepeat
	}
	totalLength := float64(strips) * stripLength

	rolls := 0
	if mat.RollLength > 0 {
		rolls = ceilInt(totalLength / mat.RollLength)
	}
	sqm := wallWidth * wallHeight / 10000

	q := Quantity{
		WidthsRequired: strips,
		SquareMeters:   sqm,
		StripsNeeded:   strips,
		StripLength:    stripLength,
		TotalLength:    totalLength,
		RollsNeeded:    rolls,
	}

	unitPrice := mat.PricePerRoll
	if byArea {
		unitPrice = mat.PricePerArea
	}
	if mat.Grid != nil {
		p, err := mat.Grid.Resolve(wallWidth, wallHeight)
		if err != nil {
			return Result{}, fmt.Errorf("material %d grid: %w", mat.ID, err)
		}
		unitPrice = p
	}
	if unitPrice < 0 {
		return Result{}, configErr("price", "must be >= 0")
	}

	var cost float64
	if byArea {
		q.Unit, q.Amount = UnitSquareMeter, sqm
		cost = sqm * unitPrice
	} else {
		q.Unit, q.Amount = UnitRoll, float64(rolls)
		cost = float64(rolls) * unitPrice
	}

	return Result{
		Complete:     true,
		Quantity:     q,
		UnitPrice:    unitPrice,
		MaterialCost: cost,
	}, nil
}
