package treatment

import "fmt"

// Hardware — жалюзи, ставни и прочее, что продаётся не метражом, а по
// таблице цен ширина×высота. Без таблицы — цена за м².
func Hardware(m Measurements, mat Material) (Result, error) {
	if mat.Grid == nil && mat.PricePerArea <= 0 {
		return Result{}, configErr("pricing_grid", "or price_per_area is required")
	}
	if !m.complete() {
		return Incomplete(), nil
	}

	width, drop := m.Width.Float(), m.Drop.Float()
	sqm := width * drop / 10000

	res := Result{
		Complete: true,
		Quantity: Quantity{
			WidthsRequired: 1,
			SquareMeters:   sqm,
			Unit:           UnitSquareMeter,
			Amount:         sqm,
		},
	}

	if mat.Grid != nil {
		p, err := mat.Grid.Resolve(width, drop)
		if err != nil {
			return Result{}, fmt.Errorf("material %d grid: %w", mat.ID, err)
		}
		res.UnitPrice = p
		res.MaterialCost = p
		return res, nil
	}

	res.UnitPrice = mat.PricePerArea
	res.MaterialCost = sqm * mat.PricePerArea
	return res, nil
}

// Calculate выбирает калькулятор по семейству шаблона.
func Calculate(m Measurements, t Template, mat Material) (Result, error) {
	switch t.Family {
	case FamilyFabric, "":
		return Fabric(m, t, mat)
	case FamilyWallcovering:
		return Wallcovering(m, mat)
	case FamilyHardware:
		return Hardware(m, mat)
	default:
		return Result{}, configErr("family", fmt.Sprintf("%q is not supported", t.Family))
	}
}
