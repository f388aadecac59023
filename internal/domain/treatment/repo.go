package treatment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
)

var ErrNotFound = errors.New("not found")

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Templates */

func (r *Repo) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, family, heading, fullness_ratio, header_allowance, bottom_hem,
		       side_hems, seam_hems, return_left, return_right, waste_percent, labor_per_panel
		FROM treatment_templates
		WHERE id = $1 AND active = TRUE
	`, id)

	var t Template
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Family,
		&t.Heading,
		&t.FullnessRatio,
		&t.HeaderAllowance,
		&t.BottomHem,
		&t.SideHems,
		&t.SeamHems,
		&t.ReturnLeft,
		&t.ReturnRight,
		&t.WastePercent,
		&t.LaborPerPanel,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("template %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &t, nil
}

/* Materials */

const materialColumns = `
	id, name, colour, roll_width, roll_length, pattern_repeat, pricing_unit,
	price_per_linear_unit, price_per_roll, price_per_area, grid_type, grid_tiers`

func scanMaterial(row pgx.Row) (*Material, error) {
	var (
		m        Material
		gridType *string
		rawTiers []byte
	)
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Colour,
		&m.RollWidth,
		&m.RollLength,
		&m.PatternRepeat,
		&m.PricingUnit,
		&m.PricePerLinearUnit,
		&m.PricePerRoll,
		&m.PricePerArea,
		&gridType,
		&rawTiers,
	); err != nil {
		return nil, err
	}

	if gridType != nil && len(rawTiers) > 0 {
		var tiers []grid.Tier
		if err := json.Unmarshal(rawTiers, &tiers); err != nil {
			return nil, fmt.Errorf("material %d: bad grid_tiers: %w", m.ID, err)
		}
		if len(tiers) > 0 {
			g := grid.New(grid.Type(*gridType), tiers)
			m.Grid = &g
		}
	}
	return &m, nil
}

func (r *Repo) GetMaterial(ctx context.Context, id int64) (*Material, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1 AND active = TRUE`, id)
	m, err := scanMaterial(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("material %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *Repo) ListMaterials(ctx context.Context, onlyActive bool) ([]Material, error) {
	q := `SELECT ` + materialColumns + ` FROM materials`
	if onlyActive {
		q += " WHERE active = TRUE"
	}
	q += " ORDER BY name"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// SetGrid заменяет таблицу цен материала целиком (импорт CSV/XLSX).
// Пустая таблица снимает grid-цену.
func (r *Repo) SetGrid(ctx context.Context, materialID int64, g *grid.Grid) error {
	var (
		gtype *string
		raw   []byte
	)
	if g != nil && len(g.Tiers) > 0 {
		t := string(g.Type)
		gtype = &t
		b, err := json.Marshal(g.Tiers)
		if err != nil {
			return err
		}
		raw = b
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE materials SET grid_type = $2, grid_tiers = $3, updated_at = NOW()
		WHERE id = $1
	`, materialID, gtype, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %d: %w", materialID, ErrNotFound)
	}
	return nil
}
