package options

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dbaltunis/interio-ai-canvas-sub004/internal/domain/grid"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Tree возвращает дерево опций шаблона.
func (r *Repo) Tree(ctx context.Context, templateID int64) ([]Node, error) {
	// выключенный узел прячет и своё поддерево
	rows, err := r.pool.Query(ctx, `
		WITH RECURSIVE t AS (
			SELECT n.* FROM option_nodes n
			WHERE n.template_id = $1 AND n.active = TRUE AND n.parent_id IS NULL
			UNION ALL
			SELECT c.* FROM option_nodes c
			JOIN t ON c.parent_id = t.id
			WHERE c.active = TRUE
		)
		SELECT id, COALESCE(parent_id,''), key, label, pricing_method, base_price,
		       grid_type, grid_tiers, COALESCE(inventory_ref,''), headings, sort_order
		FROM t
		ORDER BY sort_order, id
	`, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []FlatNode
	for rows.Next() {
		var (
			f        FlatNode
			method   string
			gridType *string
			rawTiers []byte
		)
		if err := rows.Scan(
			&f.ID,
			&f.ParentID,
			&f.Key,
			&f.Label,
			&method,
			&f.BasePrice,
			&gridType,
			&rawTiers,
			&f.InventoryRef,
			&f.Headings,
			&f.SortOrder,
		); err != nil {
			return nil, err
		}

		m, err := ParseMethod(method)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", f.ID, err)
		}
		f.Method = m

		if gridType != nil && len(rawTiers) > 0 {
			var tiers []grid.Tier
			if err := json.Unmarshal(rawTiers, &tiers); err != nil {
				return nil, fmt.Errorf("node %s: bad grid_tiers: %w", f.ID, err)
			}
			g := grid.New(grid.Type(*gridType), tiers)
			f.Grid = &g
		}
		flat = append(flat, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return BuildTree(flat)
}
