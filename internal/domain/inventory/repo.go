package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// GetItem возвращает позицию по id (nil, nil если записи нет).
func (r *Repo) GetItem(ctx context.Context, id string) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, COALESCE(sku,''), selling_price, cost_price, markup_percent, active, updated_at
		FROM inventory_items
		WHERE id = $1
	`, id)

	var it Item
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&it.SKU,
		&it.SellingPrice,
		&it.CostPrice,
		&it.MarkupPercent,
		&it.Active,
		&it.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}
