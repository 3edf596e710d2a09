package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delfood/owner-service/internal/domain"
)

// MenuGroupRepository defines persistence access for the menu-group catalog.
type MenuGroupRepository interface {
	Insert(ctx context.Context, group *domain.MenuGroup) error
	NameExists(ctx context.Context, shopID int64, name string) (bool, error)
	FindByShopID(ctx context.Context, shopID int64) ([]domain.MenuGroup, error)
	UpdateNameAndContent(ctx context.Context, id int64, name, content string) error
	Delete(ctx context.Context, id int64) error
}

type menuGroupRepository struct {
	pool *pgxpool.Pool
}

// NewMenuGroupRepository returns a Postgres-backed implementation.
func NewMenuGroupRepository(pool *pgxpool.Pool) MenuGroupRepository {
	return &menuGroupRepository{pool: pool}
}

func (r *menuGroupRepository) Insert(ctx context.Context, group *domain.MenuGroup) error {
	const query = `
        INSERT INTO menu_groups (shop_id, name, content, priority, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		group.ShopID,
		group.Name,
		group.Content,
		group.Priority,
		group.Status,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
}

func (r *menuGroupRepository) NameExists(ctx context.Context, shopID int64, name string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM menu_groups
            WHERE shop_id=$1 AND name=$2 AND status <> 'DELETED'
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, shopID, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *menuGroupRepository) FindByShopID(ctx context.Context, shopID int64) ([]domain.MenuGroup, error) {
	const query = `
        SELECT id, shop_id, name, content, priority, status, created_at, updated_at
        FROM menu_groups
        WHERE shop_id=$1 AND status <> 'DELETED'
        ORDER BY priority, id`

	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.MenuGroup
	for rows.Next() {
		var g domain.MenuGroup
		if err := rows.Scan(
			&g.ID,
			&g.ShopID,
			&g.Name,
			&g.Content,
			&g.Priority,
			&g.Status,
			&g.CreatedAt,
			&g.UpdatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *menuGroupRepository) UpdateNameAndContent(ctx context.Context, id int64, name, content string) error {
	const query = `
        UPDATE menu_groups SET name=$1, content=$2, updated_at=NOW() WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, name, content, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuGroupRepository) Delete(ctx context.Context, id int64) error {
	const query = `
        UPDATE menu_groups SET status='DELETED', updated_at=NOW() WHERE id=$1`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
