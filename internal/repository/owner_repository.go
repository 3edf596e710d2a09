package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/domain"
)

// ErrDuplicateID is returned by Insert when the owner id is already taken.
// The primary key on owners(id) is the final arbiter of uniqueness; the
// service-level exists pre-check is only a fast path.
var ErrDuplicateID = errors.New("owner id already exists")

const pgUniqueViolation = "23505"

// OwnerRepository defines persistence access for owner accounts.
// Absence is reported as pgx.ErrNoRows; FindByIDAndPassword reports
// absence for both an unknown id and a wrong password, so callers cannot
// tell the two apart.
type OwnerRepository interface {
	Insert(ctx context.Context, owner *domain.Owner) error
	FindByID(ctx context.Context, id string) (*domain.Owner, error)
	FindByIDAndPassword(ctx context.Context, id, password string) (*domain.Owner, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	UpdateContact(ctx context.Context, id string, mail, tel *string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type ownerRepository struct {
	pool *pgxpool.Pool
}

// NewOwnerRepository returns a Postgres-backed implementation.
func NewOwnerRepository(pool *pgxpool.Pool) OwnerRepository {
	return &ownerRepository{pool: pool}
}

func (r *ownerRepository) Insert(ctx context.Context, owner *domain.Owner) error {
	const query = `
        INSERT INTO owners (id, name, mail, tel, password_hash, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		owner.ID,
		owner.Name,
		owner.Mail,
		owner.Tel,
		owner.PasswordHash,
		owner.Status,
	).Scan(&owner.CreatedAt, &owner.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *ownerRepository) FindByID(ctx context.Context, id string) (*domain.Owner, error) {
	const query = `
        SELECT id, name, mail, tel, password_hash, status, created_at, updated_at
        FROM owners WHERE id=$1`

	var owner domain.Owner
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&owner.ID,
		&owner.Name,
		&owner.Mail,
		&owner.Tel,
		&owner.PasswordHash,
		&owner.Status,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &owner, nil
}

func (r *ownerRepository) FindByIDAndPassword(ctx context.Context, id, password string) (*domain.Owner, error) {
	owner, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(owner.PasswordHash, password); err != nil {
		return nil, pgx.ErrNoRows
	}
	return owner, nil
}

func (r *ownerRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM owners WHERE id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ownerRepository) UpdateContact(ctx context.Context, id string, mail, tel *string) error {
	const query = `
        UPDATE owners
        SET mail=COALESCE($1, mail), tel=COALESCE($2, tel), updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, mail, tel, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ownerRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
        UPDATE owners SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
