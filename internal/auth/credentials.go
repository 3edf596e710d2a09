package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/delfood/owner-service/internal/domain"
)

var (
	// ErrInvalidCredentials covers unknown id and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDeleted means the credentials were correct but the account
	// has been soft-deleted and may never authenticate again.
	ErrAccountDeleted = errors.New("account deleted")
)

// OwnerSource is the slice of the identity store the validator reads from.
type OwnerSource interface {
	FindByIDAndPassword(ctx context.Context, id, password string) (*domain.Owner, error)
}

// CredentialValidator decides whether an id/password pair authenticates an
// ACTIVE owner.
type CredentialValidator struct {
	owners OwnerSource
}

// NewCredentialValidator builds the validator.
func NewCredentialValidator(owners OwnerSource) *CredentialValidator {
	return &CredentialValidator{owners: owners}
}

// Authenticate returns the owner only when the record exists, the password
// matches and the status is ACTIVE. A matching record with DELETED status
// yields ErrAccountDeleted so the login path can report it distinctly.
func (v *CredentialValidator) Authenticate(ctx context.Context, id, password string) (*domain.Owner, error) {
	owner, err := v.owners.FindByIDAndPassword(ctx, id, password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if owner.Status == domain.OwnerStatusDeleted {
		return nil, ErrAccountDeleted
	}
	return owner, nil
}
