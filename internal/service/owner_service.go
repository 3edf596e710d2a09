package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/config"
	"github.com/delfood/owner-service/internal/domain"
	"github.com/delfood/owner-service/internal/events"
	"github.com/delfood/owner-service/internal/repository"
	"github.com/delfood/owner-service/internal/session"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

// OwnerService orchestrates owner registration, login/logout and
// self-service profile updates. Expected business conclusions are returned
// as outcome values; the error return carries persistence faults only.
type OwnerService struct {
	owners     repository.OwnerRepository
	sessions   session.Store
	validator  *auth.CredentialValidator
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// OwnerDependencies encapsulates collaborator requirements for the service.
type OwnerDependencies struct {
	OwnerRepo  repository.OwnerRepository
	Sessions   session.Store
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOwnerService builds the service.
func NewOwnerService(cfg config.AuthConfig, deps OwnerDependencies) *OwnerService {
	return &OwnerService{
		owners:     deps.OwnerRepo,
		sessions:   deps.Sessions,
		validator:  auth.NewCredentialValidator(deps.OwnerRepo),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// SignUp registers a new owner account. Uniqueness is checked twice: the
// ExistsByID pre-check gives fast feedback, and the primary key on
// owners(id) settles the race when two signups for the same id interleave.
// Both paths produce the same ID_DUPLICATED outcome.
func (s *OwnerService) SignUp(ctx context.Context, reg domain.OwnerRegistration) (domain.SignUpResult, error) {
	if missing := missingRegistrationFields(reg); len(missing) > 0 {
		return domain.SignUpResult{}, apperrors.NewValidationError(
			"signup fields must not be empty", map[string]any{"missing": missing})
	}

	exists, err := s.owners.ExistsByID(ctx, reg.ID)
	if err != nil {
		return domain.SignUpResult{}, err
	}
	if exists {
		return domain.SignUpResult{Status: domain.SignUpIDDuplicated}, nil
	}

	hash, err := auth.HashPassword(reg.Password, s.bcryptCost)
	if err != nil {
		return domain.SignUpResult{}, err
	}

	owner := &domain.Owner{
		ID:           reg.ID,
		Name:         reg.Name,
		Mail:         reg.Mail,
		Tel:          reg.Tel,
		PasswordHash: hash,
		Status:       domain.OwnerStatusActive,
	}
	if err := s.owners.Insert(ctx, owner); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			// lost the check-then-insert race to a concurrent signup
			return domain.SignUpResult{Status: domain.SignUpIDDuplicated}, nil
		}
		return domain.SignUpResult{}, err
	}

	s.publish(ctx, events.EventOwnerRegistered, owner.ID,
		events.OwnerRegisteredPayload{Mail: owner.Mail, Tel: owner.Tel})
	s.logger.Info("owner registered", zap.String("owner_id", owner.ID))
	return domain.SignUpResult{Status: domain.SignUpCreated}, nil
}

// CheckIDAvailability reports whether an owner id is still free. Read-only.
func (s *OwnerService) CheckIDAvailability(ctx context.Context, id string) (domain.IDAvailability, error) {
	exists, err := s.owners.ExistsByID(ctx, id)
	if err != nil {
		return "", err
	}
	if exists {
		return domain.IDTaken, nil
	}
	return domain.IDAvailable, nil
}

// Login authenticates the owner and, only on success, binds the session
// token to the owner id. Failed attempts leave the session untouched.
func (s *OwnerService) Login(ctx context.Context, sessionToken, id, password string) (domain.LoginResult, error) {
	owner, err := s.validator.Authenticate(ctx, id, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return domain.LoginResult{Status: domain.LoginInvalidCredentials}, nil
		case errors.Is(err, auth.ErrAccountDeleted):
			return domain.LoginResult{Status: domain.LoginAccountDeleted}, nil
		default:
			return domain.LoginResult{}, err
		}
	}

	if err := s.sessions.Bind(ctx, sessionToken, owner.ID); err != nil {
		return domain.LoginResult{}, err
	}
	s.logger.Info("owner logged in", zap.String("owner_id", owner.ID))
	return domain.LoginResult{Status: domain.LoginSuccess, Owner: owner.Info()}, nil
}

// Logout clears the session binding. Clearing an already-anonymous session
// is a success, not an error.
func (s *OwnerService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Clear(ctx, sessionToken)
}

// Profile returns the owner's record without the credential.
func (s *OwnerService) Profile(ctx context.Context, ownerID string) (*domain.OwnerInfo, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return owner.Info(), nil
}

// UpdateContact changes mail and/or tel after re-proving the current
// password. Omitted fields are left untouched.
func (s *OwnerService) UpdateContact(ctx context.Context, ownerID string, mail, tel *string, currentPassword string) (domain.UpdateResult, error) {
	if _, err := s.owners.FindByIDAndPassword(ctx, ownerID, currentPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UpdateResult{Status: domain.UpdatePasswordMismatch}, nil
		}
		return domain.UpdateResult{}, err
	}

	if mail == nil && tel == nil {
		return domain.UpdateResult{Status: domain.UpdateEmptyContent}, nil
	}

	if err := s.owners.UpdateContact(ctx, ownerID, mail, tel); err != nil {
		return domain.UpdateResult{}, err
	}

	s.publish(ctx, events.EventOwnerContactUpdated, ownerID,
		events.OwnerContactUpdatedPayload{MailChanged: mail != nil, TelChanged: tel != nil})
	return domain.UpdateResult{Status: domain.UpdateSuccess}, nil
}

// UpdatePassword changes the credential after re-proving the current one.
// Existing sessions for the owner stay bound; the session store is not
// touched here.
func (s *OwnerService) UpdatePassword(ctx context.Context, ownerID, currentPassword, newPassword string) (domain.UpdateResult, error) {
	if currentPassword == "" || newPassword == "" {
		return domain.UpdateResult{Status: domain.UpdateEmptyPassword}, nil
	}

	if _, err := s.owners.FindByIDAndPassword(ctx, ownerID, currentPassword); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UpdateResult{Status: domain.UpdatePasswordMismatch}, nil
		}
		return domain.UpdateResult{}, err
	}

	if currentPassword == newPassword {
		return domain.UpdateResult{Status: domain.UpdatePasswordDuplicated}, nil
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if err := s.owners.UpdatePassword(ctx, ownerID, hash); err != nil {
		return domain.UpdateResult{}, err
	}

	s.publish(ctx, events.EventOwnerPasswordChanged, ownerID, nil)
	s.logger.Info("owner password changed", zap.String("owner_id", ownerID))
	return domain.UpdateResult{Status: domain.UpdateSuccess}, nil
}

func (s *OwnerService) publish(ctx context.Context, eventType events.EventType, ownerID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func missingRegistrationFields(reg domain.OwnerRegistration) []string {
	var missing []string
	if reg.ID == "" {
		missing = append(missing, "id")
	}
	if reg.Password == "" {
		missing = append(missing, "password")
	}
	if reg.Name == "" {
		missing = append(missing, "name")
	}
	if reg.Mail == "" {
		missing = append(missing, "mail")
	}
	if reg.Tel == "" {
		missing = append(missing, "tel")
	}
	return missing
}
