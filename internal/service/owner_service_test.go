package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/delfood/owner-service/internal/auth"
	"github.com/delfood/owner-service/internal/config"
	"github.com/delfood/owner-service/internal/domain"
	"github.com/delfood/owner-service/internal/events"
	"github.com/delfood/owner-service/internal/repository"
	"github.com/delfood/owner-service/internal/session"
	apperrors "github.com/delfood/owner-service/pkg/util"
)

// fakeOwnerRepo is an in-memory OwnerRepository with the same contract as
// the Postgres implementation: pgx.ErrNoRows for absence and password
// mismatch, ErrDuplicateID from Insert when the id exists.
type fakeOwnerRepo struct {
	mu          sync.Mutex
	owners      map[string]*domain.Owner
	insertCalls int
}

var _ repository.OwnerRepository = (*fakeOwnerRepo)(nil)

func newFakeOwnerRepo() *fakeOwnerRepo {
	return &fakeOwnerRepo{owners: make(map[string]*domain.Owner)}
}

func (f *fakeOwnerRepo) Insert(_ context.Context, owner *domain.Owner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if _, ok := f.owners[owner.ID]; ok {
		return repository.ErrDuplicateID
	}
	now := time.Now()
	owner.CreatedAt, owner.UpdatedAt = now, now
	cp := *owner
	f.owners[owner.ID] = &cp
	return nil
}

func (f *fakeOwnerRepo) FindByID(_ context.Context, id string) (*domain.Owner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *owner
	return &cp, nil
}

func (f *fakeOwnerRepo) FindByIDAndPassword(ctx context.Context, id, password string) (*domain.Owner, error) {
	owner, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.ComparePassword(owner.PasswordHash, password); err != nil {
		return nil, pgx.ErrNoRows
	}
	return owner, nil
}

func (f *fakeOwnerRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.owners[id]
	return ok, nil
}

func (f *fakeOwnerRepo) UpdateContact(_ context.Context, id string, mail, tel *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if mail != nil {
		owner.Mail = *mail
	}
	if tel != nil {
		owner.Tel = *tel
	}
	owner.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOwnerRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.owners[id]
	if !ok {
		return pgx.ErrNoRows
	}
	owner.PasswordHash = passwordHash
	owner.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOwnerRepo) setStatus(id string, status domain.OwnerStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners[id].Status = status
}

// raceRepo never sees the row in ExistsByID, forcing the insert constraint
// to arbitrate duplicate signups.
type raceRepo struct {
	*fakeOwnerRepo
}

func (r *raceRepo) ExistsByID(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func newOwnerService(repo repository.OwnerRepository) (*OwnerService, session.Store) {
	sessions := session.NewMemoryStore()
	svc := NewOwnerService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, OwnerDependencies{
		OwnerRepo:  repo,
		Sessions:   sessions,
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})
	return svc, sessions
}

func registration(id string) domain.OwnerRegistration {
	return domain.OwnerRegistration{
		ID:       id,
		Password: "p@ss",
		Name:     "Chef Kim",
		Mail:     "a@b.com",
		Tel:      "010-1234-5678",
	}
}

func TestSignUpCreatesActiveOwner(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)

	result, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	assert.Equal(t, domain.SignUpCreated, result.Status)

	owner, err := repo.FindByID(context.Background(), "chef1")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerStatusActive, owner.Status)
	assert.NotEqual(t, "p@ss", owner.PasswordHash)
	assert.NoError(t, auth.ComparePassword(owner.PasswordHash, "p@ss"))
}

func TestSignUpRejectsMissingFields(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)

	reg := registration("chef1")
	reg.Mail = ""
	_, err := svc.SignUp(context.Background(), reg)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Zero(t, repo.insertCalls)
}

func TestSignUpDuplicateIDFromPreCheck(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)

	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	calls := repo.insertCalls

	result, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	assert.Equal(t, domain.SignUpIDDuplicated, result.Status)
	assert.Equal(t, calls, repo.insertCalls, "pre-check must short-circuit before insert")
}

func TestSignUpDuplicateIDFromInsertConstraint(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(&raceRepo{repo})

	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	// the pre-check is blind, so the constraint violation must be remapped
	result, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	assert.Equal(t, domain.SignUpIDDuplicated, result.Status)
}

func TestConcurrentSignUpYieldsSingleCreated(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(&raceRepo{repo})

	const attempts = 8
	results := make(chan domain.SignUpStatus, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.SignUp(context.Background(), registration("chef1"))
			assert.NoError(t, err)
			results <- result.Status
		}()
	}
	wg.Wait()
	close(results)

	created := 0
	for status := range results {
		if status == domain.SignUpCreated {
			created++
		} else {
			assert.Equal(t, domain.SignUpIDDuplicated, status)
		}
	}
	assert.Equal(t, 1, created)
}

func TestCheckIDAvailability(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)

	availability, err := svc.CheckIDAvailability(context.Background(), "chef1")
	require.NoError(t, err)
	assert.Equal(t, domain.IDAvailable, availability)

	_, err = svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	availability, err = svc.CheckIDAvailability(context.Background(), "chef1")
	require.NoError(t, err)
	assert.Equal(t, domain.IDTaken, availability)
}

func TestLoginSuccessBindsSession(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, sessions := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "tok-1", "chef1", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.LoginSuccess, result.Status)
	require.NotNil(t, result.Owner)
	assert.Equal(t, "chef1", result.Owner.ID)

	ownerID, err := sessions.OwnerID(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "chef1", ownerID)
}

func TestLoginFailureLeavesSessionAnonymous(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, sessions := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	for _, tc := range []struct {
		name     string
		id       string
		password string
	}{
		{"wrong password", "chef1", "nope"},
		{"unknown id", "ghost", "p@ss"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Login(context.Background(), "tok-1", tc.id, tc.password)
			require.NoError(t, err)
			assert.Equal(t, domain.LoginInvalidCredentials, result.Status)
			assert.Nil(t, result.Owner)

			_, err = sessions.OwnerID(context.Background(), "tok-1")
			assert.ErrorIs(t, err, session.ErrAnonymous)
		})
	}
}

func TestLoginDeletedAccount(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, sessions := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	repo.setStatus("chef1", domain.OwnerStatusDeleted)

	// correct credentials must still never authenticate a deleted account
	result, err := svc.Login(context.Background(), "tok-1", "chef1", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.LoginAccountDeleted, result.Status)
	assert.Nil(t, result.Owner)

	_, err = sessions.OwnerID(context.Background(), "tok-1")
	assert.ErrorIs(t, err, session.ErrAnonymous)
}

func TestLogoutIsIdempotent(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, sessions := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), "tok-1", "chef1", "p@ss")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "tok-1"))
	require.NoError(t, svc.Logout(context.Background(), "tok-1"))

	_, err = sessions.OwnerID(context.Background(), "tok-1")
	assert.ErrorIs(t, err, session.ErrAnonymous)
}

func TestProfileOmitsCredential(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	info, err := svc.Profile(context.Background(), "chef1")
	require.NoError(t, err)
	assert.Equal(t, "chef1", info.ID)
	assert.Equal(t, "a@b.com", info.Mail)

	raw, err := json.Marshal(info)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "p@ss")
}

func strPtr(s string) *string { return &s }

func TestUpdateContactPasswordMismatch(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	result, err := svc.UpdateContact(context.Background(), "chef1", strPtr("new@b.com"), nil, "wrong")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdatePasswordMismatch, result.Status)

	owner, _ := repo.FindByID(context.Background(), "chef1")
	assert.Equal(t, "a@b.com", owner.Mail)
}

func TestUpdateContactEmptyContent(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	result, err := svc.UpdateContact(context.Background(), "chef1", nil, nil, "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateEmptyContent, result.Status)
}

func TestUpdateContactPartialUpdate(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	result, err := svc.UpdateContact(context.Background(), "chef1", strPtr("new@b.com"), nil, "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateSuccess, result.Status)

	owner, _ := repo.FindByID(context.Background(), "chef1")
	assert.Equal(t, "new@b.com", owner.Mail)
	assert.Equal(t, "010-1234-5678", owner.Tel, "omitted field must stay untouched")
}

func TestUpdatePasswordEmptyInput(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	for _, tc := range []struct {
		name    string
		current string
		newPass string
	}{
		{"missing current", "", "newpw"},
		{"missing new", "p@ss", ""},
		{"both missing", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.UpdatePassword(context.Background(), "chef1", tc.current, tc.newPass)
			require.NoError(t, err)
			assert.Equal(t, domain.UpdateEmptyPassword, result.Status)
		})
	}
}

func TestUpdatePasswordMismatch(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)

	result, err := svc.UpdatePassword(context.Background(), "chef1", "wrong", "newpw")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdatePasswordMismatch, result.Status)
}

func TestUpdatePasswordDuplicatedNeverPersists(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, _ := newOwnerService(repo)
	_, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	before, _ := repo.FindByID(context.Background(), "chef1")

	result, err := svc.UpdatePassword(context.Background(), "chef1", "p@ss", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdatePasswordDuplicated, result.Status)

	after, _ := repo.FindByID(context.Background(), "chef1")
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestPasswordChangeLifecycle(t *testing.T) {
	repo := newFakeOwnerRepo()
	svc, sessions := newOwnerService(repo)

	result, err := svc.SignUp(context.Background(), registration("chef1"))
	require.NoError(t, err)
	require.Equal(t, domain.SignUpCreated, result.Status)

	login, err := svc.Login(context.Background(), "tok-1", "chef1", "p@ss")
	require.NoError(t, err)
	require.Equal(t, domain.LoginSuccess, login.Status)
	assert.Equal(t, "chef1", login.Owner.ID)

	dup, err := svc.UpdatePassword(context.Background(), "chef1", "p@ss", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdatePasswordDuplicated, dup.Status)

	changed, err := svc.UpdatePassword(context.Background(), "chef1", "p@ss", "newpw")
	require.NoError(t, err)
	assert.Equal(t, domain.UpdateSuccess, changed.Status)

	// the old credential is gone
	old, err := svc.Login(context.Background(), "tok-2", "chef1", "p@ss")
	require.NoError(t, err)
	assert.Equal(t, domain.LoginInvalidCredentials, old.Status)

	fresh, err := svc.Login(context.Background(), "tok-2", "chef1", "newpw")
	require.NoError(t, err)
	assert.Equal(t, domain.LoginSuccess, fresh.Status)

	// the session bound before the change stays valid
	ownerID, err := sessions.OwnerID(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "chef1", ownerID)
}

func TestPersistenceFaultsPropagate(t *testing.T) {
	repo := &faultyRepo{err: errors.New("connection reset")}
	svc, _ := newOwnerService(repo)

	_, err := svc.SignUp(context.Background(), registration("chef1"))
	assert.ErrorContains(t, err, "connection reset")

	_, err = svc.CheckIDAvailability(context.Background(), "chef1")
	assert.ErrorContains(t, err, "connection reset")

	_, err = svc.Login(context.Background(), "tok", "chef1", "p@ss")
	assert.ErrorContains(t, err, "connection reset")
}

type faultyRepo struct {
	err error
}

var _ repository.OwnerRepository = (*faultyRepo)(nil)

func (f *faultyRepo) Insert(context.Context, *domain.Owner) error { return f.err }
func (f *faultyRepo) FindByID(context.Context, string) (*domain.Owner, error) {
	return nil, f.err
}
func (f *faultyRepo) FindByIDAndPassword(context.Context, string, string) (*domain.Owner, error) {
	return nil, f.err
}
func (f *faultyRepo) ExistsByID(context.Context, string) (bool, error) { return false, f.err }
func (f *faultyRepo) UpdateContact(context.Context, string, *string, *string) error {
	return f.err
}
func (f *faultyRepo) UpdatePassword(context.Context, string, string) error { return f.err }
