package domain

// Business conclusions are modeled as tagged result variants rather than
// errors: every expected outcome of an account operation is a status
// constant the caller switches over. Go errors are reserved for
// persistence and infrastructure faults.

// SignUpStatus enumerates signup outcomes.
type SignUpStatus string

const (
	SignUpCreated      SignUpStatus = "SUCCESS"
	SignUpIDDuplicated SignUpStatus = "ID_DUPLICATED"
)

// SignUpResult is the outcome of a signup attempt.
type SignUpResult struct {
	Status SignUpStatus
}

// IDAvailability reports whether an owner id is still free.
type IDAvailability string

const (
	IDAvailable IDAvailability = "AVAILABLE"
	IDTaken     IDAvailability = "TAKEN"
)

// LoginStatus enumerates login outcomes.
type LoginStatus string

const (
	LoginSuccess LoginStatus = "SUCCESS"
	// LoginInvalidCredentials covers both unknown id and wrong password;
	// the two are never distinguished outward.
	LoginInvalidCredentials LoginStatus = "FAIL"
	// LoginAccountDeleted is reported only when the credentials were
	// correct but the account status is DELETED.
	LoginAccountDeleted LoginStatus = "DELETED"
)

// LoginResult is the outcome of a login attempt. Owner is set only on
// LoginSuccess.
type LoginResult struct {
	Status LoginStatus
	Owner  *OwnerInfo
}

// UpdateStatus enumerates profile and password update outcomes.
type UpdateStatus string

const (
	UpdateSuccess            UpdateStatus = "SUCCESS"
	UpdateEmptyContent       UpdateStatus = "EMPTY_CONTENT"
	UpdateEmptyPassword      UpdateStatus = "EMPTY_PASSWORD"
	UpdatePasswordMismatch   UpdateStatus = "PASSWORD_MISMATCH"
	UpdatePasswordDuplicated UpdateStatus = "PASSWORD_DUPLICATED"
)

// UpdateResult is the outcome of a contact or password update.
type UpdateResult struct {
	Status UpdateStatus
}
