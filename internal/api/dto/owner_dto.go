package dto

import "github.com/delfood/owner-service/internal/domain"

// OwnerSignUpRequest payload for new owner accounts.
type OwnerSignUpRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
	Tel      string `json:"tel"`
}

// OwnerLoginRequest payload for login.
type OwnerLoginRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// UpdateOwnerContactRequest payload for mail/tel changes. Absent fields
// stay nil and are left untouched; the current password must be re-proved.
type UpdateOwnerContactRequest struct {
	Password string  `json:"password"`
	Mail     *string `json:"mail"`
	Tel      *string `json:"tel"`
}

// UpdateOwnerPasswordRequest payload for password changes.
type UpdateOwnerPasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

// ResultResponse carries a bare outcome tag.
type ResultResponse struct {
	Result string `json:"result"`
}

// OwnerLoginResponse carries the login outcome plus, on success, the
// owner's outward projection.
type OwnerLoginResponse struct {
	Result    string            `json:"result"`
	OwnerInfo *domain.OwnerInfo `json:"owner_info,omitempty"`
}

// OwnerInfoResponse wraps the profile projection.
type OwnerInfoResponse struct {
	OwnerInfo *domain.OwnerInfo `json:"owner_info"`
}
