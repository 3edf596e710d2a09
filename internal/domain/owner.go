package domain

import "time"

// OwnerStatus represents lifecycle states for a merchant account.
type OwnerStatus string

const (
	OwnerStatusActive  OwnerStatus = "ACTIVE"
	OwnerStatusDeleted OwnerStatus = "DELETED"
)

// Owner is the domain model for merchants who run shops on the platform.
// PasswordHash never leaves the service layer; outward responses carry
// OwnerInfo instead.
type Owner struct {
	ID           string
	Name         string
	Mail         string
	Tel          string
	PasswordHash string
	Status       OwnerStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OwnerInfo is the outward projection of an Owner. It has no password
// field at all, so the credential cannot be serialized by accident.
type OwnerInfo struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Mail      string      `json:"mail"`
	Tel       string      `json:"tel"`
	Status    OwnerStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Info projects the owner into its outward shape.
func (o *Owner) Info() *OwnerInfo {
	return &OwnerInfo{
		ID:        o.ID,
		Name:      o.Name,
		Mail:      o.Mail,
		Tel:       o.Tel,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OwnerRegistration carries the fields required to sign up a new owner.
type OwnerRegistration struct {
	ID       string
	Password string
	Name     string
	Mail     string
	Tel      string
}
