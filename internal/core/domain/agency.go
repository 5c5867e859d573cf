package domain

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

type Agency struct {
	ID                uuid.UUID
	Name              string
	DefaultCommission float64
	CommissionType    CommissionType

	// Defaults applied to the assistant's secondary commission when the
	// booking carries no override of its own.
	AssistantCommission     float64
	AssistantCommissionType CommissionType
}

// CommissionOverride binds a per-product commission rule to one agency.
// ProductID references either an excursion or a transfer; rentals and
// special services never carry overrides.
type CommissionOverride struct {
	ProductID uuid.UUID
	AgencyID  uuid.UUID
	Value     float64
	Type      CommissionType
}

type User struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Role      Role
	AgencyID  *uuid.UUID
}

// DisplayName falls back to the email address when both name parts are
// blank.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
