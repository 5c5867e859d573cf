package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/ports"
)

// OverrideKey identifies one per-product commission rule.
type OverrideKey struct {
	ProductID uuid.UUID
	AgencyID  uuid.UUID
}

// ReferenceSet is the read-only lookup data the engine needs alongside a
// booking batch. It is built once per report or mutation and never shared
// across calls.
type ReferenceSet struct {
	AgenciesByID   map[uuid.UUID]domain.Agency
	UsersByID      map[uuid.UUID]domain.User
	ExcursionsByID map[uuid.UUID]domain.Excursion
	TransfersByID  map[uuid.UUID]domain.Transfer
	Overrides      map[OverrideKey]CommissionRule

	// AdminAgencyID is the operator's own agency, used as fallback for
	// bookings created by an ADMIN user with no agency of their own.
	AdminAgencyID *uuid.UUID
}

func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{
		AgenciesByID:   make(map[uuid.UUID]domain.Agency),
		UsersByID:      make(map[uuid.UUID]domain.User),
		ExcursionsByID: make(map[uuid.UUID]domain.Excursion),
		TransfersByID:  make(map[uuid.UUID]domain.Transfer),
		Overrides:      make(map[OverrideKey]CommissionRule),
	}
}

// LoadReferenceSet assembles the lookup tables from the reference
// repository. A failed override fetch degrades to agency defaults instead
// of failing the whole batch; any other failure is returned to the caller.
func LoadReferenceSet(ctx context.Context, repo ports.ReferenceRepository, adminAgencyName string) (*ReferenceSet, error) {
	refs := NewReferenceSet()

	agencies, err := repo.ListAgencies(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range agencies {
		refs.AgenciesByID[a.ID] = a
		if a.Name == adminAgencyName {
			id := a.ID
			refs.AdminAgencyID = &id
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		refs.UsersByID[u.ID] = u
	}

	excursions, err := repo.ListExcursions(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range excursions {
		refs.ExcursionsByID[e.ID] = e
	}

	transfers, err := repo.ListTransfers(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range transfers {
		refs.TransfersByID[t.ID] = t
	}

	overrides, err := repo.ListCommissionOverrides(ctx)
	if err != nil {
		log.Printf("Commission override table unavailable, falling back to agency defaults: %v", err)
		return refs, nil
	}
	for _, o := range overrides {
		refs.Overrides[OverrideKey{ProductID: o.ProductID, AgencyID: o.AgencyID}] = CommissionRule{
			Type:  o.Type,
			Value: o.Value,
		}
	}

	return refs, nil
}

// AgencyFor resolves the agency a booking belongs to through its creator,
// substituting the admin agency for agency-less ADMIN users.
func (r *ReferenceSet) AgencyFor(b *domain.Booking) (domain.Agency, bool) {
	user, ok := r.UsersByID[b.CreatedBy]
	if !ok {
		return domain.Agency{}, false
	}

	agencyID := user.AgencyID
	if agencyID == nil && user.Role == domain.RoleAdmin {
		agencyID = r.AdminAgencyID
	}
	if agencyID == nil {
		return domain.Agency{}, false
	}

	agency, ok := r.AgenciesByID[*agencyID]
	return agency, ok
}
