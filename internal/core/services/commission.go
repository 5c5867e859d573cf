package services

import (
	"github.com/google/uuid"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

// NoAgencyLabel is the placeholder reported when no agency resolves for a
// booking's creator.
const NoAgencyLabel = "No Agency"

// CommissionRule is the resolved commission for one booking: either a
// percentage of revenue or a fixed amount per pax.
type CommissionRule struct {
	Type  domain.CommissionType
	Value float64
}

// ResolveCommission picks the commission rule for a booking.
//
// Excursions and transfers first consult the per-product override table for
// the creator's agency, then the agency default. Rentals and special
// services always use the agency default. With no resolvable agency the
// commission is zero.
func ResolveCommission(b *domain.Booking, refs *ReferenceSet) CommissionRule {
	agency, ok := refs.AgencyFor(b)
	if !ok {
		return CommissionRule{Type: domain.CommissionPercentage, Value: 0}
	}

	if productID, overridable := overridableProductID(b); overridable {
		if rule, found := refs.Overrides[OverrideKey{ProductID: productID, AgencyID: agency.ID}]; found {
			return rule
		}
	}

	return CommissionRule{Type: agency.CommissionType, Value: agency.DefaultCommission}
}

// overridableProductID returns the product id eligible for an override
// lookup. Only excursions and transfers carry override rules.
func overridableProductID(b *domain.Booking) (id uuid.UUID, ok bool) {
	switch b.Product.Kind {
	case domain.KindExcursion:
		if b.Product.ExcursionID != nil {
			return *b.Product.ExcursionID, true
		}
	case domain.KindTransfer:
		if b.Product.TransferID != nil {
			return *b.Product.TransferID, true
		}
	}
	return id, false
}

// assistantRule resolves the assistant's secondary commission: the
// booking-level override wins, then the agency defaults, then zero.
func assistantRule(b *domain.Booking, refs *ReferenceSet) CommissionRule {
	if b.AssistantCommission != nil {
		ruleType := domain.CommissionPercentage
		if b.AssistantCommissionType != nil {
			ruleType = *b.AssistantCommissionType
		}
		return CommissionRule{Type: ruleType, Value: *b.AssistantCommission}
	}

	if agency, ok := refs.AgencyFor(b); ok && agency.AssistantCommissionType != "" {
		return CommissionRule{Type: agency.AssistantCommissionType, Value: agency.AssistantCommission}
	}

	return CommissionRule{Type: domain.CommissionPercentage, Value: 0}
}
