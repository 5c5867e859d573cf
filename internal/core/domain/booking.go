package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentDeposit  PaymentType = "DEPOSIT"
	PaymentBalance  PaymentType = "BALANCE"
	PaymentRefunded PaymentType = "REFUNDED"
)

type ApprovalStatus string

const (
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type RentalType string

const (
	RentalCar  RentalType = "CAR"
	RentalMoto RentalType = "MOTO"
	RentalBoat RentalType = "BOAT"
)

type SpecialServiceType string

const (
	SpecialBracelet SpecialServiceType = "BRACELET"
	SpecialCityTax  SpecialServiceType = "CITY_TAX"
	SpecialAC       SpecialServiceType = "AC"
)

type CommissionType string

const (
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionFixed      CommissionType = "FIXED"
)

// ProductKind tags which product a booking is attached to. Exactly one
// linkage is populated per booking.
type ProductKind string

const (
	KindExcursion ProductKind = "EXCURSION"
	KindTransfer  ProductKind = "TRANSFER"
	KindRental    ProductKind = "RENTAL"
	KindSpecial   ProductKind = "SPECIAL"
)

// ProductRef is the tagged product linkage of a booking. Only the field
// matching Kind is meaningful.
type ProductRef struct {
	Kind        ProductKind
	ExcursionID *uuid.UUID
	TransferID  *uuid.UUID
	Special     *SpecialServiceType
}

type Booking struct {
	ID        uuid.UUID
	CreatedBy uuid.UUID
	CreatedAt time.Time

	Product ProductRef

	Adults   int
	Children int

	Price         float64
	Deposit       float64
	Tax           float64
	OriginalPrice *float64

	PaymentType    PaymentType
	IsOption       bool
	IsExpired      bool
	ApprovalStatus ApprovalStatus

	// Rental-only fields. RentalType is nil on legacy rows; the concrete
	// subtype is inferred at computation time.
	RentalType           *RentalType
	InsurancePrice       float64
	SupplementPrice      float64
	CommissionPercentage float64

	// Booking-level assistant commission override. Falls back to the
	// creator's agency defaults when nil.
	AssistantCommission     *float64
	AssistantCommissionType *CommissionType

	// Supplier is matched by name, not by id.
	Supplier string
}

// GroupSize is always at least 1, even when both counts are zero on a
// malformed row.
func (b *Booking) GroupSize() int {
	n := b.Adults + b.Children
	if n < 1 {
		return 1
	}
	return n
}

func (b *Booking) IsRental() bool {
	return b.Product.Kind == KindRental
}
