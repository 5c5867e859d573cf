package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
)

func TestBuildReport_EmptyInput(t *testing.T) {
	refs := services.NewReferenceSet()

	payload := services.BuildReport(nil, domain.ReportFilter{}, refs)

	assert.Equal(t, services.Summary{}, payload.Summary)
	assert.Empty(t, payload.ByAgency)
	assert.Empty(t, payload.BySupplier)
	assert.Empty(t, payload.ByAssistant)
	assert.Empty(t, payload.ByExcursion)
	assert.Empty(t, payload.ByTransfer)
	assert.Empty(t, payload.ByRentalType)
	assert.Empty(t, payload.BySpecialService)
	assert.NotNil(t, payload.ByAgency)
}

func TestBuildReport_GroupSumsMatchTotals(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	otherAgencyID := uuid.New()
	otherUserID := uuid.New()
	refs.AgenciesByID[otherAgencyID] = domain.Agency{
		ID:                otherAgencyID,
		Name:              "Blue Island",
		DefaultCommission: 5,
		CommissionType:    domain.CommissionPercentage,
	}
	refs.UsersByID[otherUserID] = domain.User{
		ID:       otherUserID,
		Email:    "other@example.com",
		AgencyID: &otherAgencyID,
	}

	b1 := excursionBooking(userID)
	b1.Price = 100
	b1.Deposit = 50
	b1.Supplier = "Boats Ltd"

	b2 := excursionBooking(otherUserID)
	b2.Price = 200
	b2.Deposit = 200
	b2.Tax = 4

	payload := services.BuildReport([]domain.Booking{b1, b2}, domain.ReportFilter{}, refs)

	assert.Equal(t, 250.0, payload.Summary.TotalRevenue)
	assert.Equal(t, 2, payload.Summary.TotalBookings)

	var byAgencyRevenue, byAgencyCommission float64
	for _, g := range payload.ByAgency {
		byAgencyRevenue += g.Revenue
		byAgencyCommission += g.AgencyCommission
	}
	assert.InDelta(t, payload.Summary.TotalRevenue, byAgencyRevenue, 0.001)
	assert.InDelta(t, payload.Summary.TotalAgencyCommission, byAgencyCommission, 0.001)

	var bySupplierRevenue float64
	for _, g := range payload.BySupplier {
		bySupplierRevenue += g.Revenue
	}
	assert.InDelta(t, payload.Summary.TotalRevenue, bySupplierRevenue, 0.001)
}

func TestBuildReport_BrokerageRentalsContributeZeroRevenue(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	rt := domain.RentalBoat
	b := domain.Booking{
		ID:                   uuid.New(),
		CreatedBy:            userID,
		CreatedAt:            time.Now(),
		Product:              domain.ProductRef{Kind: domain.KindRental},
		Adults:               1,
		Price:                900,
		CommissionPercentage: 10,
		RentalType:           &rt,
		PaymentType:          domain.PaymentDeposit,
		ApprovalStatus:       domain.ApprovalApproved,
	}

	payload := services.BuildReport([]domain.Booking{b}, domain.ReportFilter{}, refs)

	assert.Equal(t, 0.0, payload.Summary.TotalRevenue)
	assert.Equal(t, 90.0, payload.Summary.TotalAgencyCommission)
	if assert.Len(t, payload.ByRentalType, 1) {
		assert.Equal(t, "BOAT", payload.ByRentalType[0].Label)
	}
}

func TestBuildReport_RefundedHandling(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	fullRefund := excursionBooking(userID)
	fullRefund.Price = 100
	fullRefund.Deposit = 0
	fullRefund.PaymentType = domain.PaymentRefunded

	fullyPaidRefund := excursionBooking(userID)
	fullyPaidRefund.Price = 100
	fullyPaidRefund.Deposit = 100
	fullyPaidRefund.PaymentType = domain.PaymentRefunded

	partialRefund := excursionBooking(userID)
	partialRefund.Price = 100
	partialRefund.Deposit = 35
	partialRefund.PaymentType = domain.PaymentRefunded

	bookings := []domain.Booking{fullRefund, fullyPaidRefund, partialRefund}
	payload := services.BuildReport(bookings, domain.ReportFilter{}, refs)

	// Only the partial retention counts; its retained deposit is revenue.
	assert.Equal(t, 1, payload.Summary.TotalBookings)
	assert.Equal(t, 35.0, payload.Summary.TotalRevenue)
}

func TestBuildReport_RejectedExcluded(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	b := excursionBooking(userID)
	b.Price = 100
	b.Deposit = 100
	b.ApprovalStatus = domain.ApprovalRejected

	payload := services.BuildReport([]domain.Booking{b}, domain.ReportFilter{}, refs)

	assert.Equal(t, 0, payload.Summary.TotalBookings)
	assert.Equal(t, 0.0, payload.Summary.TotalRevenue)
}

func TestBuildReport_SubtypeRefilterDropsUnrequestedRentals(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	car := domain.Booking{
		ID:             uuid.New(),
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
		Product:        domain.ProductRef{Kind: domain.KindRental},
		Adults:         1,
		Price:          100,
		Deposit:        100,
		PaymentType:    domain.PaymentBalance,
		ApprovalStatus: domain.ApprovalApproved,
	}

	moto := car
	moto.ID = uuid.New()
	moto.InsurancePrice = 10
	moto.CommissionPercentage = 15

	filter := domain.ReportFilter{ProductTypes: []domain.ProductFilter{domain.FilterRentalMoto}}
	payload := services.BuildReport([]domain.Booking{car, moto}, filter, refs)

	assert.Equal(t, 1, payload.Summary.TotalBookings)
	if assert.Len(t, payload.ByRentalType, 1) {
		assert.Equal(t, "MOTO", payload.ByRentalType[0].Label)
	}
}

func TestBuildReport_DateRangeInclusiveEndOfDay(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	inRange := excursionBooking(userID)
	inRange.Price = 100
	inRange.Deposit = 100
	inRange.CreatedAt = time.Date(2024, 6, 30, 23, 50, 0, 0, time.UTC)

	outOfRange := excursionBooking(userID)
	outOfRange.Price = 50
	outOfRange.Deposit = 50
	outOfRange.CreatedAt = time.Date(2024, 7, 1, 0, 10, 0, 0, time.UTC)

	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	payload := services.BuildReport([]domain.Booking{inRange, outOfRange}, domain.ReportFilter{To: &to}, refs)

	assert.Equal(t, 1, payload.Summary.TotalBookings)
	assert.Equal(t, 100.0, payload.Summary.TotalRevenue)
}

func TestBuildReport_Labels(t *testing.T) {
	refs := services.NewReferenceSet()

	excID := uuid.New()
	refs.ExcursionsByID[excID] = domain.Excursion{
		ID:   excID,
		Name: "Paxos Cruise",
		Date: time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC),
	}

	// Creator with no name parts and no agency.
	userID := uuid.New()
	refs.UsersByID[userID] = domain.User{ID: userID, Email: "nameless@example.com"}

	b := domain.Booking{
		ID:             uuid.New(),
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
		Product:        domain.ProductRef{Kind: domain.KindExcursion, ExcursionID: &excID},
		Adults:         1,
		Price:          60,
		Deposit:        60,
		PaymentType:    domain.PaymentBalance,
		ApprovalStatus: domain.ApprovalApproved,
	}

	payload := services.BuildReport([]domain.Booking{b}, domain.ReportFilter{}, refs)

	if assert.Len(t, payload.ByExcursion, 1) {
		assert.Equal(t, "Paxos Cruise-2024-08-02", payload.ByExcursion[0].Label)
	}
	if assert.Len(t, payload.ByAssistant, 1) {
		assert.Equal(t, "nameless@example.com", payload.ByAssistant[0].Label)
	}
	if assert.Len(t, payload.BySupplier, 1) {
		assert.Equal(t, services.NoSupplierLabel, payload.BySupplier[0].Label)
	}
	if assert.Len(t, payload.ByAgency, 1) {
		assert.Equal(t, services.NoAgencyLabel, payload.ByAgency[0].Label)
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	refs, userID := newRefs(domain.CommissionPercentage, 10)

	b1 := excursionBooking(userID)
	b1.Price = 100
	b1.Deposit = 50

	b2 := excursionBooking(userID)
	b2.Price = 80
	b2.Deposit = 80
	b2.Supplier = "Boats Ltd"

	bookings := []domain.Booking{b1, b2}
	snapshot := make([]domain.Booking, len(bookings))
	copy(snapshot, bookings)

	first := services.BuildReport(bookings, domain.ReportFilter{}, refs)
	second := services.BuildReport(bookings, domain.ReportFilter{}, refs)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, bookings)
}
