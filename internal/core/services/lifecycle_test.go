package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   domain.PaymentType
		valid  bool
	}{
		{services.ActionSettle, domain.PaymentDeposit, true},
		{services.ActionSettle, domain.PaymentBalance, false},
		{services.ActionSettle, domain.PaymentRefunded, false},
		{services.ActionToggleOption, domain.PaymentDeposit, true},
		{services.ActionToggleOption, domain.PaymentBalance, true},
		{services.ActionToggleOption, domain.PaymentRefunded, false},
		{services.ActionSetPayment, domain.PaymentDeposit, true},
		{services.ActionSetPayment, domain.PaymentRefunded, false},
		{services.ActionRefund, domain.PaymentDeposit, true},
		{services.ActionRefund, domain.PaymentBalance, true},
		{services.ActionRefund, domain.PaymentRefunded, false},
		{"unknown", domain.PaymentDeposit, false},
	}

	for _, tt := range cases {
		if got := services.ValidTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestSettleBalance(t *testing.T) {
	b := domain.Booking{Price: 120, Deposit: 40, PaymentType: domain.PaymentDeposit, IsOption: true}

	err := services.SettleBalance(&b)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentBalance, b.PaymentType)
	assert.Equal(t, 120.0, b.Deposit)
	assert.False(t, b.IsOption)
}

func TestSettleBalance_RefundedRejected(t *testing.T) {
	b := domain.Booking{Price: 120, Deposit: 40, PaymentType: domain.PaymentRefunded}

	err := services.SettleBalance(&b)

	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestSetOption_OnClearsDeposit(t *testing.T) {
	b := domain.Booking{Price: 120, Deposit: 40, PaymentType: domain.PaymentDeposit}

	err := services.SetOption(&b, true)

	assert.NoError(t, err)
	assert.True(t, b.IsOption)
	assert.Equal(t, 0.0, b.Deposit)
}

func TestSetOption_OffOnBalanceRestoresDeposit(t *testing.T) {
	b := domain.Booking{Price: 120, Deposit: 0, PaymentType: domain.PaymentBalance, IsOption: true}

	err := services.SetOption(&b, false)

	assert.NoError(t, err)
	assert.False(t, b.IsOption)
	assert.Equal(t, 120.0, b.Deposit)
}

func TestSetPaymentType_BalanceSettlesImmediately(t *testing.T) {
	b := domain.Booking{Price: 80, Deposit: 20, PaymentType: domain.PaymentDeposit, IsOption: true}

	err := services.SetPaymentType(&b, domain.PaymentBalance)

	assert.NoError(t, err)
	assert.Equal(t, 80.0, b.Deposit)
	assert.False(t, b.IsOption)
}

func TestRefund_RetainsPartialDeposit(t *testing.T) {
	b := domain.Booking{Price: 100, Deposit: 40, PaymentType: domain.PaymentDeposit}

	err := services.Refund(&b, 25)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, b.PaymentType)
	assert.Equal(t, 25.0, b.Deposit)
}

func TestRefund_NothingCollected(t *testing.T) {
	b := domain.Booking{Price: 100, Deposit: 0, PaymentType: domain.PaymentDeposit}

	err := services.Refund(&b, 10)

	assert.ErrorIs(t, err, services.ErrNothingToRefund)
	assert.Equal(t, domain.PaymentDeposit, b.PaymentType)
}

func TestRefund_ClampsRetainedAmount(t *testing.T) {
	b := domain.Booking{Price: 100, Deposit: 100, PaymentType: domain.PaymentBalance}

	err := services.Refund(&b, 250)

	assert.NoError(t, err)
	assert.Equal(t, 100.0, b.Deposit)
}

func TestRecomputeExpiration(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	cases := []struct {
		name     string
		booking  domain.Booking
		deadline time.Time
		want     bool
	}{
		{
			name:     "option past deadline expires",
			booking:  domain.Booking{PaymentType: domain.PaymentDeposit, IsOption: true},
			deadline: past,
			want:     true,
		},
		{
			name:     "partial deposit past deadline expires",
			booking:  domain.Booking{PaymentType: domain.PaymentDeposit, Price: 100, Deposit: 30},
			deadline: past,
			want:     true,
		},
		{
			name:     "settled booking never expires",
			booking:  domain.Booking{PaymentType: domain.PaymentBalance, Price: 100, Deposit: 100, IsExpired: true},
			deadline: past,
			want:     false,
		},
		{
			name:     "future deadline keeps booking alive",
			booking:  domain.Booking{PaymentType: domain.PaymentDeposit, IsOption: true},
			deadline: future,
			want:     false,
		},
		{
			name:    "no deadline means no expiration",
			booking: domain.Booking{PaymentType: domain.PaymentDeposit, IsOption: true},
			want:    false,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.booking
			services.RecomputeExpiration(&b, tt.deadline, now)
			assert.Equal(t, tt.want, b.IsExpired)
		})
	}
}

func TestExpirationDeadline_TransferUsesStartOfServiceDay(t *testing.T) {
	refs := services.NewReferenceSet()

	trID := uuid.New()
	refs.TransfersByID[trID] = domain.Transfer{
		ID:          trID,
		Name:        "Airport Shuttle",
		ServiceDate: time.Date(2024, 7, 20, 15, 30, 0, 0, time.UTC),
	}

	b := domain.Booking{Product: domain.ProductRef{Kind: domain.KindTransfer, TransferID: &trID}}

	deadline, ok := services.ExpirationDeadline(&b, refs)

	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), deadline)
}

func TestExpirationDeadline_RentalHasNone(t *testing.T) {
	refs := services.NewReferenceSet()

	b := domain.Booking{Product: domain.ProductRef{Kind: domain.KindRental}}

	_, ok := services.ExpirationDeadline(&b, refs)

	assert.False(t, ok)
}
