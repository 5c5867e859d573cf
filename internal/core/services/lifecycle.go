package services

import (
	"errors"
	"time"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

var (
	ErrNothingToRefund   = errors.New("nothing to refund: no deposit collected")
	ErrInvalidTransition = errors.New("invalid booking state transition")
)

// Lifecycle actions accepted by the payment endpoints.
const (
	ActionSettle       = "settle"
	ActionToggleOption = "toggle_option"
	ActionSetPayment   = "set_payment"
	ActionRefund       = "refund"
)

var transitionMap = map[string][]domain.PaymentType{
	ActionSettle:       {domain.PaymentDeposit},
	ActionToggleOption: {domain.PaymentDeposit, domain.PaymentBalance},
	ActionSetPayment:   {domain.PaymentDeposit, domain.PaymentBalance},
	ActionRefund:       {domain.PaymentDeposit, domain.PaymentBalance},
}

func ValidTransition(action string, from domain.PaymentType) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, pt := range allowed {
		if pt == from {
			return true
		}
	}
	return false
}

// SettleBalance marks the full price as collected. A settled booking is no
// longer an option and can no longer auto-expire.
func SettleBalance(b *domain.Booking) error {
	if !ValidTransition(ActionSettle, b.PaymentType) {
		return ErrInvalidTransition
	}
	b.PaymentType = domain.PaymentBalance
	b.Deposit = b.Price
	b.IsOption = false
	return nil
}

// SetOption toggles the unguaranteed-option flag. Turning it on clears the
// collected deposit; turning it off on a BALANCE booking restores the full
// price as collected.
func SetOption(b *domain.Booking, on bool) error {
	if !ValidTransition(ActionToggleOption, b.PaymentType) {
		return ErrInvalidTransition
	}
	b.IsOption = on
	if on {
		b.Deposit = 0
	} else if b.PaymentType == domain.PaymentBalance {
		b.Deposit = b.Price
	}
	return nil
}

// SetPaymentType switches the payment state. Moving to BALANCE settles the
// deposit to the full price immediately.
func SetPaymentType(b *domain.Booking, pt domain.PaymentType) error {
	if !ValidTransition(ActionSetPayment, b.PaymentType) {
		return ErrInvalidTransition
	}
	b.PaymentType = pt
	if pt == domain.PaymentBalance {
		b.Deposit = b.Price
		b.IsOption = false
	}
	return nil
}

// Refund terminates the booking's active lifecycle. The retained amount is
// computed upstream and becomes the booking's deposit; a refund with no
// collected deposit must be rejected before it reaches the engine.
func Refund(b *domain.Booking, retained float64) error {
	if !ValidTransition(ActionRefund, b.PaymentType) {
		return ErrInvalidTransition
	}
	if b.Deposit <= 0 {
		return ErrNothingToRefund
	}
	if retained < 0 {
		retained = 0
	}
	if retained > b.Price {
		retained = b.Price
	}
	b.PaymentType = domain.PaymentRefunded
	b.Deposit = retained
	b.IsOption = false
	return nil
}

// ExpirationDeadline returns the moment past which an unsettled booking
// expires: the excursion's confirmation deadline, or the transfer's service
// date at start of day. Rentals and special services have none.
func ExpirationDeadline(b *domain.Booking, refs *ReferenceSet) (time.Time, bool) {
	switch b.Product.Kind {
	case domain.KindExcursion:
		if b.Product.ExcursionID != nil {
			if exc, ok := refs.ExcursionsByID[*b.Product.ExcursionID]; ok {
				return exc.ConfirmationDeadline, true
			}
		}
	case domain.KindTransfer:
		if b.Product.TransferID != nil {
			if tr, ok := refs.TransfersByID[*b.Product.TransferID]; ok {
				y, m, d := tr.ServiceDate.Date()
				return time.Date(y, m, d, 0, 0, 0, 0, tr.ServiceDate.Location()), true
			}
		}
	}
	return time.Time{}, false
}

// RecomputeExpiration re-derives the expired flag. A booking expires once
// its deadline passes while it is still an option or has only a partial
// deposit; a fully settled booking never auto-expires.
func RecomputeExpiration(b *domain.Booking, deadline time.Time, now time.Time) {
	if b.PaymentType == domain.PaymentBalance {
		b.IsExpired = false
		return
	}
	if deadline.IsZero() || now.Before(deadline) {
		b.IsExpired = false
		return
	}
	b.IsExpired = b.IsOption || b.PaymentType == domain.PaymentDeposit
}
