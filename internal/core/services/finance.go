package services

import (
	"math"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

// moneyEpsilon is the tolerance used for all deposit/price equality
// comparisons, absorbing float rounding on two-decimal amounts.
const moneyEpsilon = 0.01

// Financials is the per-booking output of the computation engine. NetAgency
// is derived for reporting and never persisted.
type Financials struct {
	Revenue             float64
	AgencyCommission    float64
	AssistantCommission float64
	NetAgency           float64
	SupplierShare       float64
	Tax                 float64
	Pax                 int
}

// sanitizeAmount coerces invalid numeric input to zero. Upstream validation
// is an external concern; the engine must not propagate NaN or negatives.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// InferRentalType derives the concrete rental subtype for legacy rows with
// no explicit type. Insurance or supplement charges mean MOTO; a supplier
// with no deposit against a positive price means BOAT; everything else is
// CAR. The BOAT branch also captures some zero-deposit CAR rentals — kept
// as-is for compatibility with historical data.
func InferRentalType(b *domain.Booking) domain.RentalType {
	if b.RentalType != nil {
		return *b.RentalType
	}
	if b.InsurancePrice > 0 || b.SupplementPrice > 0 {
		return domain.RentalMoto
	}
	if b.Supplier != "" && b.Deposit == 0 && b.Price > 0 {
		return domain.RentalBoat
	}
	return domain.RentalCar
}

// Compute derives one booking's financial contribution: cash-basis revenue,
// the agency and assistant commissions, and the supplier's share.
//
// REJECTED bookings must be excluded before this point; REFUNDED bookings
// reach here only when a partial deposit was retained.
func Compute(b *domain.Booking, refs *ReferenceSet) Financials {
	price := sanitizeAmount(b.Price)
	deposit := sanitizeAmount(b.Deposit)
	if deposit > price+moneyEpsilon {
		deposit = price
	}

	fin := Financials{
		Revenue: deposit,
		Tax:     sanitizeAmount(b.Tax),
		Pax:     b.GroupSize(),
	}

	switch b.Product.Kind {
	case domain.KindSpecial:
		// Pass-through services: the full collected amount is agency
		// commission, no supplier involved.
		fin.AgencyCommission = fin.Revenue

	case domain.KindRental:
		switch InferRentalType(b) {
		case domain.RentalMoto:
			taxable := price - sanitizeAmount(b.InsurancePrice) - sanitizeAmount(b.SupplementPrice)
			if taxable < 0 {
				taxable = 0
			}
			fin.Revenue = 0
			fin.AgencyCommission = taxable * sanitizeAmount(b.CommissionPercentage) / 100
			fin.SupplierShare = price - fin.AgencyCommission
		case domain.RentalBoat:
			fin.Revenue = 0
			fin.AgencyCommission = price * sanitizeAmount(b.CommissionPercentage) / 100
			fin.SupplierShare = price - fin.AgencyCommission
		default:
			fin.AgencyCommission = applyRule(ResolveCommission(b, refs), fin.Revenue, fin.Pax)
			fin.SupplierShare = price - fin.AgencyCommission
		}

	default:
		fin.AgencyCommission = applyRule(ResolveCommission(b, refs), fin.Revenue, fin.Pax)
		fin.SupplierShare = fin.Revenue
	}

	assistant := assistantRule(b, refs)
	switch assistant.Type {
	case domain.CommissionFixed:
		fin.AssistantCommission = assistant.Value * float64(fin.Pax)
	default:
		fin.AssistantCommission = fin.AgencyCommission * assistant.Value / 100
	}

	fin.NetAgency = fin.AgencyCommission - fin.AssistantCommission
	return fin
}

func applyRule(rule CommissionRule, revenue float64, pax int) float64 {
	value := sanitizeAmount(rule.Value)
	if rule.Type == domain.CommissionFixed {
		return float64(pax) * value
	}
	return revenue * value / 100
}

// amountsEqual compares two monetary amounts within the engine tolerance.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) <= moneyEpsilon
}
