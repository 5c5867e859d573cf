package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

// Fallback group labels for bookings with no supplier or a blank agency
// name.
const (
	NoSupplierLabel  = "Nessun Fornitore"
	BlankAgencyLabel = "Nessuna Agenzia"
)

const labelDateLayout = "2006-01-02"

// GroupTotals is one row of a breakdown list.
type GroupTotals struct {
	Label               string  `json:"label"`
	Revenue             float64 `json:"revenue"`
	AgencyCommission    float64 `json:"agency_commission"`
	AssistantCommission float64 `json:"assistant_commission"`
	NetAgency           float64 `json:"net_agency"`
	SupplierShare       float64 `json:"supplier_share"`
	Tax                 float64 `json:"tax"`
	Pax                 int     `json:"pax"`
	Count               int     `json:"count"`
}

type Summary struct {
	TotalRevenue             float64 `json:"total_revenue"`
	TotalAgencyCommission    float64 `json:"total_agency_commission"`
	TotalAssistantCommission float64 `json:"total_assistant_commission"`
	TotalNetAgency           float64 `json:"total_net_agency"`
	TotalTax                 float64 `json:"total_tax"`
	TotalPax                 int     `json:"total_pax"`
	TotalBookings            int     `json:"total_bookings"`
}

// ReportPayload is the full report: grand totals plus seven breakdown
// dimensions. Breakdown lists are sorted by label so identical input
// always yields identical output.
type ReportPayload struct {
	Summary          Summary       `json:"summary"`
	ByAgency         []GroupTotals `json:"by_agency"`
	BySupplier       []GroupTotals `json:"by_supplier"`
	ByAssistant      []GroupTotals `json:"by_assistant"`
	ByExcursion      []GroupTotals `json:"by_excursion"`
	ByTransfer       []GroupTotals `json:"by_transfer"`
	ByRentalType     []GroupTotals `json:"by_rental_type"`
	BySpecialService []GroupTotals `json:"by_special_service"`
}

// BuildReport folds a booking batch into grouped totals in a single pass.
// It is pure: input records are never mutated and no state survives the
// call. An empty batch yields zero totals and empty lists.
func BuildReport(bookings []domain.Booking, filter domain.ReportFilter, refs *ReferenceSet) ReportPayload {
	agg := newAggregation()

	for i := range bookings {
		b := &bookings[i]
		if !eligible(b) || !matchesFilter(b, filter, refs) {
			continue
		}
		agg.add(b, Compute(b, refs), refs)
	}

	return agg.payload()
}

// eligible applies the record-level exclusions: rejected bookings never
// count, and refunded bookings count only when a partial deposit was
// retained as a cancellation fee.
func eligible(b *domain.Booking) bool {
	if b.ApprovalStatus == domain.ApprovalRejected {
		return false
	}
	if b.PaymentType == domain.PaymentRefunded {
		return b.Deposit > moneyEpsilon && b.Deposit < b.Price && !amountsEqual(b.Deposit, b.Price)
	}
	return true
}

// matchesFilter re-checks every criterion even though the data layer
// already applied the coarse ones, so a pre-fetched batch can be narrowed
// without another round trip. The subtype check is the one the data layer
// cannot do: it needs the inferred rental/special subtype.
func matchesFilter(b *domain.Booking, f domain.ReportFilter, refs *ReferenceSet) bool {
	if f.From != nil && b.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil {
		y, m, d := f.To.Date()
		endOfDay := time.Date(y, m, d, 0, 0, 0, 0, f.To.Location()).AddDate(0, 0, 1)
		if !b.CreatedAt.Before(endOfDay) {
			return false
		}
	}
	if len(f.AgencyIDs) > 0 {
		agency, ok := refs.AgencyFor(b)
		if !ok || !containsID(f.AgencyIDs, agency.ID) {
			return false
		}
	}
	if len(f.AssistantIDs) > 0 && !containsID(f.AssistantIDs, b.CreatedBy) {
		return false
	}
	if len(f.Suppliers) > 0 && !containsString(f.Suppliers, b.Supplier) {
		return false
	}
	if len(f.ExcursionIDs) > 0 {
		if b.Product.Kind != domain.KindExcursion || b.Product.ExcursionID == nil ||
			!containsID(f.ExcursionIDs, *b.Product.ExcursionID) {
			return false
		}
	}
	if len(f.ProductTypes) > 0 && !containsProduct(f.ProductTypes, concreteProduct(b)) {
		return false
	}
	return true
}

// concreteProduct resolves the booking's product down to the inferred
// rental or special subtype. A rental fetched on the coarse is-rental flag
// is still dropped when its inferred subtype was not requested.
func concreteProduct(b *domain.Booking) domain.ProductFilter {
	switch b.Product.Kind {
	case domain.KindExcursion:
		return domain.FilterExcursion
	case domain.KindTransfer:
		return domain.FilterTransfer
	case domain.KindRental:
		return domain.ProductFilter("RENTAL_" + string(InferRentalType(b)))
	default:
		if b.Product.Special != nil {
			return domain.ProductFilter("SPECIAL_" + string(*b.Product.Special))
		}
		return ""
	}
}

type aggregation struct {
	summary  Summary
	agency   map[string]*GroupTotals
	supplier map[string]*GroupTotals
	agent    map[string]*GroupTotals
	excurs   map[string]*GroupTotals
	transfer map[string]*GroupTotals
	rental   map[string]*GroupTotals
	special  map[string]*GroupTotals
}

func newAggregation() *aggregation {
	return &aggregation{
		agency:   make(map[string]*GroupTotals),
		supplier: make(map[string]*GroupTotals),
		agent:    make(map[string]*GroupTotals),
		excurs:   make(map[string]*GroupTotals),
		transfer: make(map[string]*GroupTotals),
		rental:   make(map[string]*GroupTotals),
		special:  make(map[string]*GroupTotals),
	}
}

func (a *aggregation) add(b *domain.Booking, fin Financials, refs *ReferenceSet) {
	a.summary.TotalRevenue += fin.Revenue
	a.summary.TotalAgencyCommission += fin.AgencyCommission
	a.summary.TotalAssistantCommission += fin.AssistantCommission
	a.summary.TotalNetAgency += fin.NetAgency
	a.summary.TotalTax += fin.Tax
	a.summary.TotalPax += fin.Pax
	a.summary.TotalBookings++

	fold(a.agency, agencyLabel(b, refs), fin)
	fold(a.supplier, supplierLabel(b), fin)
	fold(a.agent, assistantLabel(b, refs), fin)

	switch b.Product.Kind {
	case domain.KindExcursion:
		fold(a.excurs, excursionLabel(b, refs), fin)
	case domain.KindTransfer:
		fold(a.transfer, transferLabel(b, refs), fin)
	case domain.KindRental:
		fold(a.rental, string(InferRentalType(b)), fin)
	case domain.KindSpecial:
		if b.Product.Special != nil {
			fold(a.special, string(*b.Product.Special), fin)
		}
	}
}

func fold(groups map[string]*GroupTotals, label string, fin Financials) {
	g, ok := groups[label]
	if !ok {
		g = &GroupTotals{Label: label}
		groups[label] = g
	}
	g.Revenue += fin.Revenue
	g.AgencyCommission += fin.AgencyCommission
	g.AssistantCommission += fin.AssistantCommission
	g.NetAgency += fin.NetAgency
	g.SupplierShare += fin.SupplierShare
	g.Tax += fin.Tax
	g.Pax += fin.Pax
	g.Count++
}

func (a *aggregation) payload() ReportPayload {
	return ReportPayload{
		Summary:          a.summary,
		ByAgency:         project(a.agency),
		BySupplier:       project(a.supplier),
		ByAssistant:      project(a.agent),
		ByExcursion:      project(a.excurs),
		ByTransfer:       project(a.transfer),
		ByRentalType:     project(a.rental),
		BySpecialService: project(a.special),
	}
}

func project(groups map[string]*GroupTotals) []GroupTotals {
	out := make([]GroupTotals, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

func agencyLabel(b *domain.Booking, refs *ReferenceSet) string {
	agency, ok := refs.AgencyFor(b)
	if !ok {
		return NoAgencyLabel
	}
	if agency.Name == "" {
		return BlankAgencyLabel
	}
	return agency.Name
}

func supplierLabel(b *domain.Booking) string {
	if b.Supplier == "" {
		return NoSupplierLabel
	}
	return b.Supplier
}

func assistantLabel(b *domain.Booking, refs *ReferenceSet) string {
	if user, ok := refs.UsersByID[b.CreatedBy]; ok {
		return user.DisplayName()
	}
	return b.CreatedBy.String()
}

func excursionLabel(b *domain.Booking, refs *ReferenceSet) string {
	if b.Product.ExcursionID == nil {
		return ""
	}
	if exc, ok := refs.ExcursionsByID[*b.Product.ExcursionID]; ok {
		return exc.Name + "-" + exc.Date.Format(labelDateLayout)
	}
	return b.Product.ExcursionID.String()
}

func transferLabel(b *domain.Booking, refs *ReferenceSet) string {
	if b.Product.TransferID == nil {
		return ""
	}
	if tr, ok := refs.TransfersByID[*b.Product.TransferID]; ok {
		return tr.Name + "-" + tr.ServiceDate.Format(labelDateLayout)
	}
	return b.Product.TransferID.String()
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func containsProduct(values []domain.ProductFilter, v domain.ProductFilter) bool {
	for _, p := range values {
		if p == v {
			return true
		}
	}
	return false
}
