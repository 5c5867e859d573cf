package handler

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed"})
		return
	}

	var filter domain.ReportFilter
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid json body"})
		return
	}

	payload, err := h.svc.Generate(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
		return
	}

	roundPayload(payload)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(payload)
}

// roundPayload applies two-decimal display rounding. The engine itself
// keeps full precision; rounding is strictly a presentation concern.
func roundPayload(p *services.ReportPayload) {
	p.Summary.TotalRevenue = round2(p.Summary.TotalRevenue)
	p.Summary.TotalAgencyCommission = round2(p.Summary.TotalAgencyCommission)
	p.Summary.TotalAssistantCommission = round2(p.Summary.TotalAssistantCommission)
	p.Summary.TotalNetAgency = round2(p.Summary.TotalNetAgency)
	p.Summary.TotalTax = round2(p.Summary.TotalTax)

	for _, groups := range [][]services.GroupTotals{
		p.ByAgency, p.BySupplier, p.ByAssistant, p.ByExcursion,
		p.ByTransfer, p.ByRentalType, p.BySpecialService,
	} {
		for i := range groups {
			groups[i].Revenue = round2(groups[i].Revenue)
			groups[i].AgencyCommission = round2(groups[i].AgencyCommission)
			groups[i].AssistantCommission = round2(groups[i].AssistantCommission)
			groups[i].NetAgency = round2(groups[i].NetAgency)
			groups[i].SupplierShare = round2(groups[i].SupplierShare)
			groups[i].Tax = round2(groups[i].Tax)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
