package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type lifecycleRequest struct {
	BookingID   string  `json:"booking_id"`
	IsOption    bool    `json:"is_option"`
	PaymentType string  `json:"payment_type"`
	Retained    float64 `json:"retained"`
}

func (h *BookingHandler) Settle(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(req lifecycleRequest, id uuid.UUID) (*domain.Booking, error) {
		return h.svc.Settle(r.Context(), id)
	})
}

func (h *BookingHandler) ToggleOption(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(req lifecycleRequest, id uuid.UUID) (*domain.Booking, error) {
		return h.svc.ToggleOption(r.Context(), id, req.IsOption)
	})
}

func (h *BookingHandler) SetPaymentType(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(req lifecycleRequest, id uuid.UUID) (*domain.Booking, error) {
		pt := domain.PaymentType(req.PaymentType)
		if pt != domain.PaymentDeposit && pt != domain.PaymentBalance {
			return nil, errors.New("invalid payment type")
		}
		return h.svc.SetPaymentType(r.Context(), id, pt)
	})
}

func (h *BookingHandler) Refund(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(req lifecycleRequest, id uuid.UUID) (*domain.Booking, error) {
		return h.svc.Refund(r.Context(), id, req.Retained)
	})
}

func (h *BookingHandler) apply(w http.ResponseWriter, r *http.Request, op func(lifecycleRequest, uuid.UUID) (*domain.Booking, error)) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed"})
		return
	}

	var req lifecycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid json body"})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid booking id"})
		return
	}

	booking, err := op(req, bookingID)
	if err != nil {
		writeLifecycleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"booking_id":   booking.ID.String(),
		"payment_type": booking.PaymentType,
		"deposit":      booking.Deposit,
		"is_option":    booking.IsOption,
		"is_expired":   booking.IsExpired,
	})
}

func writeLifecycleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNothingToRefund), errors.Is(err, services.ErrInvalidTransition):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	case strings.Contains(err.Error(), "not found"):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	case strings.Contains(err.Error(), "invalid"):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
	}
}
