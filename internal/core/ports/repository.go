package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	// ListForReport applies the coarse filter criteria (dates, ids,
	// suppliers, product kind); subtype refinement happens in the engine.
	ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.Booking, error)
	// ListUnsettled returns bookings that could still auto-expire:
	// options and partial deposits not yet flagged as expired.
	ListUnsettled(ctx context.Context) ([]domain.Booking, error)
}

type ReferenceRepository interface {
	ListAgencies(ctx context.Context) ([]domain.Agency, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListExcursions(ctx context.Context) ([]domain.Excursion, error)
	ListTransfers(ctx context.Context) ([]domain.Transfer, error)
	ListCommissionOverrides(ctx context.Context) ([]domain.CommissionOverride, error)
}
