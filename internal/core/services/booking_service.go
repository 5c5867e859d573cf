package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/ports"
)

// BookingService applies lifecycle transitions to stored bookings. Every
// successful mutation re-derives the expiration flag and bumps the report
// cache generation.
type BookingService struct {
	bookingRepo     ports.BookingRepository
	refRepo         ports.ReferenceRepository
	cache           *redis.Client
	adminAgencyName string
	now             func() time.Time
}

func NewBookingService(bookingRepo ports.BookingRepository, refRepo ports.ReferenceRepository, cache *redis.Client, adminAgencyName string) *BookingService {
	return &BookingService{
		bookingRepo:     bookingRepo,
		refRepo:         refRepo,
		cache:           cache,
		adminAgencyName: adminAgencyName,
		now:             time.Now,
	}
}

func (s *BookingService) Settle(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return SettleBalance(b)
	})
}

func (s *BookingService) ToggleOption(ctx context.Context, bookingID uuid.UUID, on bool) (*domain.Booking, error) {
	return s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return SetOption(b, on)
	})
}

func (s *BookingService) SetPaymentType(ctx context.Context, bookingID uuid.UUID, pt domain.PaymentType) (*domain.Booking, error) {
	return s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return SetPaymentType(b, pt)
	})
}

// Refund records the retained amount as the booking's final deposit. The
// retained amount is computed by the caller.
func (s *BookingService) Refund(ctx context.Context, bookingID uuid.UUID, retained float64) (*domain.Booking, error) {
	return s.mutate(ctx, bookingID, func(b *domain.Booking) error {
		return Refund(b, retained)
	})
}

func (s *BookingService) mutate(ctx context.Context, bookingID uuid.UUID, apply func(*domain.Booking) error) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking not found: %w", err)
	}

	if err := apply(booking); err != nil {
		return nil, err
	}

	refs, err := LoadReferenceSet(ctx, s.refRepo, s.adminAgencyName)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}

	deadline, _ := ExpirationDeadline(booking, refs)
	RecomputeExpiration(booking, deadline, s.now())

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.bumpReportGeneration(ctx)
	return booking, nil
}

// RunExpirationSweep periodically re-derives the expired flag for bookings
// whose deadline may have passed since their last update.
func (s *BookingService) RunExpirationSweep(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	log.Println("Background Worker started: Checking expired bookings every 1 hour...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.sweepExpired(ctx)
		}
	}
}

func (s *BookingService) sweepExpired(ctx context.Context) {
	bookings, err := s.bookingRepo.ListUnsettled(ctx)
	if err != nil {
		log.Printf("Error fetching unsettled bookings: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	refs, err := LoadReferenceSet(ctx, s.refRepo, s.adminAgencyName)
	if err != nil {
		log.Printf("Error loading reference tables for expiration sweep: %v", err)
		return
	}

	now := s.now()
	expired := 0
	for i := range bookings {
		b := &bookings[i]

		deadline, ok := ExpirationDeadline(b, refs)
		if !ok {
			continue
		}

		wasExpired := b.IsExpired
		RecomputeExpiration(b, deadline, now)
		if b.IsExpired == wasExpired {
			continue
		}

		if err := s.bookingRepo.Update(ctx, b); err != nil {
			log.Printf("Failed to flag booking %s as expired: %v", b.ID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Printf("Flagged %d bookings as expired.", expired)
		s.bumpReportGeneration(ctx)
	}
}

func (s *BookingService) bumpReportGeneration(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Incr(ctx, reportGenerationKey).Err(); err != nil {
		log.Printf("Failed to bump report generation: %v", err)
	}
}
