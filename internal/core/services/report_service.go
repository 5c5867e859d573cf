package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/ports"
)

const (
	reportGenerationKey = "reports:generation"
	reportCacheTTL      = 5 * time.Minute
)

// ReportService fetches the booking batch and reference tables, runs the
// pure fold, and caches the resulting payload in Redis. Cache keys embed a
// generation counter bumped on every booking mutation, so stale payloads
// simply stop being addressed.
type ReportService struct {
	bookingRepo     ports.BookingRepository
	refRepo         ports.ReferenceRepository
	cache           *redis.Client
	adminAgencyName string
}

func NewReportService(bookingRepo ports.BookingRepository, refRepo ports.ReferenceRepository, cache *redis.Client, adminAgencyName string) *ReportService {
	return &ReportService{
		bookingRepo:     bookingRepo,
		refRepo:         refRepo,
		cache:           cache,
		adminAgencyName: adminAgencyName,
	}
}

func (s *ReportService) Generate(ctx context.Context, filter domain.ReportFilter) (*ReportPayload, error) {
	refs, err := LoadReferenceSet(ctx, s.refRepo, s.adminAgencyName)
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}

	key := s.cacheKey(ctx, filter)
	if key != "" {
		if data, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached ReportPayload
			if json.Unmarshal(data, &cached) == nil {
				return &cached, nil
			}
		}
	}

	bookings, err := s.bookingRepo.ListForReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	payload := BuildReport(bookings, filter, refs)

	if key != "" {
		if data, err := json.Marshal(payload); err == nil {
			if err := s.cache.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache report payload: %v", err)
			}
		}
	}

	return &payload, nil
}

// cacheKey returns "" when caching should be skipped for this call. Any
// Redis trouble here degrades to a plain recompute.
func (s *ReportService) cacheKey(ctx context.Context, filter domain.ReportFilter) string {
	if s.cache == nil {
		return ""
	}

	gen, err := s.cache.Get(ctx, reportGenerationKey).Result()
	if err == redis.Nil {
		gen = "0"
	} else if err != nil {
		log.Printf("Report cache unavailable: %v", err)
		return ""
	}

	raw, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("reports:%s:%x", gen, sum[:8])
}
