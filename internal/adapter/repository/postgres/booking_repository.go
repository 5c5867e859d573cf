package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, created_by, created_at,
	excursion_id, transfer_id, is_rental, rental_type, special_type,
	adults, children, price, deposit, tax, original_price,
	payment_type, is_option, is_expired, approval_status,
	insurance_price, supplement_price, commission_percentage,
	assistant_commission, assistant_commission_type, supplier
`

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, bookingID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}

	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
	UPDATE bookings
	SET payment_type = $1, deposit = $2, is_option = $3, is_expired = $4
	WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		booking.PaymentType, booking.Deposit, booking.IsOption, booking.IsExpired, booking.ID)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ListUnsettled fetches candidates for the expiration sweep: options and
// partial deposits not yet flagged.
func (r *BookingRepository) ListUnsettled(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings
	WHERE payment_type = 'DEPOSIT' AND is_expired = false
	LIMIT 500`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled bookings: %w", err)
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// ListForReport applies the coarse filter criteria in SQL. Rental and
// special subtypes are refined by the report engine after the fetch, since
// legacy rows need inference to know their concrete subtype.
func (r *BookingRepository) ListForReport(ctx context.Context, filter domain.ReportFilter) ([]domain.Booking, error) {
	var conditions []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		y, m, d := filter.To.Date()
		endOfDay := time.Date(y, m, d, 0, 0, 0, 0, filter.To.Location()).AddDate(0, 0, 1)
		conditions = append(conditions, "created_at < "+arg(endOfDay))
	}
	if len(filter.AgencyIDs) > 0 {
		conditions = append(conditions,
			"created_by IN (SELECT id FROM users WHERE agency_id = ANY("+arg(pq.Array(filter.AgencyIDs))+"))")
	}
	if len(filter.AssistantIDs) > 0 {
		conditions = append(conditions, "created_by = ANY("+arg(pq.Array(filter.AssistantIDs))+")")
	}
	if len(filter.ExcursionIDs) > 0 {
		conditions = append(conditions, "excursion_id = ANY("+arg(pq.Array(filter.ExcursionIDs))+")")
	}
	if len(filter.Suppliers) > 0 {
		conditions = append(conditions, "supplier = ANY("+arg(pq.Array(filter.Suppliers))+")")
	}
	if kinds := coarseKinds(filter.ProductTypes); len(kinds) > 0 {
		conditions = append(conditions, "("+strings.Join(kinds, " OR ")+")")
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}

// coarseKinds maps the requested subtypes back to the product-kind
// predicates SQL can answer without inference.
func coarseKinds(types []domain.ProductFilter) []string {
	var kinds []string
	seen := make(map[string]bool)
	add := func(cond string) {
		if !seen[cond] {
			seen[cond] = true
			kinds = append(kinds, cond)
		}
	}

	for _, t := range types {
		switch {
		case t == domain.FilterExcursion:
			add("excursion_id IS NOT NULL")
		case t == domain.FilterTransfer:
			add("transfer_id IS NOT NULL")
		case strings.HasPrefix(string(t), "RENTAL_"):
			add("is_rental")
		case strings.HasPrefix(string(t), "SPECIAL_"):
			add("special_type IS NOT NULL")
		}
	}

	return kinds
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b             domain.Booking
		excursionID   uuid.NullUUID
		transferID    uuid.NullUUID
		isRental      bool
		rentalType    sql.NullString
		specialType   sql.NullString
		originalPrice sql.NullFloat64
		asstComm      sql.NullFloat64
		asstCommType  sql.NullString
		supplier      sql.NullString
	)

	err := row.Scan(
		&b.ID, &b.CreatedBy, &b.CreatedAt,
		&excursionID, &transferID, &isRental, &rentalType, &specialType,
		&b.Adults, &b.Children, &b.Price, &b.Deposit, &b.Tax, &originalPrice,
		&b.PaymentType, &b.IsOption, &b.IsExpired, &b.ApprovalStatus,
		&b.InsurancePrice, &b.SupplementPrice, &b.CommissionPercentage,
		&asstComm, &asstCommType, &supplier,
	)
	if err != nil {
		return nil, err
	}

	switch {
	case excursionID.Valid:
		id := excursionID.UUID
		b.Product = domain.ProductRef{Kind: domain.KindExcursion, ExcursionID: &id}
	case transferID.Valid:
		id := transferID.UUID
		b.Product = domain.ProductRef{Kind: domain.KindTransfer, TransferID: &id}
	case isRental:
		b.Product = domain.ProductRef{Kind: domain.KindRental}
		if rentalType.Valid {
			rt := domain.RentalType(rentalType.String)
			b.RentalType = &rt
		}
	case specialType.Valid:
		st := domain.SpecialServiceType(specialType.String)
		b.Product = domain.ProductRef{Kind: domain.KindSpecial, Special: &st}
	}

	if originalPrice.Valid {
		v := originalPrice.Float64
		b.OriginalPrice = &v
	}
	if asstComm.Valid {
		v := asstComm.Float64
		b.AssistantCommission = &v
	}
	if asstCommType.Valid {
		ct := domain.CommissionType(asstCommType.String)
		b.AssistantCommissionType = &ct
	}
	if supplier.Valid {
		b.Supplier = supplier.String
	}

	return &b, nil
}
