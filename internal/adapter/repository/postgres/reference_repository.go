package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
)

type ReferenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) ListAgencies(ctx context.Context) ([]domain.Agency, error) {
	query := `
	SELECT id, name, default_commission, commission_type,
	       assistant_commission, assistant_commission_type
	FROM agencies
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list agencies: %w", err)
	}

	defer rows.Close()

	var agencies []domain.Agency
	for rows.Next() {
		var a domain.Agency
		var asstComm sql.NullFloat64
		var asstType sql.NullString

		if err := rows.Scan(&a.ID, &a.Name, &a.DefaultCommission, &a.CommissionType, &asstComm, &asstType); err != nil {
			return nil, err
		}

		if asstComm.Valid {
			a.AssistantCommission = asstComm.Float64
		}
		if asstType.Valid {
			a.AssistantCommissionType = domain.CommissionType(asstType.String)
		}

		agencies = append(agencies, a)
	}

	return agencies, rows.Err()
}

func (r *ReferenceRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, first_name, last_name, email, role, agency_id FROM users`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var agencyID uuid.NullUUID

		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &agencyID); err != nil {
			return nil, err
		}

		if agencyID.Valid {
			id := agencyID.UUID
			u.AgencyID = &id
		}

		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *ReferenceRepository) ListExcursions(ctx context.Context) ([]domain.Excursion, error) {
	query := `SELECT id, name, date, confirmation_deadline FROM excursions`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list excursions: %w", err)
	}

	defer rows.Close()

	var excursions []domain.Excursion
	for rows.Next() {
		var e domain.Excursion
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.ConfirmationDeadline); err != nil {
			return nil, err
		}

		excursions = append(excursions, e)
	}

	return excursions, rows.Err()
}

func (r *ReferenceRepository) ListTransfers(ctx context.Context) ([]domain.Transfer, error) {
	query := `SELECT id, name, service_date FROM transfers`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}

	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(&t.ID, &t.Name, &t.ServiceDate); err != nil {
			return nil, err
		}

		transfers = append(transfers, t)
	}

	return transfers, rows.Err()
}

// ListCommissionOverrides merges the excursion and transfer override
// tables; product ids never collide across the two.
func (r *ReferenceRepository) ListCommissionOverrides(ctx context.Context) ([]domain.CommissionOverride, error) {
	query := `
	SELECT excursion_id, agency_id, commission_value, commission_type
	FROM excursion_commission_overrides
	UNION ALL
	SELECT transfer_id, agency_id, commission_value, commission_type
	FROM transfer_commission_overrides
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list commission overrides: %w", err)
	}

	defer rows.Close()

	var overrides []domain.CommissionOverride
	for rows.Next() {
		var o domain.CommissionOverride
		if err := rows.Scan(&o.ProductID, &o.AgencyID, &o.Value, &o.Type); err != nil {
			return nil, err
		}

		overrides = append(overrides, o)
	}

	return overrides, rows.Err()
}
