package repository

import (
	"context"
	"fmt"

	"petclinic-console/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// vetRepository implements VetRepository using PostgreSQL.
type vetRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVetRepository creates a new PostgreSQL-backed vet repository.
func NewVetRepository(pool *pgxpool.Pool, logger zerolog.Logger) VetRepository {
	return &vetRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "vet").Logger(),
	}
}

func (r *vetRepository) List(ctx context.Context) ([]model.Vet, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT vet_id, first_name, last_name, email, phone_number, active
		FROM vets
		ORDER BY vet_id`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vets")
		return nil, fmt.Errorf("failed to query vets: %w", err)
	}
	defer rows.Close()

	vets := []model.Vet{}
	for rows.Next() {
		var v model.Vet
		if err := rows.Scan(&v.VetID, &v.FirstName, &v.LastName, &v.Email, &v.PhoneNumber, &v.Active); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan vet row")
			return nil, fmt.Errorf("failed to scan vet: %w", err)
		}
		vets = append(vets, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vets: %w", err)
	}
	return vets, nil
}

// billRepository implements BillRepository using PostgreSQL.
type billRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBillRepository creates a new PostgreSQL-backed bill repository.
func NewBillRepository(pool *pgxpool.Pool, logger zerolog.Logger) BillRepository {
	return &billRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "bill").Logger(),
	}
}

func (r *billRepository) List(ctx context.Context, status model.BillStatus) ([]model.Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT bill_id, customer_id, owner_first_name, owner_last_name, visit_type, vet_id,
		       to_char(bill_date, 'YYYY-MM-DD'), amount::float8, bill_status, to_char(due_date, 'YYYY-MM-DD')
		FROM bills
		WHERE $1::text = '' OR bill_status = $1::text
		ORDER BY bill_date, bill_id`, string(status))
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(status)).Msg("failed to query bills")
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	bills := []model.Bill{}
	for rows.Next() {
		var (
			b          model.Bill
			billStatus string
		)
		err := rows.Scan(
			&b.BillID,
			&b.CustomerID,
			&b.OwnerFirstName,
			&b.OwnerLastName,
			&b.VisitType,
			&b.VetID,
			&b.Date,
			&b.Amount,
			&billStatus,
			&b.DueDate,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan bill row")
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		b.BillStatus = model.BillStatus(billStatus)
		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}
	return bills, nil
}
