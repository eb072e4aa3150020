package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petclinic-console/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// visit_date is rendered without a zone, the way the visits service emits it.
const visitColumns = `
	visit_id, to_char(visit_date, 'YYYY-MM-DD"T"HH24:MI:SS'), description, pet_id, pet_name,
	owner_id, practitioner_id, vet_first_name, vet_last_name, status`

// visitRepository implements VisitRepository using PostgreSQL.
type visitRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVisitRepository creates a new PostgreSQL-backed visit repository.
func NewVisitRepository(pool *pgxpool.Pool, logger zerolog.Logger) VisitRepository {
	return &visitRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "visit").Logger(),
	}
}

// List returns visits ordered by date.
func (r *visitRepository) List(ctx context.Context, f VisitFilter) ([]model.Visit, error) {
	var (
		where []string
		args  []any
	)
	if f.PractitionerID != "" {
		args = append(args, f.PractitionerID)
		where = append(where, fmt.Sprintf("practitioner_id = $%d", len(args)))
	}
	if f.OwnerID != "" {
		args = append(args, f.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}

	query := `SELECT ` + visitColumns + ` FROM visits`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY visit_date, visit_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query visits")
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	visits := []model.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan visit row")
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating visit rows")
		return nil, fmt.Errorf("error iterating visits: %w", err)
	}

	return visits, nil
}

// GetByID returns a single visit.
func (r *visitRepository) GetByID(ctx context.Context, id string) (*model.Visit, error) {
	v, err := scanVisit(r.pool.QueryRow(ctx, `SELECT `+visitColumns+` FROM visits WHERE visit_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("visit_id", id).Msg("visit not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("visit_id", id).Msg("failed to query visit")
		return nil, fmt.Errorf("failed to query visit: %w", err)
	}
	return &v, nil
}

// UpdateStatus sets the status of a visit and returns the updated row.
func (r *visitRepository) UpdateStatus(ctx context.Context, id string, status model.VisitStatus) (*model.Visit, error) {
	query := `UPDATE visits SET status = $2 WHERE visit_id = $1 RETURNING ` + visitColumns

	v, err := scanVisit(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).
			Str("visit_id", id).
			Str("status", string(status)).
			Msg("failed to update visit status")
		return nil, fmt.Errorf("failed to update visit status: %w", err)
	}
	return &v, nil
}

// Delete removes a visit.
func (r *visitRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE visit_id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("visit_id", id).Msg("failed to delete visit")
		return false, fmt.Errorf("failed to delete visit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanVisit(row pgx.Row) (model.Visit, error) {
	var (
		v      model.Visit
		status string
	)
	err := row.Scan(
		&v.VisitID,
		&v.VisitDate,
		&v.Description,
		&v.PetID,
		&v.PetName,
		&v.OwnerID,
		&v.PractitionerID,
		&v.VetFirstName,
		&v.VetLastName,
		&status,
	)
	v.Status = model.VisitStatus(status)
	return v, err
}
