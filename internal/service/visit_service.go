package service

import (
	"context"
	"fmt"

	"petclinic-console/internal/model"
	"petclinic-console/internal/repository"

	"github.com/rs/zerolog"
)

// visitService implements VisitService.
type visitService struct {
	visitRepo repository.VisitRepository
	logger    zerolog.Logger
}

// NewVisitService creates a new visit service.
func NewVisitService(visitRepo repository.VisitRepository, logger zerolog.Logger) VisitService {
	return &visitService{
		visitRepo: visitRepo,
		logger:    logger.With().Str("service", "visit").Logger(),
	}
}

// List returns visits, narrowed to one practitioner or one owner when given.
func (s *visitService) List(ctx context.Context, practitionerID, ownerID string) ([]model.Visit, error) {
	visits, err := s.visitRepo.List(ctx, repository.VisitFilter{
		PractitionerID: practitionerID,
		OwnerID:        ownerID,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("practitioner_id", practitionerID).
			Str("owner_id", ownerID).
			Msg("failed to list visits")
		return nil, fmt.Errorf("failed to get visits: %w", err)
	}
	return visits, nil
}

// UpdateStatus moves a visit to status.
func (s *visitService) UpdateStatus(ctx context.Context, id string, status model.VisitStatus) (*model.Visit, error) {
	if !status.Valid() {
		s.logger.Warn().Str("visit_id", id).Str("status", string(status)).Msg("invalid visit status")
		return nil, model.ErrInvalidStatus
	}

	visit, err := s.visitRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update visit status: %w", err)
	}
	if visit == nil {
		return nil, model.ErrVisitNotFound
	}

	s.logger.Info().
		Str("visit_id", id).
		Str("status", string(status)).
		Msg("visit status updated")
	return visit, nil
}

// Delete removes a visit.
func (s *visitService) Delete(ctx context.Context, id string) error {
	deleted, err := s.visitRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	if !deleted {
		return model.ErrVisitNotFound
	}

	s.logger.Info().Str("visit_id", id).Msg("visit deleted")
	return nil
}
