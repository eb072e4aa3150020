package service

import (
	"context"
	"fmt"

	"petclinic-console/internal/model"
	"petclinic-console/internal/repository"

	"github.com/rs/zerolog"
)

// clinicService implements ClinicService.
type clinicService struct {
	vetRepo  repository.VetRepository
	billRepo repository.BillRepository
	logger   zerolog.Logger
}

// NewClinicService creates a new clinic service.
func NewClinicService(vetRepo repository.VetRepository, billRepo repository.BillRepository, logger zerolog.Logger) ClinicService {
	return &clinicService{
		vetRepo:  vetRepo,
		billRepo: billRepo,
		logger:   logger.With().Str("service", "clinic").Logger(),
	}
}

func (s *clinicService) ListVets(ctx context.Context) ([]model.Vet, error) {
	vets, err := s.vetRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list vets")
		return nil, fmt.Errorf("failed to get vets: %w", err)
	}
	return vets, nil
}

// ListBills rejects statuses other than PAID, UNPAID and OVERDUE with
// model.ErrInvalidBillStatus.
func (s *clinicService) ListBills(ctx context.Context, requested model.BillStatus) ([]model.Bill, error) {
	status, ok := model.ParseBillStatus(string(requested))
	if !ok {
		s.logger.Warn().Str("status", string(requested)).Msg("invalid bill status")
		return nil, model.ErrInvalidBillStatus
	}

	bills, err := s.billRepo.List(ctx, status)
	if err != nil {
		s.logger.Error().Err(err).Str("status", string(status)).Msg("failed to list bills")
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	return bills, nil
}
