package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type leadService struct {
	leadRepository repository.Leads
}

func newLeadService(leadRepository repository.Leads) *leadService {
	return &leadService{
		leadRepository: leadRepository,
	}
}

func (s *leadService) List(ctx context.Context, page, limit int, status *domain.LeadStatus) ([]*domain.Lead, int64, error) {
	return s.leadRepository.List(ctx, page, limit, status)
}

func (s *leadService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leadRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("get lead by id failed: %w", err)
	}

	return lead, nil
}

func (s *leadService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus, notes string) error {
	if err := s.leadRepository.UpdateStatus(ctx, id, status, notes); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("update lead status failed: %w", err)
	}

	return nil
}

func (s *leadService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.leadRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrLeadNotFound
		}
		return fmt.Errorf("delete lead failed: %w", err)
	}

	return nil
}
