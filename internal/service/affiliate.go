package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type affiliateService struct {
	affiliateRepository repository.Affiliates
}

func newAffiliateService(affiliateRepository repository.Affiliates) *affiliateService {
	return &affiliateService{
		affiliateRepository: affiliateRepository,
	}
}

func (s *affiliateService) List(ctx context.Context) ([]*domain.Affiliate, error) {
	return s.affiliateRepository.List(ctx)
}

func (s *affiliateService) Create(ctx context.Context, name, email string) (*domain.Affiliate, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate affiliate id failed: %w", err)
	}

	affiliate := &domain.Affiliate{
		ID:      id,
		Name:    name,
		Email:   NormalizeEmail(email),
		RefCode: newRefCode(id),
		Active:  true,
	}

	if err := s.affiliateRepository.Create(ctx, affiliate); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAffiliateExists
		}
		return nil, fmt.Errorf("create affiliate failed: %w", err)
	}

	return affiliate, nil
}

func (s *affiliateService) GetByRefCode(ctx context.Context, refCode string) (*domain.Affiliate, error) {
	affiliate, err := s.affiliateRepository.GetByRefCode(ctx, refCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrAffiliateNotFound
		}
		return nil, fmt.Errorf("get affiliate by ref code failed: %w", err)
	}

	return affiliate, nil
}

func (s *affiliateService) TrackClick(ctx context.Context, refCode string) error {
	if err := s.affiliateRepository.IncrementClicks(ctx, refCode); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrAffiliateNotFound
		}
		return fmt.Errorf("track click failed: %w", err)
	}

	return nil
}

func (s *affiliateService) TrackSignup(ctx context.Context, refCode string) error {
	if err := s.affiliateRepository.IncrementSignups(ctx, refCode); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrAffiliateNotFound
		}
		return fmt.Errorf("track signup failed: %w", err)
	}

	return nil
}

func (s *affiliateService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.affiliateRepository.Deactivate(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrAffiliateNotFound
		}
		return fmt.Errorf("deactivate affiliate failed: %w", err)
	}

	return nil
}

// newRefCode derives a short shareable code from the affiliate id.
func newRefCode(id uuid.UUID) string {
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}
