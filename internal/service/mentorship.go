package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type mentorshipService struct {
	requestRepository repository.MentorshipRequests
}

func newMentorshipService(requestRepository repository.MentorshipRequests) *mentorshipService {
	return &mentorshipService{
		requestRepository: requestRepository,
	}
}

func (s *mentorshipService) List(ctx context.Context, status *domain.MentorshipStatus) ([]*domain.MentorshipRequest, error) {
	return s.requestRepository.List(ctx, status)
}

func (s *mentorshipService) Review(ctx context.Context, id uuid.UUID, status domain.MentorshipStatus, note string) error {
	if err := s.requestRepository.UpdateStatus(ctx, id, status, note); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("review mentorship request failed: %w", err)
	}

	return nil
}
