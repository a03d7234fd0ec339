package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type forecastService struct {
	forecastRepository repository.Forecasts
}

func newForecastService(forecastRepository repository.Forecasts) *forecastService {
	return &forecastService{
		forecastRepository: forecastRepository,
	}
}

func (s *forecastService) List(ctx context.Context, status *domain.ForecastStatus) ([]*domain.Forecast, error) {
	return s.forecastRepository.List(ctx, status)
}

func (s *forecastService) Review(ctx context.Context, id uuid.UUID, approve bool, reviewedBy uuid.UUID) error {
	status := domain.ForecastRejected
	if approve {
		status = domain.ForecastApproved
	}

	if err := s.forecastRepository.Review(ctx, id, status, reviewedBy, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrForecastAlreadyReviewed
		}
		return fmt.Errorf("review forecast failed: %w", err)
	}

	return nil
}
