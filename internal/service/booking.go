package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepository repository.Bookings
}

func newBookingService(bookingRepository repository.Bookings) *bookingService {
	return &bookingService{
		bookingRepository: bookingRepository,
	}
}

func (s *bookingService) List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error) {
	return s.bookingRepository.List(ctx, status)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	if err := s.bookingRepository.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update booking status failed: %w", err)
	}

	return nil
}
