package service

import (
	"context"
	"fmt"

	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/queue/client"
	"github.com/traderacademy/backoffice/internal/queue/task"
	"github.com/traderacademy/backoffice/internal/repository"
)

const (
	AudienceLeads      = "leads"
	AudienceConverted  = "converted_leads"
	AudienceAffiliates = "affiliates"
)

type notificationService struct {
	leadRepository      repository.Leads
	affiliateRepository repository.Affiliates
}

func newNotificationService(leadRepository repository.Leads, affiliateRepository repository.Affiliates) *notificationService {
	return &notificationService{
		leadRepository:      leadRepository,
		affiliateRepository: affiliateRepository,
	}
}

// SendBulk fans out one queued email task per recipient. Delivery retries
// are per task; a failed enqueue aborts the fan-out and reports how many
// tasks made it.
func (s *notificationService) SendBulk(ctx context.Context, audience string, subject string, body string) (int, error) {
	emails, err := s.resolveAudience(ctx, audience)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, email := range emails {
		t, err := task.NewNotificationTask(email, subject, body)
		if err != nil {
			return enqueued, fmt.Errorf("create notification task failed: %w", err)
		}

		if _, err := client.GetClient(ctx).EnqueueContext(ctx, t); err != nil {
			return enqueued, fmt.Errorf("enqueue notification task failed: %w", err)
		}
		enqueued++
	}

	return enqueued, nil
}

func (s *notificationService) resolveAudience(ctx context.Context, audience string) ([]string, error) {
	switch audience {
	case AudienceLeads:
		return s.leadRepository.ListEmails(ctx, nil)
	case AudienceConverted:
		status := domain.LeadConverted
		return s.leadRepository.ListEmails(ctx, &status)
	case AudienceAffiliates:
		return s.affiliateRepository.ListEmails(ctx)
	default:
		return nil, ErrUnknownAudience
	}
}
