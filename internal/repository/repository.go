package repository

import (
	"context"
	"time"

	"github.com/traderacademy/backoffice/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Admins             Admins
	OTPChallenges      OTPChallenges
	RefreshSessions    RefreshSessions
	Leads              Leads
	Affiliates         Affiliates
	Bookings           Bookings
	MentorshipRequests MentorshipRequests
	Courses            Courses
	Forecasts          Forecasts
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Admins:             newAdminRepository(db),
		OTPChallenges:      newOTPChallengeRepository(db),
		RefreshSessions:    newRefreshSessionRepository(db),
		Leads:              newLeadRepository(db),
		Affiliates:         newAffiliateRepository(db),
		Bookings:           newBookingRepository(db),
		MentorshipRequests: newMentorshipRequestRepository(db),
		Courses:            newCourseRepository(db),
		Forecasts:          newForecastRepository(db),
	}
}

type Admins interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
}

// OTPChallenges is the store behind the login-code engine. IncrementAttempts
// and MarkUsed are single conditional statements so that concurrent verifies
// cannot under-count attempts or double-accept a code.
type OTPChallenges interface {
	Create(ctx context.Context, challenge *domain.OTPChallenge) error
	GetActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.OTPChallenge, error)
	DeleteUnusedByEmail(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, id uuid.UUID) error
	MarkUsed(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type RefreshSessions interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByToken(ctx context.Context, token uuid.UUID) (*domain.RefreshSession, error)
	DeleteByToken(ctx context.Context, token uuid.UUID) error
}

type Leads interface {
	List(ctx context.Context, page, limit int, status *domain.LeadStatus) ([]*domain.Lead, int64, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEmails(ctx context.Context, status *domain.LeadStatus) ([]string, error)
}

type Affiliates interface {
	List(ctx context.Context) ([]*domain.Affiliate, error)
	Create(ctx context.Context, affiliate *domain.Affiliate) error
	GetByRefCode(ctx context.Context, refCode string) (*domain.Affiliate, error)
	IncrementClicks(ctx context.Context, refCode string) error
	IncrementSignups(ctx context.Context, refCode string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	ListEmails(ctx context.Context) ([]string, error)
}

type Bookings interface {
	List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

type MentorshipRequests interface {
	List(ctx context.Context, status *domain.MentorshipStatus) ([]*domain.MentorshipRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MentorshipStatus, note string) error
}

type Courses interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	CreateCourse(ctx context.Context, course *domain.Course) error
	UpdateCourse(ctx context.Context, course *domain.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	ListModules(ctx context.Context, courseID uuid.UUID) ([]*domain.CourseModule, error)
	CreateModule(ctx context.Context, module *domain.CourseModule) error
	RenameModule(ctx context.Context, id uuid.UUID, title string) error
	DeleteModule(ctx context.Context, id uuid.UUID) error
	SetModulePositions(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error

	ListSections(ctx context.Context, moduleID uuid.UUID) ([]*domain.CourseSection, error)
	CreateSection(ctx context.Context, section *domain.CourseSection) error
	RenameSection(ctx context.Context, id uuid.UUID, title string) error
	DeleteSection(ctx context.Context, id uuid.UUID) error
	SetSectionPositions(ctx context.Context, moduleID uuid.UUID, orderedIDs []uuid.UUID) error

	ListLessons(ctx context.Context, sectionID uuid.UUID) ([]*domain.Lesson, error)
	CreateLesson(ctx context.Context, lesson *domain.Lesson) error
	UpdateLesson(ctx context.Context, lesson *domain.Lesson) error
	DeleteLesson(ctx context.Context, id uuid.UUID) error
	SetLessonPositions(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
}

type Forecasts interface {
	List(ctx context.Context, status *domain.ForecastStatus) ([]*domain.Forecast, error)
	Review(ctx context.Context, id uuid.UUID, status domain.ForecastStatus, reviewedBy uuid.UUID, reviewedAt time.Time) error
}
