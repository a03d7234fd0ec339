package service

import (
	"context"

	"github.com/traderacademy/backoffice/internal/config"
	"github.com/traderacademy/backoffice/internal/domain"
	"github.com/traderacademy/backoffice/internal/repository"
	"github.com/traderacademy/backoffice/pkg/auth"
	"github.com/traderacademy/backoffice/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Services struct {
	Auth          Auth
	Leads         Leads
	Affiliates    Affiliates
	Bookings      Bookings
	Mentorship    Mentorship
	Courses       Courses
	Forecasts     Forecasts
	Notifications Notifications
}

type Deps struct {
	Logger       *zap.Logger
	Config       *config.Config
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	otpEngine := newOTPService(deps.Repos.OTPChallenges, deps.OtpGenerator, deps.Config.Auth.OTPCodeTTL)

	return &Services{
		Auth: newAuthService(
			deps.Repos.Admins,
			deps.Repos.RefreshSessions,
			otpEngine,
			deps.TokenManager,
			deps.Logger,
		),
		Leads:         newLeadService(deps.Repos.Leads),
		Affiliates:    newAffiliateService(deps.Repos.Affiliates),
		Bookings:      newBookingService(deps.Repos.Bookings),
		Mentorship:    newMentorshipService(deps.Repos.MentorshipRequests),
		Courses:       newCourseService(deps.Repos.Courses),
		Forecasts:     newForecastService(deps.Repos.Forecasts),
		Notifications: newNotificationService(deps.Repos.Leads, deps.Repos.Affiliates),
	}
}

type Auth interface {
	Login(ctx context.Context, email string) error
	ResendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email string, code string, userAgent string, userIP string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
}

type Leads interface {
	List(ctx context.Context, page, limit int, status *domain.LeadStatus) ([]*domain.Lead, int64, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus, notes string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Affiliates interface {
	List(ctx context.Context) ([]*domain.Affiliate, error)
	Create(ctx context.Context, name, email string) (*domain.Affiliate, error)
	GetByRefCode(ctx context.Context, refCode string) (*domain.Affiliate, error)
	TrackClick(ctx context.Context, refCode string) error
	TrackSignup(ctx context.Context, refCode string) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type Bookings interface {
	List(ctx context.Context, status *domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
}

type Mentorship interface {
	List(ctx context.Context, status *domain.MentorshipStatus) ([]*domain.MentorshipRequest, error)
	Review(ctx context.Context, id uuid.UUID, status domain.MentorshipStatus, note string) error
}

type Courses interface {
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	CreateCourse(ctx context.Context, title, slug, description string) (*domain.Course, error)
	UpdateCourse(ctx context.Context, course *domain.Course) error
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	ListModules(ctx context.Context, courseID uuid.UUID) ([]*domain.CourseModule, error)
	AddModule(ctx context.Context, courseID uuid.UUID, title string) (*domain.CourseModule, error)
	RenameModule(ctx context.Context, id uuid.UUID, title string) error
	RemoveModule(ctx context.Context, courseID, id uuid.UUID) error
	ReorderModules(ctx context.Context, courseID uuid.UUID, orderedIDs []uuid.UUID) error

	ListSections(ctx context.Context, moduleID uuid.UUID) ([]*domain.CourseSection, error)
	AddSection(ctx context.Context, moduleID uuid.UUID, title string) (*domain.CourseSection, error)
	RenameSection(ctx context.Context, id uuid.UUID, title string) error
	RemoveSection(ctx context.Context, moduleID, id uuid.UUID) error
	ReorderSections(ctx context.Context, moduleID uuid.UUID, orderedIDs []uuid.UUID) error

	ListLessons(ctx context.Context, sectionID uuid.UUID) ([]*domain.Lesson, error)
	AddLesson(ctx context.Context, sectionID uuid.UUID, title, videoURL, content string) (*domain.Lesson, error)
	UpdateLesson(ctx context.Context, lesson *domain.Lesson) error
	RemoveLesson(ctx context.Context, sectionID, id uuid.UUID) error
	ReorderLessons(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error
}

type Forecasts interface {
	List(ctx context.Context, status *domain.ForecastStatus) ([]*domain.Forecast, error)
	Review(ctx context.Context, id uuid.UUID, approve bool, reviewedBy uuid.UUID) error
}

type Notifications interface {
	SendBulk(ctx context.Context, audience string, subject string, body string) (int, error)
}
