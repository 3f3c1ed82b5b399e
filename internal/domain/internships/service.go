package internships

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

const Folder = "skyweb/internships"

// EnrollmentPurger removes every enrollment tied to a posting. Implemented
// by the enrollment storage so deleting a posting never strands applications
// pointing at a record that no longer exists.
type EnrollmentPurger interface {
	DeleteByInternship(ctx context.Context, internshipID string) (int64, error)
}

type Service struct {
	repo    Repository
	store   media.Store
	purger  EnrollmentPurger
	logger  zerolog.Logger
}

func NewService(repo Repository, store media.Store, purger EnrollmentPurger, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		purger: purger,
		logger: logger.With().Str("component", "internships").Logger(),
	}
}

type CreateParams struct {
	Title               string                `json:"title" validate:"required,max=150"`
	Description         string                `json:"description" validate:"required"`
	Duration            string                `json:"duration" validate:"required"`
	Certificate         *bool                 `json:"certificate"`
	Stipend             string                `json:"stipend"`
	Location            string                `json:"location"`
	SkillsRequired      validation.StringList `json:"skillsRequired"`
	Responsibilities    validation.StringList `json:"responsibilities"`
	Eligibility         string                `json:"eligibility"`
	StartDate           string                `json:"startDate"`
	ApplicationDeadline string                `json:"applicationDeadline"`
	IsActive            *bool                 `json:"isActive"`
}

type UpdateParams struct {
	Title               *string                `json:"title"`
	Description         *string                `json:"description"`
	Duration            *string                `json:"duration"`
	Certificate         *bool                  `json:"certificate"`
	Stipend             *string                `json:"stipend"`
	Location            *string                `json:"location"`
	SkillsRequired      *validation.StringList `json:"skillsRequired"`
	Responsibilities    *validation.StringList `json:"responsibilities"`
	Eligibility         *string                `json:"eligibility"`
	StartDate           *string                `json:"startDate"`
	ApplicationDeadline *string                `json:"applicationDeadline"`
	IsActive            *bool                  `json:"isActive"`
}

func (s *Service) List(ctx context.Context, filters Filters, page domain.Page) ([]Posting, int64, error) {
	return s.repo.List(ctx, filters, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Posting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams, upload media.Upload) (*Posting, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	startDate, err := parseDate("startDate", params.StartDate)
	if err != nil {
		return nil, err
	}
	deadline, err := parseDate("applicationDeadline", params.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	img, err := s.store.Upload(ctx, upload, Folder)
	if err != nil {
		return nil, err
	}

	posting := &Posting{
		Title:               params.Title,
		Description:         params.Description,
		Duration:            params.Duration,
		Image:               img,
		Certificate:         domain.BoolOr(params.Certificate, true),
		Stipend:             domain.StringOr(params.Stipend, "Unpaid"),
		Location:            domain.StringOr(params.Location, "Remote"),
		SkillsRequired:      params.SkillsRequired,
		Responsibilities:    params.Responsibilities,
		Eligibility:         params.Eligibility,
		StartDate:           startDate,
		ApplicationDeadline: deadline,
		IsActive:            domain.BoolOr(params.IsActive, true),
	}

	id, err := s.repo.Insert(ctx, posting)
	if err != nil {
		return nil, err
	}
	posting.ID = id
	return posting, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams, upload *media.Upload) (*Posting, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := Update{
		Title:       params.Title,
		Description: params.Description,
		Duration:    params.Duration,
		Certificate: params.Certificate,
		Stipend:     params.Stipend,
		Location:    params.Location,
		Eligibility: params.Eligibility,
		IsActive:    params.IsActive,
	}
	if params.SkillsRequired != nil {
		skills := []string(*params.SkillsRequired)
		update.SkillsRequired = &skills
	}
	if params.Responsibilities != nil {
		resp := []string(*params.Responsibilities)
		update.Responsibilities = &resp
	}
	if params.StartDate != nil {
		t, err := parseDate("startDate", *params.StartDate)
		if err != nil {
			return nil, err
		}
		update.StartDate = t
	}
	if params.ApplicationDeadline != nil {
		t, err := parseDate("applicationDeadline", *params.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		update.ApplicationDeadline = t
	}

	if upload != nil {
		img, err := s.store.Replace(ctx, current.Image.PublicID, *upload, Folder)
		if err != nil {
			return nil, err
		}
		update.Image = &img
	}

	return s.repo.Update(ctx, id, update)
}

// Delete removes a posting along with every enrollment that references it,
// then the stored image. Blob deletion failures are logged and swallowed so
// a flaky object store cannot block the cascade.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	purged, err := s.purger.DeleteByInternship(ctx, id)
	if err != nil {
		return err
	}
	if purged > 0 {
		s.logger.Info().Str("internship_id", id).Int64("enrollments", purged).Msg("purged enrollments for deleted internship")
	}

	if err := s.store.Delete(ctx, current.Image.PublicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", current.Image.PublicID).Msg("failed to delete internship image")
	}

	return s.repo.Delete(ctx, id)
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. An empty
// value yields a nil time, matching an omitted field.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.Invalid(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return &t, nil
}
