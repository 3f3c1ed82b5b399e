package enrollments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/validation"
)

// PostingStore is the view of internship postings the enrollment flow needs:
// existence and activity checks plus counter maintenance. Implemented by the
// internship storage.
type PostingStore interface {
	GetPosting(ctx context.Context, id string) (*PostingSummary, error)
	AdjustEnrollmentCount(ctx context.Context, id string, delta int64) error
}

// Notifier delivers candidate-facing mail. Failures are the notifier's to
// report; the enrollment flow never fails because mail did not go out.
type Notifier interface {
	SendApplicationReceived(ctx context.Context, enrollment *Enrollment, internship *PostingSummary)
}

type Service struct {
	repo     Repository
	postings PostingStore
	notifier Notifier
	logger   zerolog.Logger
}

func NewService(repo Repository, postings PostingStore, notifier Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		postings: postings,
		notifier: notifier,
		logger:   logger.With().Str("component", "enrollments").Logger(),
	}
}

type ApplyParams struct {
	InternshipID string `json:"internshipId" validate:"required"`
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"omitempty,max=20"`
	ResumeLink   string `json:"resumeLink" validate:"required,url"`
	CoverLetter  string `json:"coverLetter" validate:"omitempty,max=2000"`
}

// Apply records a candidate's application. The posting must exist and be
// active, and a candidate can hold at most one application per posting. The
// pre-check keeps the common duplicate path cheap; the unique index on
// (internship, email) closes the race.
func (s *Service) Apply(ctx context.Context, params ApplyParams) (*Enrollment, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Phone = strings.TrimSpace(params.Phone)
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	posting, err := s.postings.GetPosting(ctx, params.InternshipID)
	if err != nil {
		return nil, err
	}
	if !posting.IsActive {
		return nil, domain.Conflict("this internship is no longer accepting applications")
	}

	exists, err := s.repo.Exists(ctx, params.InternshipID, params.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflict("you have already applied to this internship")
	}

	enrollment := &Enrollment{
		InternshipID: params.InternshipID,
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		ResumeLink:   params.ResumeLink,
		CoverLetter:  params.CoverLetter,
		Status:       StatusPending,
		AppliedAt:    time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, enrollment)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("you have already applied to this internship")
		}
		return nil, err
	}
	enrollment.ID = id

	if err := s.postings.AdjustEnrollmentCount(ctx, params.InternshipID, 1); err != nil {
		s.logger.Warn().Err(err).Str("internship_id", params.InternshipID).Msg("failed to bump enrollment count")
	}

	// Mail goes out after the response; request cancellation must not
	// abort delivery.
	go s.notifier.SendApplicationReceived(context.Background(), enrollment, posting)

	return enrollment, nil
}

func (s *Service) List(ctx context.Context, filters Filters, page domain.Page) ([]Enrollment, int64, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, 0, domain.Invalid("status", "must be one of: pending, reviewing, shortlisted, rejected, accepted")
	}
	return s.repo.List(ctx, filters, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Enrollment, error) {
	return s.repo.GetByID(ctx, id)
}

// SetStatus moves an application to any review state, except that accepted
// and rejected are final.
func (s *Service) SetStatus(ctx context.Context, id string, status Status) (*Enrollment, error) {
	if !status.Valid() {
		return nil, domain.Invalid("status", "must be one of: pending, reviewing, shortlisted, rejected, accepted")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() && status != current.Status {
		return nil, domain.Conflict("enrollment has already been " + string(current.Status))
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes an application and releases its slot in the posting's
// enrollment count.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.postings.AdjustEnrollmentCount(ctx, current.InternshipID, -1); err != nil {
		s.logger.Warn().Err(err).Str("internship_id", current.InternshipID).Msg("failed to decrement enrollment count")
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
