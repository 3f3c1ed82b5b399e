package projects

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

const Folder = "skyweb/projects"

type Service struct {
	repo   Repository
	store  media.Store
	logger zerolog.Logger
}

func NewService(repo Repository, store media.Store, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger.With().Str("component", "projects").Logger(),
	}
}

type CreateParams struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description" validate:"required"`
	Tags        validation.StringList `json:"tags" validate:"required,min=1"`
	ProjectURL  string                `json:"projectUrl"`
	Status      string                `json:"status" validate:"omitempty,oneof=completed ongoing upcoming"`
	Category    string                `json:"category" validate:"omitempty,oneof=website app e-commerce dashboard other"`
	Order       int                   `json:"order"`
	IsActive    *bool                 `json:"isActive"`
}

type UpdateParams struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Tags        *validation.StringList `json:"tags"`
	ProjectURL  *string                `json:"projectUrl"`
	Status      *string                `json:"status"`
	Category    *string                `json:"category"`
	Order       *int                   `json:"order"`
	IsActive    *bool                  `json:"isActive"`
}

func (s *Service) List(ctx context.Context, filters Filters, page domain.Page) ([]Project, int64, error) {
	return s.repo.List(ctx, filters, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams, upload media.Upload) (*Project, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}
	if err := validation.ValidateURL(params.ProjectURL, "projectUrl", false); err != nil {
		return nil, domain.Invalid("projectUrl", "must be a valid URL")
	}

	img, err := s.store.Upload(ctx, upload, Folder)
	if err != nil {
		return nil, err
	}

	project := &Project{
		Title:       params.Title,
		Description: params.Description,
		Image:       img,
		Tags:        params.Tags,
		ProjectURL:  params.ProjectURL,
		Status:      domain.StringOr(params.Status, StatusOngoing),
		Category:    domain.StringOr(params.Category, "other"),
		Order:       params.Order,
		IsActive:    domain.BoolOr(params.IsActive, true),
	}

	id, err := s.repo.Insert(ctx, project)
	if err != nil {
		return nil, err
	}
	project.ID = id
	return project, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams, upload *media.Upload) (*Project, error) {
	if params.Tags != nil && len(*params.Tags) == 0 {
		return nil, domain.Invalid("tags", "at least one tag is required")
	}
	if params.Status != nil && !domain.OneOf(*params.Status, StatusCompleted, StatusOngoing, StatusUpcoming) {
		return nil, domain.Invalid("status", "must be one of: completed, ongoing, upcoming")
	}
	if params.Category != nil && !domain.OneOf(*params.Category, "website", "app", "e-commerce", "dashboard", "other") {
		return nil, domain.Invalid("category", "must be one of: website, app, e-commerce, dashboard, other")
	}
	if params.ProjectURL != nil {
		if err := validation.ValidateURL(*params.ProjectURL, "projectUrl", false); err != nil {
			return nil, domain.Invalid("projectUrl", "must be a valid URL")
		}
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := Update{
		Title:       params.Title,
		Description: params.Description,
		ProjectURL:  params.ProjectURL,
		Status:      params.Status,
		Category:    params.Category,
		Order:       params.Order,
		IsActive:    params.IsActive,
	}
	if params.Tags != nil {
		tags := []string(*params.Tags)
		update.Tags = &tags
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

func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, current.Image.PublicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", current.Image.PublicID).Msg("failed to delete project image")
	}

	return s.repo.Delete(ctx, id)
}
