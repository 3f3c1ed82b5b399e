package teams

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

// Folder is the object-store prefix for team member images.
const Folder = "skyweb/teams"

type Service struct {
	repo   Repository
	store  media.Store
	logger zerolog.Logger
}

func NewService(repo Repository, store media.Store, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger.With().Str("component", "teams").Logger(),
	}
}

type CreateParams struct {
	Name     string                `json:"name" validate:"required"`
	Role     string                `json:"role" validate:"required"`
	Bio      string                `json:"bio" validate:"required"`
	Skills   validation.StringList `json:"skills" validate:"required,min=1"`
	Social   SocialLinks           `json:"social"`
	Order    int                   `json:"order"`
	IsActive *bool                 `json:"isActive"`
}

type UpdateParams struct {
	Name     *string                `json:"name"`
	Role     *string                `json:"role"`
	Bio      *string                `json:"bio"`
	Skills   *validation.StringList `json:"skills"`
	Social   *SocialLinks           `json:"social"`
	Order    *int                   `json:"order"`
	IsActive *bool                  `json:"isActive"`
}

func (s *Service) List(ctx context.Context, filters Filters, page domain.Page) ([]Member, int64, error) {
	return s.repo.List(ctx, filters, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

// Create uploads the image first and persists the record only after the
// upload is confirmed. An upload failure means no record is created.
func (s *Service) Create(ctx context.Context, params CreateParams, upload media.Upload) (*Member, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	img, err := s.store.Upload(ctx, upload, Folder)
	if err != nil {
		return nil, err
	}

	member := &Member{
		Name:     params.Name,
		Role:     params.Role,
		Bio:      params.Bio,
		Image:    img,
		Skills:   params.Skills,
		Social:   params.Social,
		Order:    params.Order,
		IsActive: domain.BoolOr(params.IsActive, true),
	}

	id, err := s.repo.Insert(ctx, member)
	if err != nil {
		return nil, err
	}
	member.ID = id
	return member, nil
}

// Update applies partial changes. When a new image is supplied the current
// blob is replaced; a failed upload aborts, leaving the stored reference
// unchanged.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams, upload *media.Upload) (*Member, error) {
	if params.Social != nil {
		if err := validation.Struct(*params.Social); err != nil {
			return nil, err
		}
	}
	if params.Skills != nil && len(*params.Skills) == 0 {
		return nil, domain.Invalid("skills", "at least one skill is required")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := Update{
		Name:     params.Name,
		Role:     params.Role,
		Bio:      params.Bio,
		Social:   params.Social,
		Order:    params.Order,
		IsActive: params.IsActive,
	}
	if params.Skills != nil {
		skills := []string(*params.Skills)
		update.Skills = &skills
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

// Delete removes the member's blob and then the record. A missing id fails
// before any storage call; a blob deletion failure is logged and does not
// block record removal.
func (s *Service) Delete(ctx context.Context, id string) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, current.Image.PublicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", current.Image.PublicID).Msg("failed to delete team member image")
	}

	return s.repo.Delete(ctx, id)
}
