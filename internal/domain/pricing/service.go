package pricing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
	"github.com/skywebdev/server/internal/validation"
)

const Folder = "skyweb/pricing"

type Service struct {
	repo   Repository
	store  media.Store
	logger zerolog.Logger
}

func NewService(repo Repository, store media.Store, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger.With().Str("component", "pricing").Logger(),
	}
}

type CreateParams struct {
	Name        string                `json:"name" validate:"required,max=100"`
	Description string                `json:"description" validate:"required,max=500"`
	Price       float64               `json:"price" validate:"gte=0"`
	Currency    string                `json:"currency" validate:"omitempty,oneof=USD EUR INR GBP"`
	Duration    string                `json:"duration" validate:"omitempty,oneof=one-time monthly yearly"`
	Features    FeatureList           `json:"features" validate:"required,min=1,dive"`
	Stack       validation.StringList `json:"stack"`
	Category    string                `json:"category" validate:"required,oneof=web mobile full-stack e-commerce custom consulting"`
	Popular     *bool                 `json:"popular"`
	ButtonText  string                `json:"buttonText"`
	Order       int                   `json:"order"`
	IsActive    *bool                 `json:"isActive"`
}

type UpdateParams struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Price       *float64               `json:"price"`
	Currency    *string                `json:"currency"`
	Duration    *string                `json:"duration"`
	Features    *FeatureList           `json:"features"`
	Stack       *validation.StringList `json:"stack"`
	Category    *string                `json:"category"`
	Popular     *bool                  `json:"popular"`
	ButtonText  *string                `json:"buttonText"`
	Order       *int                   `json:"order"`
	IsActive    *bool                  `json:"isActive"`
}

func (s *Service) List(ctx context.Context, filters Filters, page domain.Page) ([]Package, int64, error) {
	return s.repo.List(ctx, filters, page)
}

func (s *Service) Get(ctx context.Context, id string) (*Package, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, params CreateParams, upload media.Upload) (*Package, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	img, err := s.store.Upload(ctx, upload, Folder)
	if err != nil {
		return nil, err
	}

	pkg := &Package{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Currency:    domain.StringOr(params.Currency, "USD"),
		Duration:    domain.StringOr(params.Duration, "one-time"),
		Image:       img,
		Features:    params.Features,
		Stack:       params.Stack,
		Category:    params.Category,
		Popular:     domain.BoolOr(params.Popular, false),
		ButtonText:  domain.StringOr(params.ButtonText, "Get Started"),
		Order:       params.Order,
		IsActive:    domain.BoolOr(params.IsActive, true),
	}

	id, err := s.repo.Insert(ctx, pkg)
	if err != nil {
		return nil, err
	}
	pkg.ID = id
	return pkg, nil
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams, upload *media.Upload) (*Package, error) {
	if params.Features != nil && len(*params.Features) == 0 {
		return nil, domain.Invalid("features", "at least one feature is required")
	}
	if params.Currency != nil && !domain.OneOf(*params.Currency, "USD", "EUR", "INR", "GBP") {
		return nil, domain.Invalid("currency", "must be one of: USD, EUR, INR, GBP")
	}
	if params.Duration != nil && !domain.OneOf(*params.Duration, "one-time", "monthly", "yearly") {
		return nil, domain.Invalid("duration", "must be one of: one-time, monthly, yearly")
	}
	if params.Category != nil && !domain.OneOf(*params.Category, "web", "mobile", "full-stack", "e-commerce", "custom", "consulting") {
		return nil, domain.Invalid("category", "must be one of: web, mobile, full-stack, e-commerce, custom, consulting")
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, domain.Invalid("price", "cannot be negative")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := Update{
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Currency:    params.Currency,
		Duration:    params.Duration,
		Category:    params.Category,
		Popular:     params.Popular,
		ButtonText:  params.ButtonText,
		Order:       params.Order,
		IsActive:    params.IsActive,
	}
	if params.Features != nil {
		features := []Feature(*params.Features)
		update.Features = &features
	}
	if params.Stack != nil {
		stack := []string(*params.Stack)
		update.Stack = &stack
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
		s.logger.Warn().Err(err).Str("public_id", current.Image.PublicID).Msg("failed to delete pricing image")
	}

	return s.repo.Delete(ctx, id)
}
