package projects

import (
	"context"
	"time"

	"github.com/skywebdev/server/internal/domain"
)

const (
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
	StatusUpcoming  = "upcoming"
)

// Project is a portfolio entry.
type Project struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       domain.Image `json:"image"`
	Tags        []string     `json:"tags"`
	ProjectURL  string       `json:"projectUrl"`
	Status      string       `json:"status"`
	Category    string       `json:"category"`
	Order       int          `json:"order"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Filters struct {
	Status   string
	Category string
	IsActive *bool
	Search   string
}

type Repository interface {
	List(ctx context.Context, filters Filters, page domain.Page) ([]Project, int64, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Insert(ctx context.Context, project *Project) (string, error)
	Update(ctx context.Context, id string, update Update) (*Project, error)
	Delete(ctx context.Context, id string) error
}

// Update carries partial changes; nil fields are left untouched.
type Update struct {
	Title       *string
	Description *string
	Tags        *[]string
	ProjectURL  *string
	Status      *string
	Category    *string
	Order       *int
	IsActive    *bool
	Image       *domain.Image
}
