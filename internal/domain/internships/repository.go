package internships

import (
	"context"
	"time"

	"github.com/skywebdev/server/internal/domain"
)

// Posting is a published internship opportunity. EnrollmentCount mirrors the
// number of enrollment records referencing the posting and is maintained by
// the enrollment flow, not by clients.
type Posting struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Duration            string       `json:"duration"`
	Image               domain.Image `json:"image"`
	Certificate         bool         `json:"certificate"`
	Stipend             string       `json:"stipend"`
	Location            string       `json:"location"`
	SkillsRequired      []string     `json:"skillsRequired"`
	Responsibilities    []string     `json:"responsibilities"`
	Eligibility         string       `json:"eligibility"`
	StartDate           *time.Time   `json:"startDate,omitempty"`
	ApplicationDeadline *time.Time   `json:"applicationDeadline,omitempty"`
	IsActive            bool         `json:"isActive"`
	EnrollmentCount     int64        `json:"enrollmentCount"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

type Filters struct {
	IsActive *bool
	Search   string
}

type Repository interface {
	List(ctx context.Context, filters Filters, page domain.Page) ([]Posting, int64, error)
	GetByID(ctx context.Context, id string) (*Posting, error)
	Insert(ctx context.Context, posting *Posting) (string, error)
	Update(ctx context.Context, id string, update Update) (*Posting, error)
	Delete(ctx context.Context, id string) error
}

// Update carries partial changes; nil fields are left untouched.
type Update struct {
	Title               *string
	Description         *string
	Duration            *string
	Certificate         *bool
	Stipend             *string
	Location            *string
	SkillsRequired      *[]string
	Responsibilities    *[]string
	Eligibility         *string
	StartDate           *time.Time
	ApplicationDeadline *time.Time
	IsActive            *bool
	Image               *domain.Image
}
