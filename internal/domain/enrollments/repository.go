package enrollments

import (
	"context"
	"time"

	"github.com/skywebdev/server/internal/domain"
)

// Status of an application as it moves through review.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewing   Status = "reviewing"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusAccepted    Status = "accepted"
)

// Terminal reports whether a status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Valid reports whether s is one of the known review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Enrollment is one candidate's application to an internship posting.
// Email is stored lowercased; together with InternshipID it is unique.
type Enrollment struct {
	ID           string    `json:"id"`
	InternshipID string    `json:"internshipId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ResumeLink   string    `json:"resumeLink,omitempty"`
	CoverLetter  string    `json:"coverLetter,omitempty"`
	Status       Status    `json:"status"`
	AppliedAt    time.Time `json:"appliedAt"`

	// Internship is a denormalized summary of the posting, populated on
	// reads for the admin listing. Never written back.
	Internship *PostingSummary `json:"internship,omitempty"`
}

// PostingSummary is the slice of an internship posting that enrollment
// listings surface alongside each application.
type PostingSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Location string `json:"location"`
	Stipend  string `json:"stipend"`
	IsActive bool   `json:"isActive"`
}

type Filters struct {
	InternshipID string
	Status       Status
}

// Stats aggregates enrollment volume for the admin dashboard.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[Status]int64 `json:"byStatus"`
}

type Repository interface {
	List(ctx context.Context, filters Filters, page domain.Page) ([]Enrollment, int64, error)
	GetByID(ctx context.Context, id string) (*Enrollment, error)
	// Insert persists a new enrollment. A uniqueness violation on
	// (internship, email) surfaces as domain.ErrDuplicate.
	Insert(ctx context.Context, enrollment *Enrollment) (string, error)
	Exists(ctx context.Context, internshipID, email string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Enrollment, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}
