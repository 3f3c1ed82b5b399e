// Package storage groups data access by domain.
package storage

import (
	"github.com/skywebdev/server/internal/domain/admins"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
	"github.com/skywebdev/server/internal/domain/pricing"
	"github.com/skywebdev/server/internal/domain/projects"
	"github.com/skywebdev/server/internal/domain/teams"
)

// Repository aggregates the per-domain repositories.
type Repository interface {
	Admins() admins.Repository
	Teams() teams.Repository
	Projects() projects.Repository
	Pricing() pricing.Repository
	Internships() internships.Repository
	Enrollments() enrollments.Repository
}
