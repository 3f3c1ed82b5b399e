// Package mongo implements the storage repositories on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/skywebdev/server/internal/config"
	"github.com/skywebdev/server/internal/domain/admins"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
	"github.com/skywebdev/server/internal/domain/pricing"
	"github.com/skywebdev/server/internal/domain/projects"
	"github.com/skywebdev/server/internal/domain/teams"
)

const connectTimeout = 10 * time.Second

// Connect opens a client and verifies the deployment is reachable.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// Repository bundles the per-domain repositories backed by one database.
type Repository struct {
	db *mongo.Database

	admins      *AdminRepository
	teams       *TeamRepository
	projects    *ProjectRepository
	pricing     *PricingRepository
	internships *InternshipRepository
	enrollments *EnrollmentRepository
}

func NewRepository(client *mongo.Client, database string) *Repository {
	db := client.Database(database)
	r := &Repository{db: db}
	r.admins = &AdminRepository{collection: db.Collection("admins")}
	r.teams = &TeamRepository{collection: db.Collection("team_members")}
	r.projects = &ProjectRepository{collection: db.Collection("projects")}
	r.pricing = &PricingRepository{collection: db.Collection("pricing_packages")}
	r.internships = &InternshipRepository{collection: db.Collection("internships")}
	r.enrollments = &EnrollmentRepository{
		collection:  db.Collection("enrollments"),
		internships: db.Collection("internships"),
	}
	return r
}

func (r *Repository) Admins() admins.Repository           { return r.admins }
func (r *Repository) Teams() teams.Repository             { return r.teams }
func (r *Repository) Projects() projects.Repository       { return r.projects }
func (r *Repository) Pricing() pricing.Repository         { return r.pricing }
func (r *Repository) Internships() internships.Repository { return r.internships }
func (r *Repository) Enrollments() enrollments.Repository { return r.enrollments }

// PostingStore exposes the internship collection through the narrow view the
// enrollment flow depends on.
func (r *Repository) PostingStore() enrollments.PostingStore { return r.internships }

// EnrollmentPurger backs the internship delete cascade.
func (r *Repository) EnrollmentPurger() internships.EnrollmentPurger { return r.enrollments }

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes back the duplicate checks in the services; creation is idempotent.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection("admins").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create admins index: %w", err)
	}

	_, err = r.db.Collection("enrollments").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "internship_id", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create enrollments indexes: %w", err)
	}
	return nil
}
