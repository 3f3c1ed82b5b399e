package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/skywebdev/server/internal/domain/admins"
)

type AdminRepository struct {
	collection *mongo.Collection
}

var _ admins.Repository = (*AdminRepository)(nil)

type adminDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Role         string        `bson:"role"`
	IsActive     bool          `bson:"is_active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

func (d adminDoc) toDomain() *admins.Admin {
	return &admins.Admin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *AdminRepository) Insert(ctx context.Context, admin *admins.Admin) (string, error) {
	now := time.Now().UTC()
	doc := adminDoc{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         admin.Role,
		IsActive:     admin.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert admin", err)
	}
	oid := result.InsertedID.(bson.ObjectID)
	admin.CreatedAt = now
	admin.UpdatedAt = now
	return oid.Hex(), nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*admins.Admin, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc adminDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get admin", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	var doc adminDoc
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, wrapError("get admin by email", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, wrapError("count admins", err)
	}
	return count, nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		},
	})
	if err != nil {
		return wrapError("update admin password", err)
	}
	if result.MatchedCount == 0 {
		return wrapError("update admin password", mongo.ErrNoDocuments)
	}
	return nil
}
