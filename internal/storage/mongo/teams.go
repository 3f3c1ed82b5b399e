package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/teams"
)

type TeamRepository struct {
	collection *mongo.Collection
}

var _ teams.Repository = (*TeamRepository)(nil)

type teamDoc struct {
	ID        bson.ObjectID     `bson:"_id,omitempty"`
	Name      string            `bson:"name"`
	Role      string            `bson:"role"`
	Bio       string            `bson:"bio"`
	Image     imageDoc          `bson:"image"`
	Skills    []string          `bson:"skills"`
	Social    teams.SocialLinks `bson:"social"`
	Order     int               `bson:"order"`
	IsActive  bool              `bson:"is_active"`
	CreatedAt time.Time         `bson:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

func (d teamDoc) toDomain() *teams.Member {
	return &teams.Member{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Role:      d.Role,
		Bio:       d.Bio,
		Image:     d.Image.toDomain(),
		Skills:    d.Skills,
		Social:    d.Social,
		Order:     d.Order,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *TeamRepository) List(ctx context.Context, filters teams.Filters, page domain.Page) ([]teams.Member, int64, error) {
	filter := bson.M{}
	if filters.IsActive != nil {
		filter["is_active"] = *filters.IsActive
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError("count team members", err)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(displayOrder).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)))
	if err != nil {
		return nil, 0, wrapError("list team members", err)
	}
	defer cursor.Close(ctx)

	var docs []teamDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapError("decode team members", err)
	}

	members := make([]teams.Member, 0, len(docs))
	for _, doc := range docs {
		members = append(members, *doc.toDomain())
	}
	return members, total, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*teams.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc teamDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get team member", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) Insert(ctx context.Context, member *teams.Member) (string, error) {
	now := time.Now().UTC()
	doc := teamDoc{
		Name:      member.Name,
		Role:      member.Role,
		Bio:       member.Bio,
		Image:     imageFromDomain(member.Image),
		Skills:    member.Skills,
		Social:    member.Social,
		Order:     member.Order,
		IsActive:  member.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert team member", err)
	}
	member.CreatedAt = now
	member.UpdatedAt = now
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *TeamRepository) Update(ctx context.Context, id string, update teams.Update) (*teams.Member, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "name", update.Name)
	setString(set, "role", update.Role)
	setString(set, "bio", update.Bio)
	if update.Skills != nil {
		set["skills"] = *update.Skills
	}
	if update.Social != nil {
		set["social"] = *update.Social
	}
	setInt(set, "order", update.Order)
	setBool(set, "is_active", update.IsActive)
	setImage(set, update.Image)

	var doc teamDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError("update team member", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapError("delete team member", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
