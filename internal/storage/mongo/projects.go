package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/projects"
)

type ProjectRepository struct {
	collection *mongo.Collection
}

var _ projects.Repository = (*ProjectRepository)(nil)

type projectDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Image       imageDoc      `bson:"image"`
	Tags        []string      `bson:"tags"`
	ProjectURL  string        `bson:"project_url"`
	Status      string        `bson:"status"`
	Category    string        `bson:"category"`
	Order       int           `bson:"order"`
	IsActive    bool          `bson:"is_active"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

func (d projectDoc) toDomain() *projects.Project {
	return &projects.Project{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image.toDomain(),
		Tags:        d.Tags,
		ProjectURL:  d.ProjectURL,
		Status:      d.Status,
		Category:    d.Category,
		Order:       d.Order,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *ProjectRepository) List(ctx context.Context, filters projects.Filters, page domain.Page) ([]projects.Project, int64, error) {
	filter := bson.M{}
	if filters.Status != "" {
		filter["status"] = filters.Status
	}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}
	if filters.IsActive != nil {
		filter["is_active"] = *filters.IsActive
	}
	if filters.Search != "" {
		filter["$or"] = searchFilter(filters.Search, "title", "description")["$or"]
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError("count projects", err)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(displayOrder).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)))
	if err != nil {
		return nil, 0, wrapError("list projects", err)
	}
	defer cursor.Close(ctx)

	var docs []projectDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapError("decode projects", err)
	}

	items := make([]projects.Project, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	return items, total, nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*projects.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc projectDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get project", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Insert(ctx context.Context, project *projects.Project) (string, error) {
	now := time.Now().UTC()
	doc := projectDoc{
		Title:       project.Title,
		Description: project.Description,
		Image:       imageFromDomain(project.Image),
		Tags:        project.Tags,
		ProjectURL:  project.ProjectURL,
		Status:      project.Status,
		Category:    project.Category,
		Order:       project.Order,
		IsActive:    project.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert project", err)
	}
	project.CreatedAt = now
	project.UpdatedAt = now
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, update projects.Update) (*projects.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "title", update.Title)
	setString(set, "description", update.Description)
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}
	setString(set, "project_url", update.ProjectURL)
	setString(set, "status", update.Status)
	setString(set, "category", update.Category)
	setInt(set, "order", update.Order)
	setBool(set, "is_active", update.IsActive)
	setImage(set, update.Image)

	var doc projectDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError("update project", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapError("delete project", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
