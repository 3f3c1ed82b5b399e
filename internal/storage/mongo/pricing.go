package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/pricing"
)

type PricingRepository struct {
	collection *mongo.Collection
}

var _ pricing.Repository = (*PricingRepository)(nil)

type pricingDoc struct {
	ID          bson.ObjectID     `bson:"_id,omitempty"`
	Name        string            `bson:"name"`
	Description string            `bson:"description"`
	Price       float64           `bson:"price"`
	Currency    string            `bson:"currency"`
	Duration    string            `bson:"duration"`
	Image       imageDoc          `bson:"image"`
	Features    []pricing.Feature `bson:"features"`
	Stack       []string          `bson:"stack"`
	Category    string            `bson:"category"`
	Popular     bool              `bson:"popular"`
	ButtonText  string            `bson:"button_text"`
	Order       int               `bson:"order"`
	IsActive    bool              `bson:"is_active"`
	CreatedAt   time.Time         `bson:"created_at"`
	UpdatedAt   time.Time         `bson:"updated_at"`
}

func (d pricingDoc) toDomain() *pricing.Package {
	return &pricing.Package{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Currency:    d.Currency,
		Duration:    d.Duration,
		Image:       d.Image.toDomain(),
		Features:    d.Features,
		Stack:       d.Stack,
		Category:    d.Category,
		Popular:     d.Popular,
		ButtonText:  d.ButtonText,
		Order:       d.Order,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *PricingRepository) List(ctx context.Context, filters pricing.Filters, page domain.Page) ([]pricing.Package, int64, error) {
	filter := bson.M{}
	if filters.Category != "" {
		filter["category"] = filters.Category
	}
	if filters.IsActive != nil {
		filter["is_active"] = *filters.IsActive
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError("count pricing packages", err)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(displayOrder).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)))
	if err != nil {
		return nil, 0, wrapError("list pricing packages", err)
	}
	defer cursor.Close(ctx)

	var docs []pricingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapError("decode pricing packages", err)
	}

	items := make([]pricing.Package, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	return items, total, nil
}

func (r *PricingRepository) GetByID(ctx context.Context, id string) (*pricing.Package, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc pricingDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get pricing package", err)
	}
	return doc.toDomain(), nil
}

func (r *PricingRepository) Insert(ctx context.Context, pkg *pricing.Package) (string, error) {
	now := time.Now().UTC()
	doc := pricingDoc{
		Name:        pkg.Name,
		Description: pkg.Description,
		Price:       pkg.Price,
		Currency:    pkg.Currency,
		Duration:    pkg.Duration,
		Image:       imageFromDomain(pkg.Image),
		Features:    pkg.Features,
		Stack:       pkg.Stack,
		Category:    pkg.Category,
		Popular:     pkg.Popular,
		ButtonText:  pkg.ButtonText,
		Order:       pkg.Order,
		IsActive:    pkg.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert pricing package", err)
	}
	pkg.CreatedAt = now
	pkg.UpdatedAt = now
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *PricingRepository) Update(ctx context.Context, id string, update pricing.Update) (*pricing.Package, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "name", update.Name)
	setString(set, "description", update.Description)
	setFloat(set, "price", update.Price)
	setString(set, "currency", update.Currency)
	setString(set, "duration", update.Duration)
	if update.Features != nil {
		set["features"] = *update.Features
	}
	if update.Stack != nil {
		set["stack"] = *update.Stack
	}
	setString(set, "category", update.Category)
	setBool(set, "popular", update.Popular)
	setString(set, "button_text", update.ButtonText)
	setInt(set, "order", update.Order)
	setBool(set, "is_active", update.IsActive)
	setImage(set, update.Image)

	var doc pricingDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError("update pricing package", err)
	}
	return doc.toDomain(), nil
}

func (r *PricingRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapError("delete pricing package", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
