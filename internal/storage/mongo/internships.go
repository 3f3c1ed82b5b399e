package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/domain/enrollments"
	"github.com/skywebdev/server/internal/domain/internships"
)

type InternshipRepository struct {
	collection *mongo.Collection
}

var (
	_ internships.Repository   = (*InternshipRepository)(nil)
	_ enrollments.PostingStore = (*InternshipRepository)(nil)
)

type internshipDoc struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	Title               string        `bson:"title"`
	Description         string        `bson:"description"`
	Duration            string        `bson:"duration"`
	Image               imageDoc      `bson:"image"`
	Certificate         bool          `bson:"certificate"`
	Stipend             string        `bson:"stipend"`
	Location            string        `bson:"location"`
	SkillsRequired      []string      `bson:"skills_required"`
	Responsibilities    []string      `bson:"responsibilities"`
	Eligibility         string        `bson:"eligibility"`
	StartDate           *time.Time    `bson:"start_date,omitempty"`
	ApplicationDeadline *time.Time    `bson:"application_deadline,omitempty"`
	IsActive            bool          `bson:"is_active"`
	EnrollmentCount     int64         `bson:"enrollment_count"`
	CreatedAt           time.Time     `bson:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at"`
}

func (d internshipDoc) toDomain() *internships.Posting {
	return &internships.Posting{
		ID:                  d.ID.Hex(),
		Title:               d.Title,
		Description:         d.Description,
		Duration:            d.Duration,
		Image:               d.Image.toDomain(),
		Certificate:         d.Certificate,
		Stipend:             d.Stipend,
		Location:            d.Location,
		SkillsRequired:      d.SkillsRequired,
		Responsibilities:    d.Responsibilities,
		Eligibility:         d.Eligibility,
		StartDate:           d.StartDate,
		ApplicationDeadline: d.ApplicationDeadline,
		IsActive:            d.IsActive,
		EnrollmentCount:     d.EnrollmentCount,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *InternshipRepository) List(ctx context.Context, filters internships.Filters, page domain.Page) ([]internships.Posting, int64, error) {
	filter := bson.M{}
	if filters.IsActive != nil {
		filter["is_active"] = *filters.IsActive
	}
	if filters.Search != "" {
		filter["$or"] = searchFilter(filters.Search, "title", "description")["$or"]
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError("count internships", err)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)))
	if err != nil {
		return nil, 0, wrapError("list internships", err)
	}
	defer cursor.Close(ctx)

	var docs []internshipDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapError("decode internships", err)
	}

	items := make([]internships.Posting, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	return items, total, nil
}

func (r *InternshipRepository) GetByID(ctx context.Context, id string) (*internships.Posting, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc internshipDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get internship", err)
	}
	return doc.toDomain(), nil
}

func (r *InternshipRepository) Insert(ctx context.Context, posting *internships.Posting) (string, error) {
	now := time.Now().UTC()
	doc := internshipDoc{
		Title:               posting.Title,
		Description:         posting.Description,
		Duration:            posting.Duration,
		Image:               imageFromDomain(posting.Image),
		Certificate:         posting.Certificate,
		Stipend:             posting.Stipend,
		Location:            posting.Location,
		SkillsRequired:      posting.SkillsRequired,
		Responsibilities:    posting.Responsibilities,
		Eligibility:         posting.Eligibility,
		StartDate:           posting.StartDate,
		ApplicationDeadline: posting.ApplicationDeadline,
		IsActive:            posting.IsActive,
		EnrollmentCount:     0,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert internship", err)
	}
	posting.CreatedAt = now
	posting.UpdatedAt = now
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *InternshipRepository) Update(ctx context.Context, id string, update internships.Update) (*internships.Posting, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "title", update.Title)
	setString(set, "description", update.Description)
	setString(set, "duration", update.Duration)
	setBool(set, "certificate", update.Certificate)
	setString(set, "stipend", update.Stipend)
	setString(set, "location", update.Location)
	if update.SkillsRequired != nil {
		set["skills_required"] = *update.SkillsRequired
	}
	if update.Responsibilities != nil {
		set["responsibilities"] = *update.Responsibilities
	}
	setString(set, "eligibility", update.Eligibility)
	if update.StartDate != nil {
		set["start_date"] = *update.StartDate
	}
	if update.ApplicationDeadline != nil {
		set["application_deadline"] = *update.ApplicationDeadline
	}
	setBool(set, "is_active", update.IsActive)
	setImage(set, update.Image)

	var doc internshipDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError("update internship", err)
	}
	return doc.toDomain(), nil
}

func (r *InternshipRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapError("delete internship", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetPosting provides the enrollment flow's view of a posting.
func (r *InternshipRepository) GetPosting(ctx context.Context, id string) (*enrollments.PostingSummary, error) {
	posting, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &enrollments.PostingSummary{
		ID:       posting.ID,
		Title:    posting.Title,
		Duration: posting.Duration,
		Location: posting.Location,
		Stipend:  posting.Stipend,
		IsActive: posting.IsActive,
	}, nil
}

// AdjustEnrollmentCount shifts a posting's counter by delta. A vanished
// posting is not an error; the count no longer matters then.
func (r *InternshipRepository) AdjustEnrollmentCount(ctx context.Context, id string, delta int64) error {
	oid, err := parseID(id)
	if err != nil {
		return nil
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"enrollment_count": delta}},
	)
	if err != nil {
		return wrapError("adjust enrollment count", err)
	}
	return nil
}
