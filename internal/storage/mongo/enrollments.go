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

type EnrollmentRepository struct {
	collection  *mongo.Collection
	internships *mongo.Collection
}

var (
	_ enrollments.Repository       = (*EnrollmentRepository)(nil)
	_ internships.EnrollmentPurger = (*EnrollmentRepository)(nil)
)

type enrollmentDoc struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	InternshipID bson.ObjectID `bson:"internship_id"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	Phone        string        `bson:"phone"`
	ResumeLink   string        `bson:"resume_link,omitempty"`
	CoverLetter  string        `bson:"cover_letter,omitempty"`
	Status       string        `bson:"status"`
	AppliedAt    time.Time     `bson:"applied_at"`
}

func (d enrollmentDoc) toDomain() *enrollments.Enrollment {
	return &enrollments.Enrollment{
		ID:           d.ID.Hex(),
		InternshipID: d.InternshipID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		ResumeLink:   d.ResumeLink,
		CoverLetter:  d.CoverLetter,
		Status:       enrollments.Status(d.Status),
		AppliedAt:    d.AppliedAt,
	}
}

func (r *EnrollmentRepository) List(ctx context.Context, filters enrollments.Filters, page domain.Page) ([]enrollments.Enrollment, int64, error) {
	filter := bson.M{}
	if filters.InternshipID != "" {
		oid, err := parseID(filters.InternshipID)
		if err != nil {
			return []enrollments.Enrollment{}, 0, nil
		}
		filter["internship_id"] = oid
	}
	if filters.Status != "" {
		filter["status"] = string(filters.Status)
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError("count enrollments", err)
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "applied_at", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit)))
	if err != nil {
		return nil, 0, wrapError("list enrollments", err)
	}
	defer cursor.Close(ctx)

	var docs []enrollmentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, wrapError("decode enrollments", err)
	}

	items := make([]enrollments.Enrollment, 0, len(docs))
	for _, doc := range docs {
		items = append(items, *doc.toDomain())
	}
	if err := r.attachPostings(ctx, items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// attachPostings populates each enrollment's posting summary with a single
// batched lookup.
func (r *EnrollmentRepository) attachPostings(ctx context.Context, items []enrollments.Enrollment) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]bson.ObjectID, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.InternshipID]; ok {
			continue
		}
		seen[item.InternshipID] = struct{}{}
		oid, err := bson.ObjectIDFromHex(item.InternshipID)
		if err != nil {
			continue
		}
		ids = append(ids, oid)
	}

	cursor, err := r.internships.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"title": 1, "duration": 1, "location": 1, "stipend": 1, "is_active": 1}))
	if err != nil {
		return wrapError("load enrollment postings", err)
	}
	defer cursor.Close(ctx)

	type postingRow struct {
		ID       bson.ObjectID `bson:"_id"`
		Title    string        `bson:"title"`
		Duration string        `bson:"duration"`
		Location string        `bson:"location"`
		Stipend  string        `bson:"stipend"`
		IsActive bool          `bson:"is_active"`
	}
	var rows []postingRow
	if err := cursor.All(ctx, &rows); err != nil {
		return wrapError("decode enrollment postings", err)
	}

	byID := make(map[string]*enrollments.PostingSummary, len(rows))
	for _, row := range rows {
		byID[row.ID.Hex()] = &enrollments.PostingSummary{
			ID:       row.ID.Hex(),
			Title:    row.Title,
			Duration: row.Duration,
			Location: row.Location,
			Stipend:  row.Stipend,
			IsActive: row.IsActive,
		}
	}
	for i := range items {
		items[i].Internship = byID[items[i].InternshipID]
	}
	return nil
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*enrollments.Enrollment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc enrollmentDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, wrapError("get enrollment", err)
	}

	item := doc.toDomain()
	single := []enrollments.Enrollment{*item}
	if err := r.attachPostings(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *enrollments.Enrollment) (string, error) {
	internshipID, err := bson.ObjectIDFromHex(enrollment.InternshipID)
	if err != nil {
		return "", domain.ErrNotFound
	}

	doc := enrollmentDoc{
		InternshipID: internshipID,
		Name:         enrollment.Name,
		Email:        enrollment.Email,
		Phone:        enrollment.Phone,
		ResumeLink:   enrollment.ResumeLink,
		CoverLetter:  enrollment.CoverLetter,
		Status:       string(enrollment.Status),
		AppliedAt:    enrollment.AppliedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", wrapError("insert enrollment", err)
	}
	return result.InsertedID.(bson.ObjectID).Hex(), nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, internshipID, email string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(internshipID)
	if err != nil {
		return false, nil
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"internship_id": oid, "email": email})
	if err != nil {
		return false, wrapError("check enrollment exists", err)
	}
	return count > 0, nil
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status enrollments.Status) (*enrollments.Enrollment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc enrollmentDoc
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError("update enrollment status", err)
	}
	return doc.toDomain(), nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapError("delete enrollment", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByInternship removes every enrollment for a posting and reports how
// many were dropped. Backs the internship delete cascade.
func (r *EnrollmentRepository) DeleteByInternship(ctx context.Context, internshipID string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(internshipID)
	if err != nil {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"internship_id": oid})
	if err != nil {
		return 0, wrapError("purge enrollments", err)
	}
	return result.DeletedCount, nil
}

func (r *EnrollmentRepository) Stats(ctx context.Context) (*enrollments.Stats, error) {
	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, wrapError("aggregate enrollment stats", err)
	}
	defer cursor.Close(ctx)

	type row struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	var rows []row
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, wrapError("decode enrollment stats", err)
	}

	stats := &enrollments.Stats{ByStatus: make(map[enrollments.Status]int64)}
	for _, r := range rows {
		stats.ByStatus[enrollments.Status(r.Status)] = r.Count
		stats.Total += r.Count
	}
	return stats, nil
}
