package mongo

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/skywebdev/server/internal/domain"
)

// displayOrder is the listing sort shared by the content collections:
// explicit order first, newest first within the same order.
var displayOrder = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}

type imageDoc struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

func imageFromDomain(img domain.Image) imageDoc {
	return imageDoc{URL: img.URL, PublicID: img.PublicID}
}

func (d imageDoc) toDomain() domain.Image {
	return domain.Image{URL: d.URL, PublicID: d.PublicID}
}

func setString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}

func setInt(set bson.M, key string, value *int) {
	if value != nil {
		set[key] = *value
	}
}

func setBool(set bson.M, key string, value *bool) {
	if value != nil {
		set[key] = *value
	}
}

func setFloat(set bson.M, key string, value *float64) {
	if value != nil {
		set[key] = *value
	}
}

func setImage(set bson.M, img *domain.Image) {
	if img != nil {
		set["image"] = imageFromDomain(*img)
	}
}

// searchFilter builds a case-insensitive substring match over the given
// fields.
func searchFilter(query string, fields ...string) bson.M {
	clauses := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, bson.M{field: bson.M{"$regex": query, "$options": "i"}})
	}
	return bson.M{"$or": clauses}
}
