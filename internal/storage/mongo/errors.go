package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/skywebdev/server/internal/domain"
)

// parseID converts a hex id into an ObjectID. A malformed id can never match
// a stored document, so it maps to not-found rather than a validation error.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, domain.ErrNotFound
	}
	return oid, nil
}

// wrapError translates driver errors into domain sentinels.
func wrapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
