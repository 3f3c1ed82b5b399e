package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/validation"
)

// Package is a pricing package offered on the marketing site.
type Package struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Currency    string       `json:"currency"`
	Duration    string       `json:"duration"`
	Image       domain.Image `json:"image"`
	Features    []Feature    `json:"features"`
	Stack       []string     `json:"stack"`
	Category    string       `json:"category"`
	Popular     bool         `json:"popular"`
	ButtonText  string       `json:"buttonText"`
	Order       int          `json:"order"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Feature is one line of a package's feature list.
type Feature struct {
	Text     string `json:"text" bson:"text" validate:"required"`
	Included bool   `json:"included" bson:"included"`
}

// FeatureList accepts either a native JSON array or a JSON-encoded string
// holding one.
type FeatureList []Feature

func (l *FeatureList) UnmarshalJSON(raw []byte) error {
	var items []Feature
	if err := validation.DecodeFlexible(json.RawMessage(raw), &items); err != nil {
		return err
	}
	*l = items
	return nil
}

type Filters struct {
	Category string
	IsActive *bool
}

type Repository interface {
	List(ctx context.Context, filters Filters, page domain.Page) ([]Package, int64, error)
	GetByID(ctx context.Context, id string) (*Package, error)
	Insert(ctx context.Context, pkg *Package) (string, error)
	Update(ctx context.Context, id string, update Update) (*Package, error)
	Delete(ctx context.Context, id string) error
}

// Update carries partial changes; nil fields are left untouched.
type Update struct {
	Name        *string
	Description *string
	Price       *float64
	Currency    *string
	Duration    *string
	Features    *[]Feature
	Stack       *[]string
	Category    *string
	Popular     *bool
	ButtonText  *string
	Order       *int
	IsActive    *bool
	Image       *domain.Image
}
