package teams

import (
	"context"
	"time"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/validation"
)

// Member is a team member shown on the marketing site.
type Member struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      string       `json:"role"`
	Bio       string       `json:"bio"`
	Image     domain.Image `json:"image"`
	Skills    []string     `json:"skills"`
	Social    SocialLinks  `json:"social"`
	Order     int          `json:"order"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SocialLinks accepts either a native JSON object or a JSON-encoded string,
// as submitted in multipart form fields.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin" bson:"linkedin"`
	GitHub    string `json:"github" bson:"github"`
	Twitter   string `json:"twitter" bson:"twitter"`
	Behance   string `json:"behance" bson:"behance"`
	Instagram string `json:"instagram" bson:"instagram"`
	Email     string `json:"email" bson:"email" validate:"required,email"`
}

func (s *SocialLinks) UnmarshalJSON(raw []byte) error {
	type plain SocialLinks
	var decoded plain
	if err := validation.DecodeFlexible(raw, &decoded); err != nil {
		return err
	}
	*s = SocialLinks(decoded)
	return nil
}

type Filters struct {
	IsActive *bool
}

type Repository interface {
	List(ctx context.Context, filters Filters, page domain.Page) ([]Member, int64, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	Insert(ctx context.Context, member *Member) (string, error)
	Update(ctx context.Context, id string, update Update) (*Member, error)
	Delete(ctx context.Context, id string) error
}

// Update carries partial changes; nil fields are left untouched.
type Update struct {
	Name     *string
	Role     *string
	Bio      *string
	Skills   *[]string
	Social   *SocialLinks
	Order    *int
	IsActive *bool
	Image    *domain.Image
}
