package domain

// Image references a blob held by the object store. URL dereferences the
// asset publicly; PublicID is the durable key the store addresses it by.
// The two only ever change together.
type Image struct {
	URL      string `json:"url" bson:"url"`
	PublicID string `json:"publicId" bson:"public_id"`
}

// Page describes offset-based pagination. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

func NewPage(number, limit, defaultLimit int) Page {
	if number < 1 {
		number = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 200 {
		limit = 200
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Skip() int64 {
	return int64(p.Number-1) * int64(p.Limit)
}

// StringOr returns v, or fallback when v is empty.
func StringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// OneOf reports whether v is a member of allowed.
func OneOf(v string, allowed ...string) bool {
	for _, candidate := range allowed {
		if v == candidate {
			return true
		}
	}
	return false
}

// BoolOr returns the pointed-to value, or fallback when v is nil.
func BoolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Pages returns the number of pages needed for total items.
func (p Page) Pages(total int64) int64 {
	if p.Limit <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return pages
}
