package internships

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywebdev/server/internal/domain"
	"github.com/skywebdev/server/internal/media"
)

type fakeRepo struct {
	postings map[string]*Posting
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{postings: make(map[string]*Posting)}
}

func (r *fakeRepo) List(ctx context.Context, filters Filters, page domain.Page) ([]Posting, int64, error) {
	out := make([]Posting, 0, len(r.postings))
	for _, p := range r.postings {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Posting, error) {
	p, ok := r.postings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) Insert(ctx context.Context, posting *Posting) (string, error) {
	r.nextID++
	id := string(rune('0' + r.nextID))
	stored := *posting
	stored.ID = id
	r.postings[id] = &stored
	return id, nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, update Update) (*Posting, error) {
	p, ok := r.postings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.IsActive != nil {
		p.IsActive = *update.IsActive
	}
	if update.Image != nil {
		p.Image = *update.Image
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.postings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.postings, id)
	return nil
}

type fakeStore struct {
	deletes []string
}

func (s *fakeStore) Upload(ctx context.Context, upload media.Upload, folder string) (domain.Image, error) {
	return domain.Image{URL: "https://cdn.test/x", PublicID: folder + "/x"}, nil
}

func (s *fakeStore) Delete(ctx context.Context, publicID string) error {
	s.deletes = append(s.deletes, publicID)
	return nil
}

func (s *fakeStore) Replace(ctx context.Context, oldPublicID string, upload media.Upload, folder string) (domain.Image, error) {
	return s.Upload(ctx, upload, folder)
}

type fakePurger struct {
	purged []string
	count  int64
	fail   bool
}

func (p *fakePurger) DeleteByInternship(ctx context.Context, internshipID string) (int64, error) {
	if p.fail {
		return 0, errors.New("purge failed")
	}
	p.purged = append(p.purged, internshipID)
	return p.count, nil
}

func validCreate() CreateParams {
	return CreateParams{
		Title:       "Backend Intern",
		Description: "Work on the API",
		Duration:    "3 months",
	}
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeStore{}, &fakePurger{}, zerolog.Nop())

	posting, err := svc.Create(context.Background(), validCreate(), media.Upload{Content: []byte("img")})
	require.NoError(t, err)
	assert.True(t, posting.Certificate)
	assert.Equal(t, "Unpaid", posting.Stipend)
	assert.Equal(t, "Remote", posting.Location)
	assert.True(t, posting.IsActive)
	assert.Nil(t, posting.StartDate)
}

func TestCreateParsesDates(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeStore{}, &fakePurger{}, zerolog.Nop())

	params := validCreate()
	params.StartDate = "2026-10-01"
	params.ApplicationDeadline = "2026-09-15T00:00:00Z"
	posting, err := svc.Create(context.Background(), params, media.Upload{Content: []byte("img")})
	require.NoError(t, err)
	require.NotNil(t, posting.StartDate)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *posting.StartDate)
	require.NotNil(t, posting.ApplicationDeadline)

	params.StartDate = "next month"
	_, err = svc.Create(context.Background(), params, media.Upload{Content: []byte("img")})
	var invalid domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "startDate", invalid.Field)
}

func TestDeleteCascade(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	purger := &fakePurger{count: 3}
	svc := NewService(repo, store, purger, zerolog.Nop())

	posting, err := svc.Create(context.Background(), validCreate(), media.Upload{Content: []byte("img")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), posting.ID))
	assert.Equal(t, []string{posting.ID}, purger.purged)
	assert.Equal(t, []string{posting.Image.PublicID}, store.deletes)
	_, err = svc.Get(context.Background(), posting.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteAbortsWhenPurgeFails(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeStore{}
	svc := NewService(repo, store, &fakePurger{fail: true}, zerolog.Nop())

	posting, err := svc.Create(context.Background(), validCreate(), media.Upload{Content: []byte("img")})
	require.NoError(t, err)

	require.Error(t, svc.Delete(context.Background(), posting.ID))
	// The posting and its image survive an aborted cascade.
	assert.Empty(t, store.deletes)
	_, err = svc.Get(context.Background(), posting.ID)
	assert.NoError(t, err)
}

func TestDeleteMissing(t *testing.T) {
	purger := &fakePurger{}
	svc := NewService(newFakeRepo(), &fakeStore{}, purger, zerolog.Nop())

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, purger.purged)
}
