package enrollments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skywebdev/server/internal/domain"
)

type fakeRepo struct {
	items  map[string]*Enrollment
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]*Enrollment)}
}

func (r *fakeRepo) List(ctx context.Context, filters Filters, page domain.Page) ([]Enrollment, int64, error) {
	out := make([]Enrollment, 0, len(r.items))
	for _, e := range r.items {
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.InternshipID != "" && e.InternshipID != filters.InternshipID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Enrollment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) Insert(ctx context.Context, enrollment *Enrollment) (string, error) {
	for _, e := range r.items {
		if e.InternshipID == enrollment.InternshipID && e.Email == enrollment.Email {
			return "", domain.ErrDuplicate
		}
	}
	r.nextID++
	id := string(rune('0' + r.nextID))
	stored := *enrollment
	stored.ID = id
	r.items[id] = &stored
	return id, nil
}

func (r *fakeRepo) Exists(ctx context.Context, internshipID, email string) (bool, error) {
	for _, e := range r.items {
		if e.InternshipID == internshipID && e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Enrollment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Status = status
	copied := *e
	return &copied, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByStatus: make(map[Status]int64)}
	for _, e := range r.items {
		stats.ByStatus[e.Status]++
		stats.Total++
	}
	return stats, nil
}

type fakePostings struct {
	postings map[string]*PostingSummary
	counts   map[string]int64
}

func newFakePostings() *fakePostings {
	return &fakePostings{
		postings: make(map[string]*PostingSummary),
		counts:   make(map[string]int64),
	}
}

func (p *fakePostings) GetPosting(ctx context.Context, id string) (*PostingSummary, error) {
	posting, ok := p.postings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return posting, nil
}

func (p *fakePostings) AdjustEnrollmentCount(ctx context.Context, id string, delta int64) error {
	p.counts[id] += delta
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 8)}
}

func (n *fakeNotifier) SendApplicationReceived(ctx context.Context, enrollment *Enrollment, internship *PostingSummary) {
	n.mu.Lock()
	n.calls = append(n.calls, enrollment.Email)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *fakeNotifier) sent(t *testing.T) []string {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never dispatched")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

func newTestService() (*Service, *fakeRepo, *fakePostings, *fakeNotifier) {
	repo := newFakeRepo()
	postings := newFakePostings()
	postings.postings["intern1"] = &PostingSummary{ID: "intern1", Title: "Backend Intern", Duration: "3 months", IsActive: true}
	postings.postings["closed"] = &PostingSummary{ID: "closed", Title: "Closed Intern", IsActive: false}
	notifier := newFakeNotifier()
	return NewService(repo, postings, notifier, zerolog.Nop()), repo, postings, notifier
}

func validApply() ApplyParams {
	return ApplyParams{
		InternshipID: "intern1",
		Name:         "Asha Rao",
		Email:        "Asha@Example.com",
		Phone:        "+91 9000000000",
		ResumeLink:   "https://example.com/asha-resume.pdf",
	}
}

func TestApply(t *testing.T) {
	svc, _, postings, notifier := newTestService()

	enrollment, err := svc.Apply(context.Background(), validApply())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, enrollment.Status)
	assert.Equal(t, "asha@example.com", enrollment.Email)
	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, int64(1), postings.counts["intern1"])
	assert.Equal(t, []string{"asha@example.com"}, notifier.sent(t))
}

func TestApplyUnknownPosting(t *testing.T) {
	svc, _, _, _ := newTestService()

	params := validApply()
	params.InternshipID = "missing"
	_, err := svc.Apply(context.Background(), params)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyInactivePosting(t *testing.T) {
	svc, _, postings, _ := newTestService()

	params := validApply()
	params.InternshipID = "closed"
	_, err := svc.Apply(context.Background(), params)

	var conflict domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, postings.counts["closed"])
}

func TestApplyDuplicateEmail(t *testing.T) {
	svc, _, postings, notifier := newTestService()

	_, err := svc.Apply(context.Background(), validApply())
	require.NoError(t, err)
	notifier.sent(t)

	// Same address with different casing still counts as a duplicate.
	params := validApply()
	params.Email = "ASHA@EXAMPLE.COM"
	_, err = svc.Apply(context.Background(), params)

	var conflict domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), postings.counts["intern1"])
}

func TestApplyDuplicateFromUniqueIndex(t *testing.T) {
	// Simulates losing the check-then-insert race: the pre-check passes but
	// the insert hits the unique index.
	svc, repo, postings, _ := newTestService()
	repo.items["existing"] = &Enrollment{ID: "existing", InternshipID: "intern1", Email: "asha@example.com"}

	// The fake's Exists sees the row too, so drop it from the pre-check
	// path by checking the insert directly.
	_, err := repo.Insert(context.Background(), &Enrollment{InternshipID: "intern1", Email: "asha@example.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = svc.Apply(context.Background(), validApply())
	var conflict domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, postings.counts["intern1"])
}

func TestApplyValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	params := validApply()
	params.Email = "not-an-email"
	_, err := svc.Apply(context.Background(), params)

	var invalid domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "email", invalid.Field)
}

func TestApplyRequiresResume(t *testing.T) {
	svc, _, postings, _ := newTestService()

	params := validApply()
	params.ResumeLink = ""
	_, err := svc.Apply(context.Background(), params)

	var invalid domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "resumeLink", invalid.Field)
	assert.Zero(t, postings.counts["intern1"])
}

func TestApplyPhoneOptional(t *testing.T) {
	svc, _, _, notifier := newTestService()

	params := validApply()
	params.Phone = ""
	_, err := svc.Apply(context.Background(), params)
	require.NoError(t, err)
	notifier.sent(t)
}

func TestSetStatus(t *testing.T) {
	svc, _, _, notifier := newTestService()

	enrollment, err := svc.Apply(context.Background(), validApply())
	require.NoError(t, err)
	notifier.sent(t)

	// Any transition is allowed while the application is open, including
	// skipping straight to a decision.
	updated, err := svc.SetStatus(context.Background(), enrollment.ID, StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, updated.Status)

	// Decisions are final.
	_, err = svc.SetStatus(context.Background(), enrollment.ID, StatusReviewing)
	var conflict domain.ConflictError
	require.ErrorAs(t, err, &conflict)

	// Re-asserting the same terminal status is a no-op, not an error.
	again, err := svc.SetStatus(context.Background(), enrollment.ID, StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, again.Status)
}

func TestSetStatusUnknownValue(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.SetStatus(context.Background(), "any", Status("archived"))
	var invalid domain.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "status", invalid.Field)
}

func TestDeleteReleasesCount(t *testing.T) {
	svc, _, postings, notifier := newTestService()

	enrollment, err := svc.Apply(context.Background(), validApply())
	require.NoError(t, err)
	notifier.sent(t)
	require.Equal(t, int64(1), postings.counts["intern1"])

	require.NoError(t, svc.Delete(context.Background(), enrollment.ID))
	assert.Equal(t, int64(0), postings.counts["intern1"])
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.List(context.Background(), Filters{Status: Status("bogus")}, domain.NewPage(1, 50, 50))
	var invalid domain.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestStats(t *testing.T) {
	svc, repo, _, _ := newTestService()
	repo.items["1"] = &Enrollment{ID: "1", Status: StatusPending}
	repo.items["2"] = &Enrollment{ID: "2", Status: StatusPending}
	repo.items["3"] = &Enrollment{ID: "3", Status: StatusAccepted}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus[StatusPending])
	assert.Equal(t, int64(1), stats.ByStatus[StatusAccepted])
}
