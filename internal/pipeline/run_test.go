package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-superset-notifier/internal/dedup"
	"go-superset-notifier/internal/extract"
	"go-superset-notifier/internal/listing"
	"go-superset-notifier/internal/models"
	"go-superset-notifier/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticView struct {
	heading   string
	fragments []string
}

func (v staticView) Heading() (string, error)            { return v.heading, nil }
func (v staticView) SecondaryFields() ([]string, error)  { return []string{"Full Time", "Delhi"}, nil }
func (v staticView) LabeledFragments() ([]string, error) { return v.fragments, nil }
func (v staticView) Description() (string, error) {
	return "Eligibility Criteria: As per placement policy, 8 CGPA required\n", nil
}

type fakePortal struct {
	cards    []string
	views    map[int]extract.DetailView
	opened   []int
	loginErr error
	current  int
}

func (p *fakePortal) Name() string                   { return "fake" }
func (p *fakePortal) Login(context.Context) error    { return p.loginErr }
func (p *fakePortal) OpenJobs(context.Context) error { return nil }
func (p *fakePortal) Snippets(context.Context) ([]listing.Snippet, error) {
	out := make([]listing.Snippet, len(p.cards))
	for i, c := range p.cards {
		out[i] = listing.Snippet{Index: i, Text: c}
	}
	return out, nil
}
func (p *fakePortal) Open(_ context.Context, index int) error {
	p.opened = append(p.opened, index)
	p.current = index
	return nil
}
func (p *fakePortal) Detail(context.Context) (extract.DetailView, error) {
	return p.views[p.current], nil
}

type countingDispatcher struct {
	jobs []models.JobRecord
	err  error
}

func (d *countingDispatcher) Dispatch(_ context.Context, job models.JobRecord) error {
	d.jobs = append(d.jobs, job)
	return d.err
}

func view(company, role, ctc string) staticView {
	return staticView{
		heading:   company,
		fragments: []string{"Category:", "Engineering", "Job Functions:", role, "Job Profile CTC:", ctc},
	}
}

func newRunner(portal scraper.Portal, store dedup.MarkerStore, d Dispatcher) *Runner {
	return &Runner{
		Portal:     portal,
		Gate:       dedup.NewGate(store),
		Dispatcher: d,
		ApplyLink:  "https://app.joinsuperset.com/students",
		Now:        func() time.Time { return time.Date(2025, 7, 14, 12, 0, 0, 0, time.Local) },
	}
}

func TestRun_NewJobThenDuplicate(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Acme\n2 days ago", "Vinsol\n3 hours ago"},
		views: map[int]extract.DetailView{
			0: view("Acme", "QA", "6 LPA"),
			1: view("Vinsol", "Software Engineer", "12 LPA"),
		},
	}
	store := dedup.NewMemoryStore("")
	d := &countingDispatcher{}
	r := newRunner(portal, store, d)

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDispatched, res.Outcome)
	assert.Equal(t, []int{1}, portal.opened)
	require.Len(t, d.jobs, 1)
	assert.Equal(t, models.JobRecord{
		Company:     "Vinsol",
		Location:    "Delhi",
		Category:    "Engineering",
		Role:        "Software Engineer",
		CTC:         "12 LPA",
		Eligibility: "8 CGPA required",
		ApplyLink:   "https://app.joinsuperset.com/students",
		Timestamp:   "7/14/2025, 12:00:00 PM",
	}, d.jobs[0])
	last, _ := store.Load()
	assert.Equal(t, "vinsol-software engineer-12 lpa", last)

	res, err = r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, res.Outcome)
	assert.Len(t, d.jobs, 1, "no dispatch on the second run")
	assert.Equal(t, 1, store.Writes(), "no rewrite on the second run")
}

func TestRun_ChangedFieldDispatchesOnce(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Vinsol\n1 hour ago"},
		views: map[int]extract.DetailView{0: view("Vinsol", "Software Engineer", "14 LPA")},
	}
	store := dedup.NewMemoryStore("vinsol-software engineer-12 lpa")
	d := &countingDispatcher{}

	res, err := newRunner(portal, store, d).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDispatched, res.Outcome)
	assert.Len(t, d.jobs, 1)
	last, _ := store.Load()
	assert.Equal(t, "vinsol-software engineer-14 lpa", last)
}

func TestRun_NoListings(t *testing.T) {
	d := &countingDispatcher{}
	res, err := newRunner(&fakePortal{}, dedup.NewMemoryStore(""), d).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoListings, res.Outcome)
	assert.Empty(t, d.jobs)
}

func TestRun_CommitBeforeDispatch(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Vinsol"},
		views: map[int]extract.DetailView{0: view("Vinsol", "SDE", "12 LPA")},
	}
	store := dedup.NewMemoryStore("")
	boom := errors.New("sheets down")
	d := &countingDispatcher{err: boom}

	_, err := newRunner(portal, store, d).Run(context.Background())
	assert.ErrorIs(t, err, boom)
	last, _ := store.Load()
	assert.Equal(t, "vinsol-sde-12 lpa", last, "marker is written before dispatch")
}

func TestRun_CommitAfterDispatch(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Vinsol"},
		views: map[int]extract.DetailView{0: view("Vinsol", "SDE", "12 LPA")},
	}
	store := dedup.NewMemoryStore("")
	d := &countingDispatcher{err: errors.New("sheets down")}
	r := newRunner(portal, store, d)
	r.Options.CommitAfterDispatch = true

	_, err := r.Run(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, store.Writes(), "failed dispatch leaves the marker alone")

	d.err = nil
	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDispatched, res.Outcome)
	assert.Equal(t, 1, store.Writes())
}

type brokenStore struct{}

func (brokenStore) Load() (string, error) { return "", nil }
func (brokenStore) Save(string) error     { return errors.New("read-only filesystem") }

func TestRun_MarkerWriteFailureAbortsBeforeDispatch(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Vinsol"},
		views: map[int]extract.DetailView{0: view("Vinsol", "SDE", "12 LPA")},
	}
	d := &countingDispatcher{}

	_, err := newRunner(portal, brokenStore{}, d).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, d.jobs)
}

func TestRun_DryRun(t *testing.T) {
	portal := &fakePortal{
		cards: []string{"Vinsol"},
		views: map[int]extract.DetailView{0: view("Vinsol", "SDE", "12 LPA")},
	}
	store := dedup.NewMemoryStore("")
	d := &countingDispatcher{}
	r := newRunner(portal, store, d)
	r.Options.DryRun = true

	res, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDryRun, res.Outcome)
	assert.Empty(t, d.jobs)
	assert.Equal(t, 0, store.Writes())
}

func TestRun_LoginFailure(t *testing.T) {
	boom := errors.New("bad credentials")
	_, err := newRunner(&fakePortal{loginErr: boom}, dedup.NewMemoryStore(""), &countingDispatcher{}).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}
