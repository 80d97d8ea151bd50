package superset

import (
	"context"
	"fmt"
	"os"

	"go-superset-notifier/internal/extract"
	"go-superset-notifier/internal/listing"
)

// SnapshotPortal replays a saved detail page instead of driving a browser.
// It exposes exactly one listing: the saved page.
type SnapshotPortal struct {
	path string
}

func NewSnapshotPortal(path string) *SnapshotPortal {
	return &SnapshotPortal{path: path}
}

func (p *SnapshotPortal) Name() string {
	return "Superset (snapshot " + p.path + ")"
}

func (p *SnapshotPortal) Login(context.Context) error    { return nil }
func (p *SnapshotPortal) OpenJobs(context.Context) error { return nil }

func (p *SnapshotPortal) Snippets(context.Context) ([]listing.Snippet, error) {
	return []listing.Snippet{{Index: 0, Text: p.path}}, nil
}

func (p *SnapshotPortal) Open(_ context.Context, index int) error {
	if index != 0 {
		return fmt.Errorf("snapshot has a single listing, got card %d", index+1)
	}
	return nil
}

func (p *SnapshotPortal) Detail(context.Context) (extract.DetailView, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	view, err := extract.NewHTMLView(f, DetailSelectors)
	if err != nil {
		return nil, err
	}
	return view, nil
}
