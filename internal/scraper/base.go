// Define the interface every portal driver implements
// Ensure the run always walks the same steps

package scraper

import (
	"context"

	"go-superset-notifier/internal/extract"
	"go-superset-notifier/internal/listing"
)

// Portal drives a job portal. Calls happen strictly in the order declared.
type Portal interface {
	//Login signs in, or confirms an existing session
	Login(ctx context.Context) error

	//OpenJobs shows the full job list
	OpenJobs(ctx context.Context) error

	//Snippets reads every job card in presentation order.
	//A card that cannot be read is returned with empty text.
	Snippets(ctx context.Context) ([]listing.Snippet, error)

	//Open navigates to the card at index
	Open(ctx context.Context, index int) error

	//Detail exposes the opened job's detail page
	Detail(ctx context.Context) (extract.DetailView, error)

	//Name is the portal name
	Name() string
}
