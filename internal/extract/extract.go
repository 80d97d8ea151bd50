// Package extract pulls the job fields out of a rendered detail view.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	NotAvailable = "N/A"
	NotFound     = "Not found"
)

const (
	labelCategory = "Category:"
	labelFunction = "Job Functions:"
	labelCTC      = "Job Profile CTC:"
)

var (
	eligibilityRegex     = regexp.MustCompile(`(?i)Eligibility Criteria[:\s]*([^\n]+)`)
	placementPolicyRegex = regexp.MustCompile(`(?i)As per placement policy,?\s*`)
)

// DetailView exposes the named regions of a job detail page.
// A missing region is reported as a zero value, not an error.
type DetailView interface {
	// Heading is the primary heading text (company name).
	Heading() (string, error)
	// SecondaryFields are the secondary text fragments in page order; index 1 is the location.
	SecondaryFields() ([]string, error)
	// LabeledFragments are label/value fragments in page order.
	LabeledFragments() ([]string, error)
	// Description is the free-text description block with line breaks preserved.
	Description() (string, error)
}

// Fields is what the page itself tells us about a job.
type Fields struct {
	Company     string
	Location    string
	Category    string
	Role        string
	CTC         string
	Eligibility string
}

// Extract reads every region of view. Only real view failures are returned as errors.
func Extract(view DetailView) (Fields, error) {
	f := Fields{
		Company:  NotAvailable,
		Location: NotAvailable,
		Category: NotAvailable,
		Role:     NotAvailable,
		CTC:      NotAvailable,
	}

	heading, err := view.Heading()
	if err != nil {
		return f, fmt.Errorf("failed to read company heading: %w", err)
	}
	if company := strings.TrimSpace(heading); company != "" {
		f.Company = company
	}

	secondary, err := view.SecondaryFields()
	if err != nil {
		return f, fmt.Errorf("failed to read secondary fields: %w", err)
	}
	if len(secondary) >= 2 {
		f.Location = strings.TrimSpace(secondary[1])
	}

	fragments, err := view.LabeledFragments()
	if err != nil {
		return f, fmt.Errorf("failed to read labeled fragments: %w", err)
	}
	applyLabels(&f, fragments)

	description, err := view.Description()
	if err != nil {
		return f, fmt.Errorf("failed to read description: %w", err)
	}
	f.Eligibility = Eligibility(description)

	return f, nil
}

// applyLabels scans adjacent pairs: a recognised label makes the next fragment its value.
// Later occurrences overwrite earlier ones.
func applyLabels(f *Fields, fragments []string) {
	for i := 0; i < len(fragments)-1; i++ {
		value := strings.TrimSpace(fragments[i+1])
		switch normalizeLabel(fragments[i]) {
		case labelCategory:
			f.Category = value
		case labelFunction:
			f.Role = value
		case labelCTC:
			f.CTC = value
		}
	}
}

// normalizeLabel folds compatibility characters (non-breaking spaces and the like) and trims.
func normalizeLabel(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

// Eligibility returns the text after "Eligibility Criteria" up to the end of that line,
// without the "As per placement policy," boilerplate.
func Eligibility(description string) string {
	match := eligibilityRegex.FindStringSubmatch(description)
	if match == nil {
		return NotFound
	}
	eligibility := strings.TrimSpace(match[1])
	if loc := placementPolicyRegex.FindStringIndex(eligibility); loc != nil {
		eligibility = eligibility[:loc[0]] + eligibility[loc[1]:]
	}
	return strings.TrimSpace(eligibility)
}
