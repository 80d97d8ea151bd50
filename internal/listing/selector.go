package listing

import (
	"errors"
	"log"
	"regexp"
	"time"
)

// ErrNoListings means the list view rendered no cards. Nothing to do for this run.
var ErrNoListings = errors.New("no job listings available")

var postedRegex = regexp.MustCompile(`(?i)(\d+\s+hours?\s+ago|\d+\s+days?\s+ago|a\s+day\s+ago)`)

// Snippet is the rendered text of one job card. Index is its position on the page.
type Snippet struct {
	Index int
	Text  string
}

// PostedPhrase returns the first relative-time phrase in text.
func PostedPhrase(text string) (string, bool) {
	match := postedRegex.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// SelectLatest picks the snippet with the most recent posting time.
// Ties keep the earlier snippet. When no snippet carries a time phrase the first
// snippet is returned.
func SelectLatest(snippets []Snippet, now time.Time) (Snippet, error) {
	if len(snippets) == 0 {
		return Snippet{}, ErrNoListings
	}

	var (
		latest     Snippet
		latestTime = Epoch
		found      bool
	)
	for _, s := range snippets {
		phrase, ok := PostedPhrase(s.Text)
		if !ok {
			log.Printf("❌ No time match in card %d", s.Index+1)
			continue
		}

		posted := ParseRelativeTime(phrase, now)
		log.Printf("⏰ Card %d posted: %s → %s", s.Index+1, phrase, posted.Format(time.RFC3339))
		if posted.After(latestTime) {
			latest = s
			latestTime = posted
			found = true
		}
	}

	if !found {
		log.Println("⚠️ Could not determine latest job. Falling back to first card.")
		return snippets[0], nil
	}
	return latest, nil
}
