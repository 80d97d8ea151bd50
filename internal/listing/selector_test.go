package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snippets(texts ...string) []Snippet {
	out := make([]Snippet, len(texts))
	for i, text := range texts {
		out[i] = Snippet{Index: i, Text: text}
	}
	return out
}

func TestSelectLatest(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected int
	}{
		{
			name:     "most recent wins",
			texts:    []string{"Acme\nSDE\n2 days ago", "Globex\nAnalyst\n5 hours ago", "Initech\nQA\na day ago"},
			expected: 1,
		},
		{
			name:     "hours beat a day",
			texts:    []string{"Acme\na day ago", "Globex\n23 hours ago"},
			expected: 1,
		},
		{
			name:     "tie keeps earlier card",
			texts:    []string{"Acme\n3 hours ago", "Globex\n3 hours ago"},
			expected: 0,
		},
		{
			name:     "cards without time are ignored",
			texts:    []string{"Acme\nno date", "Globex\n4 days ago", "Initech"},
			expected: 1,
		},
		{
			name:     "no time anywhere falls back to first",
			texts:    []string{"Acme", "Globex", "Initech"},
			expected: 0,
		},
		{
			name:     "unreadable first card still anchors fallback",
			texts:    []string{"", "Globex"},
			expected: 0,
		},
		{
			name:     "huge day count stays old",
			texts:    []string{"Acme\n1 hours ago", "Globex\n200000 days ago"},
			expected: 0,
		},
		{
			name:     "huge hour count stays old",
			texts:    []string{"Acme\n1 hours ago", "Globex\n3000000 hours ago"},
			expected: 0,
		},
		{
			name:     "a day split across lines",
			texts:    []string{"Acme\n1 hours ago", "Globex\na\nday ago"},
			expected: 0,
		},
		{
			name:     "a day with extra spaces",
			texts:    []string{"Acme\n1 hours ago", "Globex\na  day ago"},
			expected: 0,
		},
		{
			name:     "case insensitive",
			texts:    []string{"Acme\n6 HOURS AGO", "Globex\n2 Hours Ago"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectLatest(snippets(tt.texts...), fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Index)
			assert.Equal(t, tt.texts[tt.expected], got.Text)
		})
	}
}

func TestSelectLatest_Empty(t *testing.T) {
	_, err := SelectLatest(nil, fixedNow)
	assert.ErrorIs(t, err, ErrNoListings)
}

func TestPostedPhrase(t *testing.T) {
	phrase, ok := PostedPhrase("Vinsol\nSoftware Engineer\nPosted 12 hours ago • Full Time")
	assert.True(t, ok)
	assert.Equal(t, "12 hours ago", phrase)

	_, ok = PostedPhrase("Vinsol\nSoftware Engineer")
	assert.False(t, ok)
}
