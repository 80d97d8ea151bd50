package listing

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Epoch is returned for text with no recognised phrase. It sorts before any real posting.
var Epoch = time.Unix(0, 0).UTC()

var (
	leadingIntRegex = regexp.MustCompile(`^\s*(\d+)`)
	aDayRegex       = regexp.MustCompile(`(?i)\ba\s+day\b`)
)

// maxCount caps N so absurd counts stay in the past instead of overflowing.
const maxCount = math.MaxInt32

// maxHours is the largest hour count a time.Duration can hold.
const maxHours = math.MaxInt64 / int64(time.Hour)

// ParseRelativeTime turns phrases like "3 hours ago", "2 days ago" or "a day ago"
// into an absolute time relative to now.
func ParseRelativeTime(text string, now time.Time) time.Time {
	lower := strings.ToLower(text)

	//hours first: "24 hours ago" must not fall through to the day branch
	if strings.Contains(lower, "hour") {
		return hoursAgo(now, leadingInt(lower))
	}

	if strings.Contains(lower, "day") {
		n := leadingInt(lower)
		if aDayRegex.MatchString(lower) {
			n = 1
		}
		return now.AddDate(0, 0, -n)
	}

	return Epoch
}

func hoursAgo(now time.Time, n int) time.Time {
	if int64(n) <= maxHours {
		return now.Add(-time.Duration(n) * time.Hour)
	}
	return now.AddDate(0, 0, -(n / 24)).Add(-time.Duration(n%24) * time.Hour)
}

// leadingInt reads the integer at the start of s, 0 when there is none.
// Counts above maxCount are clamped.
func leadingInt(s string) int {
	match := leadingIntRegex.FindStringSubmatch(s)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if errors.Is(err, strconv.ErrRange) || n > maxCount {
		return maxCount
	}
	if err != nil {
		return 0
	}
	return n
}
