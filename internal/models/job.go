package models

import "time"

// TimestampLayout mirrors a browser's en-US toLocaleString output.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// Columns is the spreadsheet header order. Names match JobRecord's JSON keys.
var Columns = []string{"Company", "Location", "Category", "Role", "CTC", "Eligibility", "ApplyLink", "Timestamp"}

// JobRecord is the finalized listing pushed to every sink.
type JobRecord struct {
	Company     string `json:"Company"`
	Location    string `json:"Location"`
	Category    string `json:"Category"`
	Role        string `json:"Role"`
	CTC         string `json:"CTC"`
	Eligibility string `json:"Eligibility"`
	ApplyLink   string `json:"ApplyLink"`
	Timestamp   string `json:"Timestamp"`
}

// FormatTimestamp renders t in local time using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Row flattens the record into a column-name to value mapping.
func (r JobRecord) Row() map[string]string {
	return map[string]string{
		"Company":     r.Company,
		"Location":    r.Location,
		"Category":    r.Category,
		"Role":        r.Role,
		"CTC":         r.CTC,
		"Eligibility": r.Eligibility,
		"ApplyLink":   r.ApplyLink,
		"Timestamp":   r.Timestamp,
	}
}
