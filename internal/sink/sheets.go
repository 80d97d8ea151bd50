package sink

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go-superset-notifier/internal/models"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSink appends one row per job to the first sheet of a spreadsheet.
// Values are placed under the header cell with the matching column name.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsSink authenticates with a service account key.
func NewSheetsSink(ctx context.Context, spreadsheetID, email, privateKey string) (*SheetsSink, error) {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return newSheetsSink(ctx, spreadsheetID, option.WithHTTPClient(conf.Client(ctx)))
}

func newSheetsSink(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init sheets service: %w", err)
	}
	return &SheetsSink{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsSink) Name() string {
	return "Google Sheets"
}

func (s *SheetsSink) Send(ctx context.Context, job models.JobRecord) error {
	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to load spreadsheet: %w", err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return fmt.Errorf("spreadsheet %s has no sheets", s.spreadsheetID)
	}
	sheet := quoteSheet(doc.Sheets[0].Properties.Title)

	headerResp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet+"!1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read header row: %w", err)
	}

	var header []string
	if len(headerResp.Values) > 0 {
		for _, cell := range headerResp.Values[0] {
			header = append(header, strings.TrimSpace(fmt.Sprint(cell)))
		}
	}

	if len(header) == 0 {
		log.Printf("🧾 Sheet %s has no header row. Writing one.", sheet)
		header = models.Columns
		_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, sheet+"!1:1", &sheets.ValueRange{
			Values: [][]interface{}{toCells(header)},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to write header row: %w", err)
		}
	}

	row := rowForHeader(header, job.Row())
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheet, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

// rowForHeader orders values by header. Unknown header cells get "".
func rowForHeader(header []string, values map[string]string) []interface{} {
	row := make([]interface{}, len(header))
	placed := 0
	for i, name := range header {
		v, ok := values[name]
		if ok {
			placed++
		}
		row[i] = v
	}
	if placed < len(values) {
		log.Printf("⚠️ Sheet header is missing %d of %d job columns", len(values)-placed, len(values))
	}
	return row
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// quoteSheet makes a sheet title safe for A1 notation.
func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
