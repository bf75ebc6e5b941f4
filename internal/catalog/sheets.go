package catalog

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// defaultReadRange covers every column the sheets actually use.
const defaultReadRange = "A1:Z1000"

// SheetsSource fetches rows through the Sheets API v4. Used where the
// public CSV export endpoint is blocked; requires an API key and sheets
// shared as readable.
type SheetsSource struct {
	service   *sheets.Service
	readRange string
}

// NewSheetsSource builds an API-backed source with the given API key.
func NewSheetsSource(ctx context.Context, apiKey string) (*SheetsSource, error) {
	service, err := sheets.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &SheetsSource{service: service, readRange: defaultReadRange}, nil
}

func (s *SheetsSource) Fetch(ctx context.Context, sheet Sheet) ([]Record, error) {
	resp, err := s.service.Spreadsheets.Values.Get(sheet.ID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s via api: %w", sheet.Category, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("fetch %s: sheet is empty", sheet.Category)
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = fmt.Sprint(cell)
	}

	records := make([]Record, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = fmt.Sprint(row[i])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
