package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
)

// Category names the three sheets the assistant works with.
type Category string

const (
	Tariffs  Category = "tariffs"
	Models   Category = "models"
	Synonyms Category = "synonyms"
)

// Categories lists all known categories in a stable order.
func Categories() []Category {
	return []Category{Tariffs, Models, Synonyms}
}

// Sheet identifies one spreadsheet to fetch.
type Sheet struct {
	Category Category
	ID       string
}

// Source fetches the rows of one sheet. Implementations must treat every
// failure as recoverable: an error degrades that category only.
type Source interface {
	Fetch(ctx context.Context, sheet Sheet) ([]Record, error)
}

// DefaultExportBase is the Google Sheets CSV export endpoint.
const DefaultExportBase = "https://docs.google.com"

// CSVSource fetches sheets through the public CSV export URL. The zero
// value is not usable; use NewCSVSource.
type CSVSource struct {
	client  *http.Client
	baseURL string
}

// NewCSVSource builds a CSV export source. A nil client falls back to
// http.DefaultClient; callers wanting a bounded fetch should pass a client
// with a timeout or use a deadline context.
func NewCSVSource(client *http.Client, baseURL string) *CSVSource {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultExportBase
	}
	return &CSVSource{client: client, baseURL: baseURL}
}

func (s *CSVSource) Fetch(ctx context.Context, sheet Sheet) ([]Record, error) {
	url := fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", s.baseURL, sheet.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", sheet.Category, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", sheet.Category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", sheet.Category, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s body: %w", sheet.Category, err)
	}
	if len(body) < 10 {
		return nil, fmt.Errorf("fetch %s: sheet is empty", sheet.Category)
	}

	return decodeCSV(body, sheet.Category)
}

// newBOMReader strips the UTF-8 BOM the export endpoint prepends.
func newBOMReader(body []byte) io.Reader {
	return bytes.NewReader(bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF}))
}

func decodeCSV(body []byte, category Category) ([]Record, error) {
	reader := csv.NewReader(newBOMReader(body))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s csv: %w", category, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse %s: no header row", category)
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
