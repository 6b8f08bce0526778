package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"auctionscout/internal/dedup"
	"auctionscout/internal/scraper"
)

// Sheet layout: columns A-F hold title, date, location, category,
// description, link. Row 1 is the header.
const valueRange = "Sheet1!A:F"

type Repository struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *zap.SugaredLogger
}

func NewRepository(ctx context.Context, spreadsheetID string, credentialsJSON []byte, logger *zap.SugaredLogger) (*Repository, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is empty")
	}
	if len(credentialsJSON) == 0 {
		return nil, fmt.Errorf("service account credentials are empty")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	return &Repository{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

func (r *Repository) LoadExistingKeys(ctx context.Context) (map[string]struct{}, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, valueRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", valueRange, err)
	}
	return keysFromRows(resp.Values), nil
}

func (r *Repository) Append(ctx context.Context, rows []scraper.Auction) error {
	if len(rows) == 0 {
		r.logger.Info("no rows to append, skipping sheets call")
		return nil
	}

	values := make([][]interface{}, 0, len(rows))
	for _, a := range rows {
		values = append(values, []interface{}{a.Title, a.Date, a.Location, a.Category, a.Description, a.Link})
	}

	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, valueRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows: %w", len(rows), err)
	}
	return nil
}

func (r *Repository) Close() error {
	return nil
}

// keysFromRows builds the dedup key set from raw sheet rows, skipping
// the header row. Title and link live in the first and sixth columns.
func keysFromRows(rows [][]interface{}) map[string]struct{} {
	keys := make(map[string]struct{})
	for i, row := range rows {
		if i == 0 {
			continue
		}
		title := cell(row, 0)
		link := cell(row, 5)
		if title == "" && link == "" {
			continue
		}
		keys[dedup.Key(title, link)] = struct{}{}
	}
	return keys
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return s
}
