package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"auctionscout/internal/dedup"
	"auctionscout/internal/scraper"
)

// Repository is the SQL Server storage driver. Rows live in TblAuctions
// with the same six columns as the spreadsheet layout.
type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *zap.SugaredLogger
}

func NewRepository(dsn string, commandTimeout time.Duration, logger *zap.SugaredLogger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

func (r *Repository) LoadExistingKeys(ctx context.Context) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT [Title], [Link] FROM TblAuctions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing auctions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Errorw("failed to close rows", "error", err)
		}
	}()

	keys := make(map[string]struct{})
	for rows.Next() {
		var title, link string
		if err := rows.Scan(&title, &link); err != nil {
			return nil, fmt.Errorf("failed to scan auction row: %w", err)
		}
		keys[dedup.Key(title, link)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auction rows: %w", err)
	}

	return keys, nil
}

func (r *Repository) Append(ctx context.Context, auctions []scraper.Auction) error {
	if len(auctions) == 0 {
		r.logger.Info("no rows to append, skipping insert")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO TblAuctions ([Title], [DT], [Location], [Category], [Description], [Link])
		VALUES (@Title, @DT, @Location, @Category, @Description, @Link)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Errorw("failed to close statement", "error", err)
		}
	}()

	for _, a := range auctions {
		_, err := stmt.ExecContext(ctx,
			sql.Named("Title", a.Title),
			sql.Named("DT", a.Date),
			sql.Named("Location", a.Location),
			sql.Named("Category", a.Category),
			sql.Named("Description", a.Description),
			sql.Named("Link", a.Link),
		)
		if err != nil {
			return fmt.Errorf("failed to insert auction %q: %w", a.Title, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
