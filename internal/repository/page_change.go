package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorship/admin/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PageChange is one applied static page update.
type PageChange struct {
	ID        int64
	PageID    string
	PageType  domain.PageType
	Update    domain.PageUpdate
	CreatedAt time.Time
}

type PageChangeRepository interface {
	EnsureSchema(ctx context.Context) error
	RecordChange(ctx context.Context, pageID string, pageType domain.PageType, update domain.PageUpdate) error
	ListChanges(ctx context.Context, pageID string, limit int) ([]PageChange, error)
}

type pageChangeRepository struct {
	db *pgxpool.Pool
}

func NewPageChangeRepository(db *pgxpool.Pool) PageChangeRepository {
	return &pageChangeRepository{
		db: db,
	}
}

func (r *pageChangeRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS page_changes (
		id BIGSERIAL PRIMARY KEY,
		page_id TEXT NOT NULL,
		page_type TEXT NOT NULL,
		change JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS page_changes_page_id_idx ON page_changes (page_id, created_at DESC)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create page_changes table: %w", err)
	}
	return nil
}

func (r *pageChangeRepository) RecordChange(ctx context.Context, pageID string, pageType domain.PageType, update domain.PageUpdate) error {
	change, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode page change: %w", err)
	}

	query := `
	INSERT INTO page_changes (page_id, page_type, change)
	VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, pageID, pageType.String(), change); err != nil {
		return fmt.Errorf("failed to save page change: %w", err)
	}

	return nil
}

// ListChanges returns the latest changes for pageID, newest first.
func (r *pageChangeRepository) ListChanges(ctx context.Context, pageID string, limit int) ([]PageChange, error) {
	query := `
	SELECT id, page_id, page_type, change, created_at
	FROM page_changes
	WHERE page_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2`
	rows, err := r.db.Query(ctx, query, pageID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query page changes: %w", err)
	}

	changes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PageChange, error) {
		var (
			c        PageChange
			pageType string
			change   []byte
		)
		if err := row.Scan(&c.ID, &c.PageID, &pageType, &change, &c.CreatedAt); err != nil {
			return PageChange{}, err
		}
		c.PageType = domain.PageType(pageType)
		if err := json.Unmarshal(change, &c.Update); err != nil {
			return PageChange{}, fmt.Errorf("invalid change for page %s: %w", c.PageID, err)
		}
		return c, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read page changes: %w", err)
	}

	return changes, nil
}
