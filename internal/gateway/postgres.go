package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olu-davies/noticehub/internal/listing"
)

// tableFor maps each category to its own table; the board keeps the
// categories in separate collections rather than one table with a
// discriminator column.
var tableFor = map[listing.Category]string{
	listing.CategoryJob:             "job_listings",
	listing.CategoryRoom:            "room_listings",
	listing.CategoryMarket:          "market_listings",
	listing.CategoryEvent:           "event_listings",
	listing.CategoryTravelCompanion: "travel_companion_listings",
}

// Postgres is the pgx-backed Gateway implementation.
type Postgres struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// NewPostgres connects to the store, pings it and makes sure the five
// category tables exist.
func NewPostgres(ctx context.Context, dsn string, log *slog.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("gateway: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("gateway: ping postgres: %w", err)
	}
	pg := &Postgres{pool: pool, log: log}
	if err := pg.ensureTables(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("connected to postgres store")
	return pg, nil
}

// Close releases the connection pool.
func (pg *Postgres) Close() { pg.pool.Close() }

// ensureTables creates any missing category table. The shape mirrors the
// external document: a nullable approval boolean, the owner descriptor
// kept as its raw encoded string, and opaque attrs/images columns.
func (pg *Postgres) ensureTables(ctx context.Context) error {
	for _, cat := range listing.Categories {
		table := tableFor[cat]
		_, err := pg.pool.Exec(ctx, fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                title TEXT NOT NULL DEFAULT '',
                description TEXT NOT NULL DEFAULT '',
                approved BOOLEAN NULL,
                owner TEXT NULL,
                attrs JSONB NULL,
                images TEXT[] NULL,
                created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
                updated_at TIMESTAMP WITH TIME ZONE NULL
            );
            CREATE INDEX IF NOT EXISTS idx_%s_created ON %s(created_at DESC);
            CREATE INDEX IF NOT EXISTS idx_%s_approved ON %s(approved);
        `, table, table, table, table, table))
		if err != nil {
			return fmt.Errorf("gateway: ensure table %s: %w", table, err)
		}
	}
	return nil
}

func (pg *Postgres) ListByCategory(ctx context.Context, cat listing.Category, approvedOnly bool) ([]Document, error) {
	table, ok := tableFor[cat]
	if !ok {
		return nil, &TransportError{Op: "list", Err: fmt.Errorf("unknown category %q", cat)}
	}

	query := fmt.Sprintf(`
        SELECT id, title, description, approved, owner, attrs, images, created_at, updated_at
        FROM %s`, table)
	if approvedOnly {
		query += ` WHERE approved IS TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := pg.pool.Query(ctx, query)
	if err != nil {
		return nil, &TransportError{Op: "list " + string(cat), Err: err}
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			doc       Document
			owner     *string
			attrsRaw  []byte
			updatedAt *time.Time
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Description, &doc.Approved,
			&owner, &attrsRaw, &doc.Images, &doc.CreatedAt, &updatedAt); err != nil {
			return nil, &TransportError{Op: "scan " + string(cat), Err: err}
		}
		if owner != nil {
			doc.Owner = *owner
		}
		if updatedAt != nil {
			doc.UpdatedAt = *updatedAt
		}
		if len(attrsRaw) > 0 {
			if err := json.Unmarshal(attrsRaw, &doc.Attrs); err != nil {
				pg.log.Warn("unreadable attrs, passing through empty",
					"category", cat, "id", doc.ID, "error", err)
			}
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransportError{Op: "list " + string(cat), Err: err}
	}
	return docs, nil
}

func (pg *Postgres) SetApproval(ctx context.Context, cat listing.Category, id string, approved bool) error {
	table, ok := tableFor[cat]
	if !ok {
		return &TransportError{Op: "set approval", Err: fmt.Errorf("unknown category %q", cat)}
	}
	tag, err := pg.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET approved = $2, updated_at = NOW() WHERE id = $1`, table), id, approved)
	if err != nil {
		return &TransportError{Op: "set approval " + string(cat), Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (pg *Postgres) Remove(ctx context.Context, cat listing.Category, id string) error {
	table, ok := tableFor[cat]
	if !ok {
		return &TransportError{Op: "remove", Err: fmt.Errorf("unknown category %q", cat)}
	}
	tag, err := pg.pool.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return &TransportError{Op: "remove " + string(cat), Err: err}
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
