package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"rhiza/internal/domain"
	"rhiza/internal/metrics"
	"rhiza/internal/repository"
)

var _ repository.PayloadCache = (*Repository)(nil)

// Repository implements repository.PayloadCache using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New opens the cache database at dbPath; ":memory:" keeps it in process
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is its own database
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS payloads (
		key TEXT PRIMARY KEY,
		data JSON NOT NULL,
		node_count INTEGER NOT NULL DEFAULT 0,
		expires_at INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_payloads_expires ON payloads(expires_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// GetPayload loads a cached payload. Expired rows are reported as misses
// and left for PurgeExpired.
func (r *Repository) GetPayload(ctx context.Context, key string) (*domain.Payload, bool, error) {
	var (
		data      []byte
		expiresAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT data, expires_at FROM payloads WHERE key = ?`, key,
	).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query payload %s: %w", key, err)
	}

	if r.now().UnixNano() >= expiresAt {
		metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false, nil
	}

	p := &domain.Payload{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal payload %s: %w", key, err)
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return p, true, nil
}

// PutPayload inserts or replaces a cached payload
func (r *Repository) PutPayload(ctx context.Context, key string, p *domain.Payload, ttl time.Duration) error {
	if p == nil {
		return fmt.Errorf("payload %s is nil", key)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payload %s: %w", key, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO payloads (key, data, node_count, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			node_count = excluded.node_count,
			expires_at = excluded.expires_at,
			created_at = CURRENT_TIMESTAMP
	`, key, string(data), len(p.Nodes), r.now().Add(ttl).UnixNano())
	if err != nil {
		return fmt.Errorf("failed to store payload %s: %w", key, err)
	}
	return nil
}

// PurgeExpired deletes every expired payload and refreshes the cache size gauge
func (r *Repository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM payloads WHERE expires_at <= ?`, r.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge payloads: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	n, err := r.Count(ctx)
	if err != nil {
		return removed, err
	}
	metrics.CacheEntries.Set(float64(n))
	return removed, nil
}

// Count returns the number of stored payloads, expired or not
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payloads`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payloads: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
