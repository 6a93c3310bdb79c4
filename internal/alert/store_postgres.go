package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists alerts in PostgreSQL. The store is pure I/O; feed
// semantics (the result cap, sort order) are encoded in the queries.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const alertColumns = `id, country, title, description, severity, date, is_read, source_url`

func (s *PostgresStore) List(ctx context.Context, country string) ([]Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	args := []any{}
	if country != "" {
		query += ` WHERE country = $1`
		args = append(args, country)
	}
	query += ` ORDER BY date DESC LIMIT ` + fmt.Sprint(listCap)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Country, &a.Title, &a.Description,
			&a.Severity, &a.Date, &a.IsRead, &a.SourceURL); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *PostgresStore) MarkRead(ctx context.Context, id string) (*Alert, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE alerts SET is_read = TRUE
		WHERE id = $1
		RETURNING `+alertColumns, id)

	var a Alert
	if err := row.Scan(&a.ID, &a.Country, &a.Title, &a.Description,
		&a.Severity, &a.Date, &a.IsRead, &a.SourceURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("mark alert read: %w", err)
	}
	return &a, nil
}

func (s *PostgresStore) Create(ctx context.Context, a Alert) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO alerts (id, country, title, description, severity, date, is_read, source_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.Country, a.Title, a.Description, a.Severity, a.Date, a.IsRead, a.SourceURL)
	if err != nil {
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM alerts WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread alerts: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) CountBySeverity(ctx context.Context) (map[Severity]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT severity, COUNT(*) FROM alerts GROUP BY severity`)
	if err != nil {
		return nil, fmt.Errorf("count alerts by severity: %w", err)
	}
	defer rows.Close()

	counts := make(map[Severity]int)
	for rows.Next() {
		var sev Severity
		var n int
		if err := rows.Scan(&sev, &n); err != nil {
			return nil, fmt.Errorf("scan severity count: %w", err)
		}
		counts[sev] = n
	}
	return counts, rows.Err()
}
