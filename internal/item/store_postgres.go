package item

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists items in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const itemColumns = `id, title, description, meta, created_at, updated_at`

func (s *PostgresStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, listCap)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Item, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (s *PostgresStore) Create(ctx context.Context, it Item) error {
	meta, err := marshalMeta(it.Meta)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO items (id, title, description, meta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, it.ID, it.Title, it.Description, meta, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, it Item) (*Item, error) {
	meta, err := marshalMeta(it.Meta)
	if err != nil {
		return nil, err
	}
	row := s.pool.QueryRow(ctx, `
		UPDATE items
		SET title = $2, description = $3, meta = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+itemColumns, it.ID, it.Title, it.Description, meta, it.UpdatedAt)

	updated, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*Item, error) {
	var (
		it   Item
		meta []byte
	)
	if err := row.Scan(&it.ID, &it.Title, &it.Description, &meta, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &it.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal meta: %w", err)
		}
	}
	return &it, nil
}

func marshalMeta(meta map[string]any) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	out, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal meta: %w", err)
	}
	return out, nil
}
