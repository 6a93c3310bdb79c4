package country

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"regwise/internal/workflow"
)

// PostgresStore persists the country directory in PostgreSQL. The JSON-shaped
// fields (regulators, laws, onboarding, workflow) live in JSONB columns so the
// stored document matches the wire format.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const countryColumns = `code, name, region, currency, population, regulators, laws, onboarding, workflow`

func (s *PostgresStore) List(ctx context.Context) ([]Country, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+countryColumns+` FROM countries ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	var countries []Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		countries = append(countries, *c)
	}
	return countries, rows.Err()
}

func (s *PostgresStore) FindByCodeOrName(ctx context.Context, key string) (*Country, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+countryColumns+` FROM countries WHERE code = $1 OR name = $1 LIMIT 1`, key)
	c, err := scanCountry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find country: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) ReplaceOnboarding(ctx context.Context, key string, steps []workflow.Step) (*Country, error) {
	if steps == nil {
		steps = []workflow.Step{}
	}
	payload, err := json.Marshal(steps)
	if err != nil {
		return nil, fmt.Errorf("marshal onboarding: %w", err)
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE countries
		SET onboarding = $2, updated_at = now()
		WHERE code = $1 OR name = $1
		RETURNING `+countryColumns, key, payload)
	c, err := scanCountry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("replace onboarding: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, c Country) error {
	regulators, err := json.Marshal(orEmpty(c.Regulators))
	if err != nil {
		return fmt.Errorf("marshal regulators: %w", err)
	}
	laws, err := json.Marshal(orEmpty(c.Laws))
	if err != nil {
		return fmt.Errorf("marshal laws: %w", err)
	}
	onboarding, err := json.Marshal(c.Onboarding)
	if err != nil {
		return fmt.Errorf("marshal onboarding: %w", err)
	}
	if c.Onboarding == nil {
		onboarding = []byte(`[]`)
	}
	var spec []byte
	if c.Workflow != nil {
		if spec, err = json.Marshal(c.Workflow); err != nil {
			return fmt.Errorf("marshal workflow: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO countries (code, name, region, currency, population, regulators, laws, onboarding, workflow)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			region = EXCLUDED.region,
			currency = EXCLUDED.currency,
			population = EXCLUDED.population,
			regulators = EXCLUDED.regulators,
			laws = EXCLUDED.laws,
			onboarding = EXCLUDED.onboarding,
			workflow = EXCLUDED.workflow,
			updated_at = now()
	`, c.Code, c.Name, c.Region, c.Currency, c.Population, regulators, laws, onboarding, spec)
	if err != nil {
		return fmt.Errorf("upsert country: %w", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM countries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count countries: %w", err)
	}
	return n, nil
}

func scanCountry(row pgx.Row) (*Country, error) {
	var (
		c          Country
		regulators []byte
		laws       []byte
		onboarding []byte
		spec       []byte
	)
	if err := row.Scan(&c.Code, &c.Name, &c.Region, &c.Currency, &c.Population,
		&regulators, &laws, &onboarding, &spec); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(regulators, &c.Regulators); err != nil {
		return nil, fmt.Errorf("decode regulators: %w", err)
	}
	if err := json.Unmarshal(laws, &c.Laws); err != nil {
		return nil, fmt.Errorf("decode laws: %w", err)
	}
	if err := json.Unmarshal(onboarding, &c.Onboarding); err != nil {
		return nil, fmt.Errorf("decode onboarding: %w", err)
	}
	if len(spec) > 0 {
		c.Workflow = &workflow.Spec{}
		if err := json.Unmarshal(spec, c.Workflow); err != nil {
			return nil, fmt.Errorf("decode workflow: %w", err)
		}
	}
	return &c, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
