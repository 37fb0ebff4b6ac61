package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"kitledger/pkg/platform/sentinel"
	pstrings "kitledger/pkg/platform/strings"
)

// Schema is the DDL for the catalog_items table. Applied by migrations in
// production and by the containers helper in integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS catalog_items (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    course      TEXT NOT NULL,
    price       NUMERIC(12,2) NOT NULL,
    years       INT[]  NOT NULL DEFAULT '{}',
    legacy_year INT,
    semesters   INT[]  NOT NULL DEFAULT '{}',
    branches    TEXT[] NOT NULL DEFAULT '{}'
)`

// PostgresStore persists catalog items in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, course, price, years, legacy_year, semesters, branches
		 FROM catalog_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, course, price, years, legacy_year, semesters, branches
		 FROM catalog_items WHERE id = $1`, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, sentinel.ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (s *PostgresStore) Upsert(ctx context.Context, item Item) error {
	var legacyYear sql.NullInt64
	if item.Year != nil {
		legacyYear = sql.NullInt64{Int64: int64(*item.Year), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO catalog_items (id, name, course, price, years, legacy_year, semesters, branches)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     name = EXCLUDED.name,
		     course = EXCLUDED.course,
		     price = EXCLUDED.price,
		     years = EXCLUDED.years,
		     legacy_year = EXCLUDED.legacy_year,
		     semesters = EXCLUDED.semesters,
		     branches = EXCLUDED.branches`,
		item.ID, item.Name, item.Course, item.Price,
		pq.Array(toInt64s(item.Years)), legacyYear,
		pq.Array(toInt64s(item.Semesters)), pq.Array(pstrings.DedupeAndTrim(item.Branches)))
	if err != nil {
		return fmt.Errorf("upsert catalog item: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM catalog_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var (
		item       Item
		legacyYear sql.NullInt64
		years      pq.Int64Array
		semesters  pq.Int64Array
		branches   pq.StringArray
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Course, &item.Price,
		&years, &legacyYear, &semesters, &branches); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, err
		}
		return Item{}, fmt.Errorf("scan catalog item: %w", err)
	}
	if legacyYear.Valid {
		y := int(legacyYear.Int64)
		item.Year = &y
	}
	item.Years = toInts(years)
	item.Semesters = toInts(semesters)
	item.Branches = branches
	return item, nil
}

func toInt64s(values []int) []int64 {
	if values == nil {
		return []int64{}
	}
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}

func toInts(values []int64) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, len(values))
	for i, v := range values {
		out[i] = int(v)
	}
	return out
}
