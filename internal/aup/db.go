package internal

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var errNoDatabase = errors.New("override store has no database")

func newDatabasePool(url string) (*pgxpool.Pool, error) {
	ctx := context.Background()

	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		return nil, err
	}

	return pool, nil
}

// OverrideStore persists per-FIR activation overrides as a JSON map keyed by
// restriction name and UTC calendar day. A row for a prior day is never read
// again, so overrides reset at day rollover.
type OverrideStore struct {
	db *pgxpool.Pool
}

func NewOverrideStore(db *pgxpool.Pool) *OverrideStore {
	return &OverrideStore{db: db}
}

func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Overrides returns today's override map for the FIR. A missing row is an
// empty map.
func (s *OverrideStore) Overrides(ctx context.Context, fir string) (map[string]bool, error) {
	if s == nil || s.db == nil {
		return nil, errNoDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.db.Query(ctx, `
	SELECT overrides FROM aup_overrides WHERE fir = $1 AND day = $2
	`, fir, today())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := map[string]bool{}
	if rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &overrides); err != nil {
			return nil, err
		}
	}

	return overrides, rows.Err()
}

// SetOverrides replaces today's override map for the FIR.
func (s *OverrideStore) SetOverrides(ctx context.Context, fir string, overrides map[string]bool) error {
	if s == nil || s.db == nil {
		return errNoDatabase
	}

	data, err := json.Marshal(overrides)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = s.db.Exec(ctx, `
	INSERT INTO aup_overrides (fir, day, overrides) VALUES ($1, $2, $3)
	ON CONFLICT (fir, day) DO UPDATE SET overrides = $3
	`, fir, today(), data)
	return err
}

// SetOverride updates a single restriction's flag. Read-modify-write is good
// enough here; writes are operator-driven and rare.
func (s *OverrideStore) SetOverride(ctx context.Context, fir string, name string, active bool) error {
	overrides, err := s.Overrides(ctx, fir)
	if err != nil {
		return err
	}
	overrides[name] = active
	return s.SetOverrides(ctx, fir, overrides)
}
