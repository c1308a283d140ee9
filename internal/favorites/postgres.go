package favorites

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/albapepper/pokedex/internal/db"
)

// PostgresStore persists the list as a JSONB array in the favorites table,
// through the statements prepared by db.New.
type PostgresStore struct {
	pool *db.Pool
	key  string
}

func NewPostgresStore(pool *db.Pool, key string) *PostgresStore {
	return &PostgresStore{pool: pool, key: key}
}

func (s *PostgresStore) Load(ctx context.Context) ([]int, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, "favorites_load", s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (s *PostgresStore) Save(ctx context.Context, ids []int) error {
	data, err := encode(ids)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, "favorites_save", s.key, string(data))
	return err
}
