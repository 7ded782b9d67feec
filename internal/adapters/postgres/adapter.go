package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorageAdapter реализует port.VacancyStoragePort поверх pgxpool
type PostgresStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPostgresStorageAdapter(pool *pgxpool.Pool) *PostgresStorageAdapter {
	return &PostgresStorageAdapter{pool: pool}
}
