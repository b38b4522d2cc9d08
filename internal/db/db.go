package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"gitlab.com/ranfdev/dailyreport/internal/models"
)

func Connect(ctx context.Context, config *models.EnvConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to postgres: %w", err)
	}
	return pool, nil
}
