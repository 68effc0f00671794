package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/golangid/botkit/logger"

	// register postgres driver
	_ "github.com/lib/pq"
)

// ConnectPostgres open postgres connection with dsn and ping it
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	defer logger.LogWithDefer("Load SQL connection...")()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}
	return db, nil
}
