package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bryanwahyu/esg-responder/internal/infra/db/migrations"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// Connect opens the pool, pings and applies migrations.
func Connect(ctx context.Context, dsn string, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// test ping
	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrations.Up(db, migrations.MySQL, log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
