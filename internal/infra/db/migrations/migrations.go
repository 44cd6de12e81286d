// Package migrations applies the embedded SQL schema for each supported
// dialect with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var files embed.FS

// Dialects supported by Up.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

var dirs = map[string]string{
	MySQL:    "mysql",
	Postgres: "postgres",
	SQLite:   "sqlite",
}

// goose keeps its base FS, dialect and logger in package globals
var mu sync.Mutex

type gooseLogger struct{ log *logger.Logger }

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.log.Error(fmt.Sprintf(format, v...))
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.log.Debug(fmt.Sprintf(format, v...))
}

// Up migrates db to the latest schema version for dialect.
func Up(db *sql.DB, dialect string, log *logger.Logger) error {
	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	if log == nil {
		log = logger.NewNop()
	}

	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(files)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up (%s): %w", dialect, err)
	}
	return nil
}
