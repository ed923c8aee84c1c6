package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"taskorganizer/internal/config"
)

const connectTimeout = 5 * time.Second

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// ConnectDB opens the remote store selected by DbDriver.
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	var driverName, dsn string

	switch conf.DbDriver {
	case config.DriverPostgres:
		driverName, dsn = config.DriverPostgres, conf.DatabaseURL
	case config.DriverSQLite:
		return ConnectLocal(conf.LocalDbPath)
	default:
		params := conf.DbParams
		if params == "" {
			params = "parseTime=true&multiStatements=true"
		}
		driverName = config.DriverMySQL
		dsn = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?%s",
			conf.DbUser,
			conf.DbPassword,
			conf.DbHost,
			conf.DbPort,
			conf.DbName,
			params,
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driverName, err)
	}

	return db, nil
}

// ConnectLocal opens the process-local SQLite store.
func ConnectLocal(path string) (*sqlx.DB, error) {
	if path == "" {
		path = ":memory:"
	}

	// A fixed time format keeps DATETIME columns comparable as text.
	db, err := sqlx.Connect(config.DriverSQLite, path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("connect sqlite %s: %w", path, err)
	}
	// One connection keeps :memory: databases shared and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return db, nil
}

// IsUnavailable reports whether err means the store could not be reached, as
// opposed to a query failing on a reachable store.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
