package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported driver names, as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Open initializes and returns a connection pool for one of the supported drivers.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database: empty DSN for driver %q", driver)
	}
	return OpenDBWithDSN(driver, dsn)
}

// OpenDBWithDSN is a generic function to create and configure a DB connection pool
// using any provided DSN string.
func OpenDBWithDSN(driver, dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	// SQLite serializes writers; one connection avoids "database is locked".
	// It is never recycled so a ":memory:" database lives as long as the pool.
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	// 3. Ping the database to verify the connection.
	if err := db.Ping(); err != nil {
		db.Close()
		slog.Error("Error connecting to database", "driver", driver, "error", err)
		return nil, err
	}

	slog.Debug("Database connection pool established", "driver", driver)
	return db, nil
}

// Placeholder returns the n-th (1-based) bind parameter for driver.
func Placeholder(driver string, n int) string {
	if driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Rebind rewrites '?' bind parameters into the driver's placeholder style.
// Queries must not contain literal question marks.
func Rebind(driver, query string) string {
	if driver != DriverPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
