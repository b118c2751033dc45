package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/01moynul/shopcart-admin/internal/database"
)

// SQLStore keeps key/value pairs in a 'kv_store' table. The SQL is portable
// across sqlite, mysql and postgres; only bind placeholders differ.
type SQLStore struct {
	DB     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{DB: db, driver: driver}
}

func (s *SQLStore) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS kv_store (
		k VARCHAR(191) PRIMARY KEY,
		v TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		slog.Error("Error creating kv_store schema", "error", err)
		return err
	}
	return nil
}

func (s *SQLStore) ph(n int) string {
	return database.Placeholder(s.driver, n)
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT v FROM kv_store WHERE k = %s`, s.ph(1))
	var v string
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: get %q: %w", key, err)
	}
	return v, true, nil
}

// Set replaces the value in a transaction (delete + insert) so the same
// statement pair works on every supported driver.
func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	defer tx.Rollback() // Safety net

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM kv_store WHERE k = %s`, s.ph(1)), key); err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	insert := fmt.Sprintf(`INSERT INTO kv_store (k, v) VALUES (%s, %s)`, s.ph(1), s.ph(2))
	if _, err := tx.ExecContext(ctx, insert, key, value); err != nil {
		return fmt.Errorf("storage: set %q: %w", key, err)
	}
	return tx.Commit()
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM kv_store WHERE k = %s`, s.ph(1))
	if _, err := s.DB.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}

// Open connects to driver/dsn and prepares the schema.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	db, err := database.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	s := NewSQLStore(db, driver)
	if err := s.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) Close() error {
	return s.DB.Close()
}
