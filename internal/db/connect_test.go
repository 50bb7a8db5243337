package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "quiz.db") + "?_pragma=busy_timeout(5000)"
	dbh, err := Open(context.Background(), DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

func TestOpenCreatesSchema(t *testing.T) {
	dbh := openTemp(t)
	for _, table := range []string{"questions", "users", "event_log"} {
		var n int
		if err := dbh.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "quiz.db")
	for i := 0; i < 2; i++ {
		dbh, err := Open(context.Background(), DriverSQLite, dsn)
		if err != nil {
			t.Fatalf("open #%d: %v", i, err)
		}
		_ = dbh.Close()
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Driver("oracle"), ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	dbh := openTemp(t)
	boom := errors.New("boom")
	err := WithTx(context.Background(), dbh, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES ('ann','x',0)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected rollback, found %d users", n)
	}
}

func TestWithTxCommits(t *testing.T) {
	dbh := openTemp(t)
	err := WithTx(context.Background(), dbh, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO users (username, password_hash, created_at) VALUES ('bob','x',0)`)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	var n int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}
