package service_test

import (
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/db"
	"github.com/saadjs/fitlog/internal/storage"
	"github.com/saadjs/fitlog/internal/store"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T, now time.Time) (*store.Store, *testClock) {
	t.Helper()
	clock := &testClock{now: now}
	n := 0
	s := store.New(storage.NewMemory(),
		store.WithClock(clock.Now),
		store.WithIDGenerator(func() string { n++; return "id" + strconv.Itoa(n) }),
	)
	return s, clock
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fitlog.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }
