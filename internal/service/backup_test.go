package service_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/fitlog/internal/db"
	"github.com/saadjs/fitlog/internal/service"
	"github.com/saadjs/fitlog/internal/storage"
	"github.com/saadjs/fitlog/internal/store"
)

func TestBackupCreateListRestore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fitlog.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	s := store.New(storage.NewSQLite(sqldb))
	if err := service.SetGoal(s, service.SetGoalInput{Calories: 2100}); err != nil {
		t.Fatalf("set goal: %v", err)
	}

	backupDir := filepath.Join(dir, "backups")
	info, err := service.CreateBackup(sqldb, filepath.Join(backupDir, "one.db"))
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("unexpected backup info %+v", info)
	}
	if _, err := service.CreateBackup(sqldb, info.Path); err == nil {
		t.Fatalf("expected existing backup path to be refused")
	}
	_ = sqldb.Close()

	items, err := service.ListBackups(backupDir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 1 || items[0].Checksum != info.Checksum {
		t.Fatalf("unexpected backups %+v", items)
	}
	missing, err := service.ListBackups(filepath.Join(dir, "nowhere"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected empty list for missing dir, got %v %v", missing, err)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(info.Path, restored, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}
	if err := service.RestoreBackup(info.Path, restored, false); err == nil {
		t.Fatalf("expected restore over existing db without force to fail")
	}

	rdb, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer rdb.Close()
	g, err := store.New(storage.NewSQLite(rdb)).NutritionGoal()
	if err != nil || g == nil || g.DailyCalories != 2100 {
		t.Fatalf("expected goal in restored db, got %+v %v", g, err)
	}

	if err := os.WriteFile(info.Path+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("tamper checksum: %v", err)
	}
	if err := service.RestoreBackup(info.Path, restored, true); err == nil {
		t.Fatalf("expected checksum mismatch to fail")
	}
}

func TestPruneBackupsKeepsNewest(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.Local)
	for i, name := range []string{"a.db", "b.db", "c.db"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if err := os.WriteFile(path+".sha256", []byte("x\n"), 0o600); err != nil {
			t.Fatalf("write checksum %s: %v", name, err)
		}
		at := base.Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(path, at, at); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}

	if _, err := service.PruneBackups(dir, 0); err == nil {
		t.Fatalf("expected keep 0 to be rejected")
	}
	removed, err := service.PruneBackups(dir, 1)
	if err != nil {
		t.Fatalf("prune backups: %v", err)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed backups, got %v", removed)
	}
	left, err := service.ListBackups(dir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(left) != 1 || filepath.Base(left[0].Path) != "c.db" {
		t.Fatalf("expected only c.db to remain, got %+v", left)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.db.sha256")); !os.IsNotExist(err) {
		t.Fatalf("expected a.db checksum removed, got %v", err)
	}
}
