package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const checksumSuffix = ".sha256"

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// CreateBackup snapshots the open database into target with VACUUM INTO,
// which includes pages still sitting in the WAL, then writes a sha256
// sidecar next to it. An existing target is never overwritten.
func CreateBackup(db *sql.DB, target string) (BackupInfo, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return BackupInfo{}, fmt.Errorf("backup path is required")
	}
	if _, err := os.Stat(target); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup dir: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, target); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	sum, err := fileSHA256(target)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(target+checksumSuffix, []byte(sum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write %s: %w", filepath.Base(target)+checksumSuffix, err)
	}
	return describeBackup(target)
}

// RestoreBackup copies backupPath over dbPath. The copy goes to a temp file
// in the target dir and is renamed into place, and stale -wal/-shm files
// from the old database are removed first so SQLite does not replay them.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if _, err := os.Stat(dbPath); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", dbPath)
	}
	if err := verifyChecksum(backupPath); err != nil {
		return err
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	tmp, err := copyToTemp(backupPath, dir)
	if err != nil {
		return err
	}
	for _, side := range []string{dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(side); err != nil && !errors.Is(err, fs.ErrNotExist) {
			_ = os.Remove(tmp)
			return fmt.Errorf("remove stale %s: %w", filepath.Base(side), err)
		}
	}
	if err := os.Rename(tmp, dbPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("move restored db into place: %w", err)
	}
	return nil
}

// ListBackups returns the *.db files in dir, newest first. A missing dir
// has no backups.
func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".db" {
			continue
		}
		info, err := describeBackup(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// PruneBackups keeps the newest keep backups in dir and removes the rest
// with their checksum files. It returns the removed paths.
func PruneBackups(dir string, keep int) ([]string, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be >= 1")
	}
	items, err := ListBackups(dir)
	if err != nil {
		return nil, err
	}
	removed := []string{}
	if len(items) <= keep {
		return removed, nil
	}
	for _, it := range items[keep:] {
		if err := os.Remove(it.Path); err != nil {
			return removed, fmt.Errorf("remove backup %s: %w", filepath.Base(it.Path), err)
		}
		if err := os.Remove(it.Path + checksumSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove checksum for %s: %w", filepath.Base(it.Path), err)
		}
		removed = append(removed, it.Path)
	}
	return removed, nil
}

func describeBackup(path string) (BackupInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	info := BackupInfo{Path: path, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
	if b, err := os.ReadFile(path + checksumSuffix); err == nil {
		info.Checksum = strings.TrimSpace(string(b))
	}
	return info, nil
}

// verifyChecksum compares path against its sidecar. Backups without one
// are accepted.
func verifyChecksum(path string) error {
	want, err := os.ReadFile(path + checksumSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read checksum: %w", err)
	}
	got, err := fileSHA256(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(want)) != got {
		return fmt.Errorf("backup %s fails its checksum", filepath.Base(path))
	}
	return nil
}

func copyToTemp(src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(dir, ".fitlog-restore-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("copy backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("sync restored db: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close restored db: %w", err)
	}
	return tmp.Name(), nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum %s: %w", filepath.Base(path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
