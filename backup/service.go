// Package backup archives the Taskwarrior data directory into timestamped
// tar.gz snapshots and prunes snapshots past the retention window.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const snapshotPrefix = "taskwarrior-backup-"

// Config selects the data directory to archive and where snapshots live.
type Config struct {
	DataDir       string
	BackupDir     string
	RetentionDays int
}

// Result reports a created snapshot.
type Result struct {
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// Service writes and prunes snapshots through an afero filesystem so tests
// can run against memory.
type Service struct {
	fs  afero.Fs
	cfg Config
}

// NewService builds a backup service. A zero retention defaults to 7 days.
func NewService(fs afero.Fs, cfg Config) *Service {
	if cfg.RetentionDays <= 0 {
		cfg.RetentionDays = 7
	}
	return &Service{fs: fs, cfg: cfg}
}

// Create archives the data directory into a new snapshot, then prunes old
// snapshots. Pruning failures do not fail the backup that already succeeded.
func (s *Service) Create() (Result, error) {
	now := time.Now().UTC()
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(now.Format("2006-01-02T15:04:05.000Z"))
	path := filepath.Join(s.cfg.BackupDir, snapshotPrefix+stamp+".tar.gz")

	if err := s.fs.MkdirAll(s.cfg.BackupDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create backup dir: %w", err)
	}
	if err := s.writeArchive(path); err != nil {
		return Result{}, err
	}

	if _, err := s.fs.Stat(path); err != nil {
		return Result{}, fmt.Errorf("backup file was not created: %w", err)
	}

	_ = s.pruneOld(now)

	return Result{Path: path, Timestamp: now.Format(time.RFC3339)}, nil
}

// writeArchive tars every regular file under the data directory, with paths
// relative to it.
func (s *Service) writeArchive(path string) error {
	out, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	defer gz.Close()
	tw := tar.NewWriter(gz)
	defer tw.Close()

	return afero.Walk(s.fs, s.cfg.DataDir, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.cfg.DataDir, name)
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := s.fs.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
}

// pruneOld removes snapshots older than the retention window. Only files
// carrying the snapshot prefix are considered; anything else in the backup
// directory is left alone.
func (s *Service) pruneOld(now time.Time) error {
	entries, err := afero.ReadDir(s.fs, s.cfg.BackupDir)
	if err != nil {
		return err
	}

	cutoff := now.Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), snapshotPrefix) {
			continue
		}
		if entry.ModTime().Before(cutoff) {
			if err := s.fs.Remove(filepath.Join(s.cfg.BackupDir, entry.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
