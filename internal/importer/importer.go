// Package importer bulk-loads a directory of backup export files into the
// database. It is the offline counterpart to the HTTP ingest endpoint, meant
// for the first load of months of history without round-tripping every file
// through the server.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/liftline/liftline/internal/ingest"
	"github.com/liftline/liftline/internal/ingest/backup"
	"github.com/liftline/liftline/internal/models"
	"github.com/liftline/liftline/internal/storage"
)

// Stats tracks import progress across all files.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	WorkoutsReceived int
	WorkoutsInserted int
	SetsReceived     int
	SetsInserted     int64
	SetsSkipped      int64
}

// Importer walks a directory of backup exports and loads them.
type Importer struct {
	provider *backup.Provider
	log      *slog.Logger
	dryRun   bool
	stats    Stats
}

// New creates an Importer. In dry-run mode files are decoded and counted but
// nothing is written.
func New(db *storage.DB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		provider: backup.NewProvider(db, log),
		log:      log,
		dryRun:   dryRun,
	}
}

// Import processes every backup file in dir for the given user. Individual
// file failures are logged and skipped; the import continues.
func (im *Importer) Import(ctx context.Context, dir string, userID int) (*Stats, error) {
	files, err := exportFiles(dir)
	if err != nil {
		return &im.stats, err
	}
	if len(files) == 0 {
		return &im.stats, fmt.Errorf("no backup files (*.json, *.json.gz) in %s", dir)
	}

	im.log.Info("starting import", "dir", dir, "files", len(files), "dry_run", im.dryRun)

	for _, f := range files {
		if err := im.importFile(ctx, f, userID); err != nil {
			im.log.Warn("import failed, skipping file", "file", f, "error", err)
			im.stats.FilesErrored++
			continue
		}
		im.stats.FilesProcessed++
	}

	return &im.stats, nil
}

func (im *Importer) importFile(ctx context.Context, path string, userID int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	data, err := maybeGunzip(raw)
	if err != nil {
		return fmt.Errorf("decompressing %s: %w", path, err)
	}

	if im.dryRun {
		workouts, sets, err := countBackup(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		im.stats.WorkoutsReceived += workouts
		im.stats.SetsReceived += sets
		im.log.Info("dry-run: would import", "file", filepath.Base(path), "workouts", workouts, "sets", sets)
		return nil
	}

	result, err := im.provider.Ingest(ctx, bytes.NewReader(data), userID)
	if err != nil {
		return err
	}
	im.mergeResult(result)
	return nil
}

func (im *Importer) mergeResult(r *ingest.Result) {
	im.stats.WorkoutsReceived += r.WorkoutsReceived
	im.stats.WorkoutsInserted += r.WorkoutsInserted
	im.stats.SetsReceived += r.SetsReceived
	im.stats.SetsInserted += r.SetsInserted
	im.stats.SetsSkipped += r.SetsSkipped
}

// countBackup decodes a backup and counts its contents without writing.
func countBackup(data []byte) (workouts, sets int, err error) {
	var b models.Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return 0, 0, err
	}
	workouts = len(b.Workouts)
	for _, w := range b.Workouts {
		for _, ex := range w.Exercises {
			sets += len(ex.Sets)
		}
	}
	return workouts, sets, nil
}

// exportFiles lists backup files in dir, oldest filename first so re-exports
// of the same workout keep the latest file's version.
func exportFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.json.gz"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
