// Package upload walks a local export directory and sends new or changed
// files to a remote Liftline server. A SQLite state database keyed on path,
// size, and content hash keeps repeated runs incremental.
package upload

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/liftline/liftline/internal/ingest"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsSent int
	SetsSent     int64
}

// Uploader walks an export directory and POSTs backup and CSV files to the
// Liftline server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates an Uploader.
func New(client *Client, state *StateDB, exportDir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    exportDir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run executes the upload pipeline. Individual file failures are logged and
// skipped; the run continues.
func (u *Uploader) Run() (*Stats, error) {
	files, err := exportFiles(u.dir)
	if err != nil {
		return &u.stats, err
	}
	if len(files) == 0 {
		return &u.stats, fmt.Errorf("no export files (*.json, *.json.gz, *.csv) in %s", u.dir)
	}

	for _, f := range files {
		u.stats.FilesTotal++
		if err := u.uploadFile(f); err != nil {
			u.log.Warn("upload failed, skipping file", "file", f, "error", err)
			u.stats.FilesErrored++
		}
	}

	u.log.Info("upload finished",
		"uploaded", u.stats.FilesUploaded,
		"skipped", u.stats.FilesSkipped,
		"errored", u.stats.FilesErrored,
		"workouts", u.stats.WorkoutsSent,
		"sets", u.stats.SetsSent)

	return &u.stats, nil
}

func (u *Uploader) uploadFile(path string) error {
	relPath, err := filepath.Rel(u.dir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	uploaded, err := u.state.IsUploaded(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("state check: %w", err)
	}
	if uploaded {
		u.stats.FilesSkipped++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	data, err = maybeGunzip(data)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}

	if u.dryRun {
		u.log.Info("dry-run: would upload", "file", relPath, "bytes", len(data))
		return nil
	}

	var result *ingest.Result
	if strings.HasSuffix(path, ".csv") {
		result, err = u.client.SendCSV(data)
	} else {
		result, err = u.client.SendBackup(data)
	}
	if err != nil {
		return err
	}

	u.stats.WorkoutsSent += result.WorkoutsInserted
	u.stats.SetsSent += result.SetsInserted

	if err := u.state.MarkUploaded(relPath, info.Size(), hash); err != nil {
		u.log.Warn("failed to mark uploaded", "file", relPath, "error", err)
	}
	u.stats.FilesUploaded++

	u.log.Info("uploaded", "file", relPath,
		"workouts", result.WorkoutsInserted, "sets", result.SetsInserted)

	return nil
}

// exportFiles lists export files in dir, oldest filename first.
func exportFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.json.gz", "*.csv"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// maybeGunzip decompresses data if it carries the gzip magic bytes.
func maybeGunzip(data []byte) ([]byte, error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip stream: %w", err)
	}
	return out, nil
}

// ResolveExportDir resolves the export directory from a user-provided path.
// The mobile app syncs into an Exports subdirectory; pointing at the parent
// works too.
func ResolveExportDir(path string) string {
	if filepath.Base(path) == "Exports" {
		return path
	}
	candidate := filepath.Join(path, "Exports")
	if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
		return candidate
	}
	return path
}
