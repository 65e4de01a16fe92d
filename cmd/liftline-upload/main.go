package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/liftline/liftline/internal/upload"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Liftline server URL (e.g. https://liftline.tail1234.ts.net)")
	apiKey := flag.String("api-key", "", "ingest API key (or set LIFTLINE_AUTH_API_KEY)")
	exportPath := flag.String("path", "", "path to export directory (or parent containing Exports/)")
	dryRun := flag.Bool("dry-run", false, "list files that would be sent without sending")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftline-upload", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftline-upload -server <URL> -api-key <key> -path <export dir> [-dry-run]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *apiKey == "" {
		*apiKey = os.Getenv("LIFTLINE_AUTH_API_KEY")
	}

	if !*dryRun {
		if *serverURL == "" {
			fmt.Fprintf(os.Stderr, "Error: -server is required (or use -dry-run)\n")
			os.Exit(1)
		}
		if *apiKey == "" {
			fmt.Fprintf(os.Stderr, "Error: -api-key is required (or use -dry-run)\n")
			os.Exit(1)
		}
	}

	*serverURL = strings.TrimRight(*serverURL, "/")

	// Resolve export directory
	exportDir := upload.ResolveExportDir(*exportPath)
	info, err := os.Stat(exportDir)
	if err != nil || !info.IsDir() {
		log.Error("export directory not found", "path", exportDir, "original", *exportPath)
		os.Exit(1)
	}
	log.Info("using export directory", "path", exportDir)

	// Open state database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	stateDir := filepath.Join(homeDir, ".liftline-upload")

	state, err := upload.OpenStateDB(stateDir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	// Create client (nil-safe in dry-run mode)
	var client *upload.Client
	if !*dryRun {
		client = upload.NewClient(*serverURL, *apiKey)
	}

	if *dryRun {
		log.Info("DRY RUN mode — files will be listed but not sent")
	}

	// Run upload
	uploader := upload.New(client, state, exportDir, *dryRun, log)
	stats, err := uploader.Run()
	if err != nil {
		log.Error("upload failed", "error", err)
		printStats(stats)
		os.Exit(1)
	}

	printStats(stats)
	log.Info("upload complete")
}

func printStats(stats *upload.Stats) {
	fmt.Println()
	fmt.Println("=== Upload Summary ===")
	fmt.Printf("  Files total:      %d\n", stats.FilesTotal)
	fmt.Printf("  Files uploaded:   %d\n", stats.FilesUploaded)
	fmt.Printf("  Files skipped:    %d (already uploaded)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Println()
	fmt.Printf("  Workouts sent:    %d\n", stats.WorkoutsSent)
	fmt.Printf("  Sets sent:        %d\n", stats.SetsSent)
	fmt.Println()
}
