package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/logger"
	"trading-journal-go/internal/storage"
)

func main() {
	configPath := flag.String("config", "./configs", "directory containing config.yml")
	format := flag.String("format", "csv", "export format: csv or json")
	outDir := flag.String("out", ".", "directory to write the export file into")
	importFile := flag.String("import", "", "JSON file to import instead of exporting")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := storage.NewStore(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open journal storage", zap.Error(err))
	}
	trades := journal.NewTradeStore(store, log)

	if *importFile != "" {
		runImport(log, trades, *importFile)
		return
	}

	var (
		content  []byte
		filename string
	)
	switch *format {
	case "csv":
		content = []byte(journal.ExportCSV(trades.Load()))
		filename = journal.ExportFilename("csv", time.Now())
	case "json":
		content, err = journal.ExportJSON(trades.Load())
		if err != nil {
			log.Fatal("Failed to serialize trades", zap.Error(err))
		}
		filename = journal.ExportFilename("json", time.Now())
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q, want csv or json\n", *format)
		os.Exit(1)
	}

	path := filepath.Join(*outDir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		log.Fatal("Failed to write export file", zap.String("path", path), zap.Error(err))
	}
	log.Info("Journal exported", zap.String("path", path))
}

func runImport(log *zap.Logger, trades *journal.TradeStore, path string) {
	payload, err := os.ReadFile(path)
	if err != nil {
		log.Fatal("Failed to read import file", zap.String("path", path), zap.Error(err))
	}

	merged, added, err := journal.ImportJSON(payload, trades.Load())
	if err != nil {
		log.Fatal("Import rejected", zap.String("path", path), zap.Error(err))
	}
	if err := trades.SaveAll(merged); err != nil {
		log.Fatal("Failed to save imported trades", zap.Error(err))
	}
	log.Info("Import complete", zap.Int("added", added), zap.Int("total", len(merged)))
}
