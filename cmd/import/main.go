package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/adapters/checkout"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		dbPath     = flag.String("db", "", "Ledger database path (overrides config)")
		dryRun     = flag.Bool("dry-run", false, "Parse and report without writing")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <checkout-export.csv>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	cfg := config.LoadOrEnvWithPath(*configPath)
	if *dbPath != "" {
		cfg.Storage.DatabasePath = *dbPath
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open export: %v", err)
	}
	defer file.Close()

	result, err := checkout.Parse(file)
	if err != nil {
		log.Fatalf("Failed to parse export: %v", err)
	}

	for _, warning := range result.Warnings {
		fmt.Printf("WARN %s: %s\n", csvPath, warning)
	}

	if *dryRun {
		fmt.Printf("Parsed %d transactions (%d skipped), dry run, nothing written\n",
			len(result.Transactions), len(result.Warnings))
		return
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open ledger database: %v", err)
	}
	defer store.Close()

	imported, err := store.ImportTransactions(result.Transactions)
	if err != nil {
		log.Fatalf("Failed to import transactions: %v", err)
	}

	fmt.Printf("Imported %d transactions into %s (%d rows skipped)\n",
		imported, cfg.Storage.DatabasePath, len(result.Warnings))
}
