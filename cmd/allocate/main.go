package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spp-kitchen/ingredient-allocation-backend/internal/application/service"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/config"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/domain/allocator"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/infrastructure/storage"
	"github.com/spp-kitchen/ingredient-allocation-backend/internal/observability"
)

type allocationOutput struct {
	Identifier string                      `json:"identifier"`
	Quantity   float64                     `json:"quantity"`
	Department string                      `json:"department,omitempty"`
	Entries    []allocator.AllocationEntry `json:"entries"`
}

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		identifier = flag.String("identifier", "", "Item name or serial number")
		quantity   = flag.Float64("quantity", 0, "Available quantity to distribute")
		department = flag.String("department", "", "Restrict to a single department")
		jsonOut    = flag.Bool("json", false, "Print the result as JSON")
		csvPath    = flag.String("csv", "", "Also write the result to a CSV file")
	)
	flag.Parse()

	if *identifier == "" || *quantity <= 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -identifier <name-or-serial> -quantity <n> [flags]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.LoadOrEnvWithPath(*configPath)
	logger := observability.NewLogger(cfg.Observability.Logging)

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open ledger database: %v", err)
	}
	defer store.Close()

	datasets := service.NewDatasetService(store, cfg.Dataset, logger)
	snap, err := datasets.Snapshot()
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	entries, err := allocator.Allocate(snap, *identifier, *quantity, *department)
	if err != nil {
		log.Fatalf("Allocation failed: %v", err)
	}

	output := allocationOutput{
		Identifier: *identifier,
		Quantity:   *quantity,
		Department: *department,
		Entries:    entries,
	}

	if *jsonOut {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
	} else {
		printTable(output)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, output); err != nil {
			log.Fatalf("Failed to write CSV: %v", err)
		}
		fmt.Printf("Wrote %s\n", *csvPath)
	}
}

func printTable(output allocationOutput) {
	fmt.Printf("Allocation for %q (quantity %g)\n\n", output.Identifier, output.Quantity)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEPARTMENT\tPROPORTION\tALLOCATED")
	for _, e := range output.Entries {
		fmt.Fprintf(w, "%s\t%.2f%%\t%d\n", e.Department, e.Proportion, e.Allocated)
	}
	w.Flush()
}

func writeCSV(path string, output allocationOutput) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Department", "Proportion", "Allocated Quantity"}); err != nil {
		return err
	}
	for _, e := range output.Entries {
		record := []string{
			e.Department,
			strconv.FormatFloat(e.Proportion, 'f', 2, 64),
			strconv.Itoa(e.Allocated),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
