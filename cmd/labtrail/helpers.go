// Shared helpers for labtrail CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/benchforge/labtrail/internal/lims"
	"github.com/benchforge/labtrail/internal/sqlite"
	"github.com/benchforge/labtrail/pkg/types"
)

// openService resolves the data directory and timezone, opens the store,
// and wires it into a Service. The caller must call the returned closer.
func openService() (*lims.Service, func(), error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{DataDir: dataDir, Timezone: configTimezone}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	store, err := sqlite.Open(dataDir, cfg.Location())
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	svc := lims.New(store, logger)

	return svc, func() { store.Close() }, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// orDash substitutes a dash for empty table cells in human output.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// printSampleRows renders samples one per line for human output.
func printSampleRows(samples []types.Sample) {
	for _, smp := range samples {
		fmt.Printf("%-12s  %-11s  %-7s  %-14s  due:%-10s  %s\n",
			smp.ID, smp.Status, smp.Priority, orDash(smp.Client), orDash(smp.DueAt), smp.Project)
	}
}

// printTestRows renders tests one per line for human output.
func printTestRows(tests []types.Test) {
	for _, tr := range tests {
		fmt.Printf("%-6d  %-12s  %-11s  %-20s  %-14s  %s\n",
			tr.ID, tr.SampleID, tr.Status, tr.Name, orDash(tr.Method), orDash(tr.AssignedTo))
	}
}
