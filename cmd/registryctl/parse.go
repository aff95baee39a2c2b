package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/checkpoint-logbook/internal/domain"
	"github.com/pkordes/checkpoint-logbook/internal/registry"
)

var (
	// summaryOnly prints one line per file instead of the records
	summaryOnly bool
	// fileDateNow overrides the fallback date for file names without one
	fileDateNow string
)

func init() {
	parseCmd.Flags().BoolVar(&summaryOnly, "summary", false, "print kind, date and record count only")
	parseCmd.Flags().StringVar(&fileDateNow, "today", "", "date (YYYY-MM-DD) used when a file name has none (default: today)")
}

// parseCmd parses registry exports and prints the result
var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse registry CSV files and print the records as JSON",
	Long: `Parse one or more registry CSV exports exactly as an upload would.

Examples:
  # Print every record of a file
  registryctl parse "workers 5.3.25.csv"

  # Check several files at once
  registryctl parse --summary exports/*.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

// parsedFile is the JSON shape printed for each file.
type parsedFile struct {
	File     string                  `json:"file"`
	Kind     domain.FileKind         `json:"kind"`
	FileDate string                  `json:"file_date"`
	Count    int                     `json:"count"`
	Records  []domain.RegistryRecord `json:"records,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	now := time.Now()
	if fileDateNow != "" {
		d, err := time.Parse(time.DateOnly, fileDateNow)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		now = d
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	for _, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		text, err := registry.Decode(b)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		f := registry.Import(text, filepath.Base(path), now)

		out := parsedFile{File: path, Kind: f.Kind, FileDate: f.FileDate, Count: len(f.Data)}
		if !summaryOnly {
			out.Records = f.Data
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
