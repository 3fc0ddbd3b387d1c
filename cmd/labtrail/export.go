// Export command writes one table as CSV.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a table as CSV",
	Long: fmt.Sprintf(`Export writes every row of one table as CSV to stdout, or to a file
with --out. The first record is the column header.

Valid table names: %s

Example:
  labtrail export samples --out samples.csv`, strings.Join(types.ExportableTables, ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := svc.Store().ExportCSV(cmd.Context(), out, args[0]); err != nil {
			return err
		}

		if exportOut != "" {
			fmt.Fprintf(os.Stderr, "Exported %s to %s\n", args[0], exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
}
