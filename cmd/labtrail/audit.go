// Audit command searches the audit trail.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit [query]",
	Short: "Search the audit trail, newest first",
	Long: `Audit lists audit records matching the optional query substring
(matched against entity, action, and username).

Example:
  labtrail audit
  labtrail audit sample --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		records, err := svc.Store().FindAudit(cmd.Context(), query, auditLimit)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(records)
		}
		for _, rec := range records {
			fmt.Printf("%-6d  %s  %-10s  %-12s  %-10s  %s\n",
				rec.ID, types.FormatTime(rec.AtTime), rec.Entity, orDash(rec.EntityID), rec.Action, rec.ByUser)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 0, "maximum records to return (default 1000)")
}
