// Due-soon command lists samples approaching their due date.
package main

import (
	"github.com/spf13/cobra"
)

var dueSoonCmd = &cobra.Command{
	Use:   "due-soon",
	Short: "List open samples due within seven days",
	Long: `Due-soon lists samples whose due date falls within the next seven days,
ordered by due date. Closed and cancelled samples are excluded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		samples, err := svc.DueSoon(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(samples)
		}
		printSampleRows(samples)
		return nil
	},
}
