// Dashboard command prints the headline workload counts.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show sample, test, and QC counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		counts, err := svc.Dashboard(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(counts)
		}
		fmt.Println("total samples: ", counts.TotalSamples)
		fmt.Println("open samples:  ", counts.OpenSamples)
		fmt.Println("pending tests: ", counts.PendingTests)
		fmt.Println("open QC events:", counts.OpenQCEvents)
		return nil
	},
}
