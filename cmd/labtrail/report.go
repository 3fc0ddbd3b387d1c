// Report command assembles a sample's full report.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <sample-id>",
	Short: "Assemble a sample report",
	Long: `Report gathers one sample together with all of its tests and every
result belonging to those tests into a single document. An unknown
sample id yields an empty report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		rep, err := svc.SampleReport(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(rep)
		}
		fmt.Println("generated:", rep.GeneratedAt)
		if rep.Sample.ID == "" {
			fmt.Println("sample:   ", args[0], "(not found)")
			return nil
		}
		fmt.Printf("sample:    %s  %s  %s  %s\n",
			rep.Sample.ID, rep.Sample.Status, rep.Sample.Client, orDash(rep.Sample.Project))
		fmt.Printf("tests (%d):\n", len(rep.Tests))
		printTestRows(rep.Tests)
		fmt.Printf("results (%d):\n", len(rep.Results))
		for _, res := range rep.Results {
			unc := ""
			if res.Uncertainty != nil {
				unc = fmt.Sprintf(" ±%g", *res.Uncertainty)
			}
			fmt.Printf("%-6d  test:%-6d  %-12s  %g%s %s\n",
				res.ID, res.TestID, res.Analyte, res.Value, unc, res.Unit)
		}
		return nil
	},
}
