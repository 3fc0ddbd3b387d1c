// Result commands: add, list.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	resultAddAnalyte     string
	resultAddValue       float64
	resultAddUnit        string
	resultAddUncertainty float64
	resultAddNotes       string
)

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Record and list measurement results",
}

var resultAddCmd = &cobra.Command{
	Use:   "add <test-id>",
	Short: "Record a result for a test",
	Long: `Add records one measured value for an existing test. Results are
append-only; a correction is a new result, never an overwrite.

Example:
  labtrail result add 3 --analyte Fe --value 12.5 --unit mg/kg --uncertainty 0.8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: test id %q is not a number", types.ErrValidation, args[0])
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		draft := types.Result{
			Analyte: resultAddAnalyte,
			Value:   resultAddValue,
			Unit:    resultAddUnit,
			Notes:   resultAddNotes,
		}
		if cmd.Flags().Changed("uncertainty") {
			unc := resultAddUncertainty
			draft.Uncertainty = &unc
		}

		created, err := svc.AddResult(cmd.Context(), flagActor, testID, draft)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Recorded result %d: %s = %g %s\n", created.ID, created.Analyte, created.Value, created.Unit)
		return nil
	},
}

var resultListCmd = &cobra.Command{
	Use:   "list <test-id>",
	Short: "List the results of a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		testID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: test id %q is not a number", types.ErrValidation, args[0])
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		results, err := svc.ResultsForTest(cmd.Context(), testID)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(results)
		}
		for _, res := range results {
			unc := "-"
			if res.Uncertainty != nil {
				unc = fmt.Sprintf("±%g", *res.Uncertainty)
			}
			fmt.Printf("%-6d  %-12s  %12g %-8s  %-8s  %s\n",
				res.ID, res.Analyte, res.Value, orDash(res.Unit), unc, types.FormatTime(res.MeasuredAt))
		}
		return nil
	},
}

func init() {
	resultAddCmd.Flags().StringVar(&resultAddAnalyte, "analyte", "", "analyte name (required)")
	resultAddCmd.Flags().Float64Var(&resultAddValue, "value", 0, "measured value (required)")
	resultAddCmd.Flags().StringVar(&resultAddUnit, "unit", "", "measurement unit")
	resultAddCmd.Flags().Float64Var(&resultAddUncertainty, "uncertainty", 0, "expanded uncertainty")
	resultAddCmd.Flags().StringVar(&resultAddNotes, "notes", "", "free-text notes")
	resultAddCmd.MarkFlagRequired("analyte")
	resultAddCmd.MarkFlagRequired("value")

	resultCmd.AddCommand(resultAddCmd)
	resultCmd.AddCommand(resultListCmd)
}
