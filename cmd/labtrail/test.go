// Test commands: add, list, update.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	testAddName     string
	testAddMethod   string
	testAddUnit     string
	testAddAssigned string
	testAddDue      string

	testListSample string

	testUpdateStatus   string
	testUpdateAssigned string
	testUpdateDue      string
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Manage analytical tests on samples",
}

var testAddCmd = &cobra.Command{
	Use:   "add <sample-id>",
	Short: "Request a test on a sample",
	Long: `Add attaches a new test to an existing sample, initially pending.

Example:
  labtrail test add S-2026-0001 --name ICP-OES --method "EPA 6010D"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.AddTest(cmd.Context(), flagActor, args[0], types.Test{
			Name:       testAddName,
			Method:     testAddMethod,
			Unit:       testAddUnit,
			AssignedTo: testAddAssigned,
			DueAt:      testAddDue,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Added test %d (%s) to sample %s\n", created.ID, created.Name, created.SampleID)
		return nil
	},
}

var testListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List tests",
	Long: `List prints tests matching the optional query substring (matched
against sample id, test name, and method), or every test of one sample
with --sample.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		var tests []types.Test
		if testListSample != "" {
			tests, err = svc.TestsForSample(cmd.Context(), testListSample)
		} else {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			tests, err = svc.FindTests(cmd.Context(), query)
		}
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(tests)
		}
		printTestRows(tests)
		return nil
	},
}

var testUpdateCmd = &cobra.Command{
	Use:   "update <test-id>",
	Short: "Update a test's status, assignee, or due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: test id %q is not a number", types.ErrValidation, args[0])
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		current, err := svc.GetTest(cmd.Context(), id)
		if err != nil {
			return err
		}

		status := current.Status
		assigned := current.AssignedTo
		due := current.DueAt
		if cmd.Flags().Changed("status") {
			status = testUpdateStatus
		}
		if cmd.Flags().Changed("assigned") {
			assigned = testUpdateAssigned
		}
		if cmd.Flags().Changed("due") {
			due = testUpdateDue
		}

		got, err := svc.UpdateTest(cmd.Context(), flagActor, id, status, assigned, due)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(got)
		}
		fmt.Printf("Updated test %d (status: %s)\n", got.ID, got.Status)
		return nil
	},
}

func init() {
	testAddCmd.Flags().StringVar(&testAddName, "name", "", "test name (required)")
	testAddCmd.Flags().StringVar(&testAddMethod, "method", "", "analytical method")
	testAddCmd.Flags().StringVar(&testAddUnit, "unit", "", "reporting unit")
	testAddCmd.Flags().StringVar(&testAddAssigned, "assigned", "", "assigned analyst")
	testAddCmd.Flags().StringVar(&testAddDue, "due", "", "due date YYYY-MM-DD")
	testAddCmd.MarkFlagRequired("name")

	testListCmd.Flags().StringVar(&testListSample, "sample", "", "list only the tests of this sample")

	testUpdateCmd.Flags().StringVar(&testUpdateStatus, "status", "", "test status (pending, in_process, in_review, reported, cancelled)")
	testUpdateCmd.Flags().StringVar(&testUpdateAssigned, "assigned", "", "assigned analyst (empty clears)")
	testUpdateCmd.Flags().StringVar(&testUpdateDue, "due", "", "due date YYYY-MM-DD (empty clears)")

	testCmd.AddCommand(testAddCmd)
	testCmd.AddCommand(testListCmd)
	testCmd.AddCommand(testUpdateCmd)
}
