// Chain-of-custody commands: add, list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	cocAddEvent string
	cocAddNotes string
)

var cocCmd = &cobra.Command{
	Use:   "coc",
	Short: "Append to and inspect chains of custody",
}

var cocAddCmd = &cobra.Command{
	Use:   "add <sample-id>",
	Short: "Append a custody event to a sample",
	Long: `Add appends one event to a sample's chain of custody. The event label
is free text; preparation, analysis, review, and delivery are the
conventional values.

Example:
  labtrail coc add S-2026-0001 --event analysis --notes "started ICP run"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.AddCocEvent(cmd.Context(), flagActor, args[0], cocAddEvent, cocAddNotes)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Recorded custody event %q on sample %s\n", created.Event, created.SampleID)
		return nil
	},
}

var cocListCmd = &cobra.Command{
	Use:   "list <sample-id>",
	Short: "Show a sample's chain of custody in event order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		events, err := svc.CocForSample(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(events)
		}
		for _, ev := range events {
			fmt.Printf("%-6d  %s  %-14s  %-10s  %s\n",
				ev.ID, types.FormatTime(ev.AtTime), ev.Event, ev.ByUser, orDash(ev.Notes))
		}
		return nil
	},
}

func init() {
	cocAddCmd.Flags().StringVar(&cocAddEvent, "event", "", "event label (required)")
	cocAddCmd.Flags().StringVar(&cocAddNotes, "notes", "", "free-text notes")
	cocAddCmd.MarkFlagRequired("event")

	cocCmd.AddCommand(cocAddCmd)
	cocCmd.AddCommand(cocListCmd)
}
