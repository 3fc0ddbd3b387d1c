// QC event commands: add, list, close.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	qcAddType        string
	qcAddInstrument  string
	qcAddDescription string
)

var qcCmd = &cobra.Command{
	Use:   "qc",
	Short: "Track quality-control events",
}

var qcAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Open a new QC event",
	Long: `Add opens a quality-control event (calibration, maintenance,
verification, internal_control) on an instrument.

Example:
  labtrail qc add --type calibration --instrument "Epsilon 4"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.AddQCEvent(cmd.Context(), flagActor, types.QCEvent{
			Type:        qcAddType,
			Instrument:  qcAddInstrument,
			Description: qcAddDescription,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Opened QC event %d (%s)\n", created.ID, created.Type)
		return nil
	},
}

var qcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List QC events, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		events, err := svc.ListQCEvents(cmd.Context())
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(events)
		}
		for _, ev := range events {
			fmt.Printf("%-6d  %-16s  %-7s  %-20s  %s\n",
				ev.ID, ev.Type, ev.Status, orDash(ev.Instrument), orDash(ev.Description))
		}
		return nil
	},
}

var qcCloseCmd = &cobra.Command{
	Use:   "close <qc-id>",
	Short: "Close a QC event",
	Long:  `Close marks a QC event closed. Closing an already-closed event is a no-op.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%w: qc event id %q is not a number", types.ErrValidation, args[0])
		}

		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		closed, err := svc.CloseQCEvent(cmd.Context(), flagActor, id)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(closed)
		}
		fmt.Printf("QC event %d is %s\n", closed.ID, closed.Status)
		return nil
	},
}

func init() {
	qcAddCmd.Flags().StringVar(&qcAddType, "type", "", "event type (required)")
	qcAddCmd.Flags().StringVar(&qcAddInstrument, "instrument", "", "instrument name")
	qcAddCmd.Flags().StringVar(&qcAddDescription, "description", "", "free-text description")
	qcAddCmd.MarkFlagRequired("type")

	qcCmd.AddCommand(qcAddCmd)
	qcCmd.AddCommand(qcListCmd)
	qcCmd.AddCommand(qcCloseCmd)
}
