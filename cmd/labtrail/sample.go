// Sample commands: list, get, update.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	sampleListStatus string

	sampleUpdateStatus      string
	sampleUpdateClient      string
	sampleUpdateProject     string
	sampleUpdateMatrix      string
	sampleUpdateDescription string
	sampleUpdateReceived    string
	sampleUpdateDue         string
	sampleUpdatePriority    string
	sampleUpdateLocation    string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Inspect and update samples",
}

var sampleListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List samples, newest first",
	Long: `List prints samples matching the optional query substring (matched
against id, client, and project) and the --status filter.

Example:
  labtrail sample list
  labtrail sample list Acme
  labtrail sample list --status registered,in_process`,
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

		var statuses []string
		if sampleListStatus != "" {
			for _, s := range strings.Split(sampleListStatus, ",") {
				statuses = append(statuses, strings.TrimSpace(s))
			}
		}

		samples, err := svc.FindSamples(cmd.Context(), query, statuses)
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

var sampleGetCmd = &cobra.Command{
	Use:   "get <sample-id>",
	Short: "Show one sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		smp, err := svc.GetSample(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(smp)
		}
		fmt.Println("id:         ", smp.ID)
		fmt.Println("client:     ", smp.Client)
		fmt.Println("project:    ", orDash(smp.Project))
		fmt.Println("matrix:     ", smp.Matrix)
		fmt.Println("status:     ", smp.Status)
		fmt.Println("priority:   ", smp.Priority)
		fmt.Println("received:   ", orDash(smp.ReceivedAt))
		fmt.Println("due:        ", orDash(smp.DueAt))
		fmt.Println("location:   ", orDash(smp.Location))
		fmt.Println("description:", orDash(smp.Description))
		fmt.Println("created by: ", smp.CreatedBy)
		return nil
	},
}

var sampleUpdateCmd = &cobra.Command{
	Use:   "update <sample-id>",
	Short: "Update sample fields",
	Long: `Update rewrites the given fields of an existing sample. Fields not
named by a flag keep their current value.

Example:
  labtrail sample update S-2026-0001 --status in_process --location "bench 2"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		smp, err := svc.GetSample(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		upd := *smp
		apply := map[string]*string{
			"status":      &upd.Status,
			"client":      &upd.Client,
			"project":     &upd.Project,
			"matrix":      &upd.Matrix,
			"description": &upd.Description,
			"received":    &upd.ReceivedAt,
			"due":         &upd.DueAt,
			"priority":    &upd.Priority,
			"location":    &upd.Location,
		}
		values := map[string]string{
			"status":      sampleUpdateStatus,
			"client":      sampleUpdateClient,
			"project":     sampleUpdateProject,
			"matrix":      sampleUpdateMatrix,
			"description": sampleUpdateDescription,
			"received":    sampleUpdateReceived,
			"due":         sampleUpdateDue,
			"priority":    sampleUpdatePriority,
			"location":    sampleUpdateLocation,
		}
		for name, dst := range apply {
			if cmd.Flags().Changed(name) {
				*dst = values[name]
			}
		}

		got, err := svc.UpdateSample(cmd.Context(), flagActor, upd)
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(got)
		}
		fmt.Printf("Updated sample %s (status: %s)\n", got.ID, got.Status)
		return nil
	},
}

func init() {
	sampleListCmd.Flags().StringVar(&sampleListStatus, "status", "", "comma-separated status filter")

	sampleUpdateCmd.Flags().StringVar(&sampleUpdateStatus, "status", "", "sample status")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateClient, "client", "", "client name")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateProject, "project", "", "project name")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateMatrix, "matrix", "", "sample matrix")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateDescription, "description", "", "free-text description")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateReceived, "received", "", "reception date YYYY-MM-DD")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateDue, "due", "", "due date YYYY-MM-DD (empty clears)")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdatePriority, "priority", "", "priority")
	sampleUpdateCmd.Flags().StringVar(&sampleUpdateLocation, "location", "", "storage location")

	sampleCmd.AddCommand(sampleListCmd)
	sampleCmd.AddCommand(sampleGetCmd)
	sampleCmd.AddCommand(sampleUpdateCmd)
}
