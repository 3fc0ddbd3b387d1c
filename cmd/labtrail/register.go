// Register command creates a new sample.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	registerClient      string
	registerProject     string
	registerMatrix      string
	registerDescription string
	registerReceived    string
	registerDue         string
	registerPriority    string
	registerLocation    string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new sample",
	Long: `Register creates a sample, mints its year-scoped identifier, opens its
chain of custody, and records the creation in the audit trail.

Example:
  labtrail register --client "Acme Mining" --matrix soil --due 2026-09-15`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.RegisterSample(cmd.Context(), flagActor, types.Sample{
			Client:      registerClient,
			Project:     registerProject,
			Matrix:      registerMatrix,
			Description: registerDescription,
			ReceivedAt:  registerReceived,
			DueAt:       registerDue,
			Priority:    registerPriority,
			Location:    registerLocation,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Println("Registered sample:", created.ID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerClient, "client", "", "client name (required)")
	registerCmd.Flags().StringVar(&registerProject, "project", "", "project name")
	registerCmd.Flags().StringVar(&registerMatrix, "matrix", "", "sample matrix (soil, water, rock, plant, other)")
	registerCmd.Flags().StringVar(&registerDescription, "description", "", "free-text description")
	registerCmd.Flags().StringVar(&registerReceived, "received", "", "reception date YYYY-MM-DD (default: today)")
	registerCmd.Flags().StringVar(&registerDue, "due", "", "due date YYYY-MM-DD")
	registerCmd.Flags().StringVar(&registerPriority, "priority", "", "priority (low, normal, high, urgent)")
	registerCmd.Flags().StringVar(&registerLocation, "location", "", "storage location")

	registerCmd.MarkFlagRequired("client")
}
