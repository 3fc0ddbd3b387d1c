// Attach commands: add, list.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/pkg/types"
)

var (
	attachAddURL   string
	attachAddLabel string
)

var attachCmd = &cobra.Command{
	Use:   "attach",
	Short: "Link external documents to samples",
}

var attachAddCmd = &cobra.Command{
	Use:   "add <sample-id>",
	Short: "Attach a document URL to a sample",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		created, err := svc.AddAttachment(cmd.Context(), flagActor, args[0], types.Attachment{
			URL:   attachAddURL,
			Label: attachAddLabel,
		})
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("Attached %s to sample %s\n", created.URL, created.SampleID)
		return nil
	},
}

var attachListCmd = &cobra.Command{
	Use:   "list <sample-id>",
	Short: "List a sample's attachments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		attachments, err := svc.AttachmentsForSample(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if flagJSON {
			return printJSON(attachments)
		}
		for _, att := range attachments {
			fmt.Printf("%-6d  %-20s  %-10s  %s\n", att.ID, orDash(att.Label), att.AddedBy, att.URL)
		}
		return nil
	},
}

func init() {
	attachAddCmd.Flags().StringVar(&attachAddURL, "url", "", "document URL (required)")
	attachAddCmd.Flags().StringVar(&attachAddLabel, "label", "", "short label")
	attachAddCmd.MarkFlagRequired("url")

	attachCmd.AddCommand(attachAddCmd)
	attachCmd.AddCommand(attachListCmd)
}
