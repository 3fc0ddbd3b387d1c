// Backup command snapshots the database to a file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Write a consistent snapshot of the database",
	Long: `Backup writes the whole database to the given path as a standalone
SQLite file. The snapshot is transactionally consistent; an existing
file at the path is never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Store().BackupTo(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Println("Backup written to", args[0])
		return nil
	},
}
