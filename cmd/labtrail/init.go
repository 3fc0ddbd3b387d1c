// Init command for the labtrail CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize labtrail storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		if err := ensureConfigDir(configDir); err != nil {
			return err
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			return err
		}

		// Opening the store creates the data directory, the database file,
		// the schema, and the seeded admin user.
		svc, closeStore, err := openService()
		if err != nil {
			return err
		}
		defer closeStore()

		fmt.Println("labtrail initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", svc.Store().Path())
		return nil
	},
}
