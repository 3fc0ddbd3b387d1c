// Root command for the labtrail CLI.
package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/benchforge/labtrail/internal/paths"
	"github.com/benchforge/labtrail/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad input, unknown entity),
// 2 system error (store unavailable, I/O failure).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagActor     string
	flagJSON      bool
)

// Values loaded from config.yaml by PersistentPreRunE so all subcommands
// can use them.
var (
	configDataDir  string
	configTimezone string
)

var rootCmd = &cobra.Command{
	Use:     "labtrail",
	Short:   "labtrail is a single-file laboratory sample tracker",
	Version: version,
	Long: `labtrail tracks laboratory samples, their tests and results, the chain
of custody, QC events, and a full audit trail, all in one embedded
SQLite database file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configTimezone = cfg.GetString(cfgKeyTimezone)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.labtrail)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.labtrail-db)")
	rootCmd.PersistentFlags().StringVar(&flagActor, "actor", "admin", "username recorded on mutations")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(cocCmd)
	rootCmd.AddCommand(qcCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(dueSoonCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
}

// resolveDataDir returns the data directory following the precedence
// --data-dir flag > config.yaml data_dir > LABTRAIL_DATA_DIR env >
// default $(CWD)/.labtrail-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence --config-dir flag > LABTRAIL_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// exitCode maps an error to the CLI exit code. Mistakes the operator can
// correct (bad input, unknown ids, duplicates) are user errors; anything
// else is a system error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, userErr := range []error{
		types.ErrValidation,
		types.ErrNotFound,
		types.ErrInvalidStatus,
		types.ErrInvalidMatrix,
		types.ErrInvalidPriority,
		types.ErrInvalidRole,
		types.ErrInvalidQCType,
		types.ErrDuplicateUsername,
		types.ErrTableUnknown,
		types.ErrTimezoneInvalid,
	} {
		if errors.Is(err, userErr) {
			return exitUserError
		}
	}
	return exitSysError
}
