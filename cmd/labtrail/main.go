// Package main provides the labtrail CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "labtrail:", err)
		os.Exit(exitCode(err))
	}
}
