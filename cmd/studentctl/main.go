// Command studentctl runs administrative tasks against the student store:
// schema migrations, CSV imports and reports.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/studentregistry/internal/pkg/logger"
)

var (
	configPath string
	seedStore  bool
)

var rootCmd = &cobra.Command{
	Use:           "studentctl",
	Short:         "Administer the student registry store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&seedStore, "seed", false, "insert sample students when the store is empty")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("studentctl failed")
		os.Exit(1)
	}
}
