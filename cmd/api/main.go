package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/studentregistry/internal/pkg/logger"
	"github.com/yigit/studentregistry/internal/server"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "Serve the student registry API and UI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(configPath)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (default configs/config.yaml)")

	if err := cmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
