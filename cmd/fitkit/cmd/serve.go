/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/fitkit/pkg/api"
	"github.com/ssargent/fitkit/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the fitkit REST API server.

The server decodes and checks uploaded FIT files and keeps an activity
archive in the data directory. Every /api/v1 route requires the X-API-Key
header; Prometheus metrics are served at /metrics.

Examples:
  fitkit serve
  fitkit serve --port=9300 --api-key=mysecretkey`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *appConfig
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		serverConfig, err := serverConfigFrom(&cfg)
		if err != nil {
			return err
		}

		if container == nil {
			return fmt.Errorf("dependency container not initialized")
		}
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		archive, err := container.GetArchiveFactory().OpenArchive(
			cfg.ArchivePath(), cfg.Archive.Compression, serverConfig.ReadOptions, logger)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer archive.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		if err := starter.StartServer(ctx, archive, serverConfig, logger); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	},
}

// serverConfigFrom derives the API settings from the loaded configuration
func serverConfigFrom(cfg *config.Config) (api.ServerConfig, error) {
	if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
		return api.ServerConfig{}, fmt.Errorf("no API key configured (run 'fitkit init' or pass --api-key)")
	}
	return api.ServerConfig{
		Bind:          cfg.Bind,
		Port:          cfg.Port,
		APIKey:        cfg.Security.APIKey,
		MaxUploadSize: cfg.Security.MaxUploadSize,
		ReadOptions:   cfg.Decode.ReadOptions(),
	}, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind")
	serveCmd.Flags().String("api-key", "", "API key for authentication")
	serveCmd.Flags().String("data-dir", "./data", "Data directory holding the archive")
}

