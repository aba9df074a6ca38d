package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/justestif/spotify-raw-ingest/internal/app"
	"github.com/justestif/spotify-raw-ingest/internal/config"
	"github.com/justestif/spotify-raw-ingest/internal/logging"
	"github.com/justestif/spotify-raw-ingest/internal/spotify"
	"github.com/justestif/spotify-raw-ingest/internal/web"
)

func newRootCommand() *cobra.Command {
	var logFile string

	rootCmd := &cobra.Command{
		Use:           "spotify-ingest",
		Short:         "Fetch a Spotify playlist page and store it in S3",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file (overrides LOG_FILE)")

	load := func() (*config.Config, *zap.Logger) {
		cfg := config.Load()
		if logFile != "" {
			cfg.LogFile = logFile
		}
		return cfg, logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	}

	rootCmd.AddCommand(newRunCommand(load))
	rootCmd.AddCommand(newServeCommand(load))
	rootCmd.AddCommand(newPlaylistIDCommand())

	return rootCmd
}

type loader func() (*config.Config, *zap.Logger)

func newRunCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one ingest and print the stored key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := load()
			defer logger.Sync()

			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Handler.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "s3://%s/%s (%d bytes)\n", res.Bucket, res.Key, res.SizeBytes)
			return nil
		},
	}
}

func newServeCommand(load loader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /invoke as a local trigger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := load()
			defer logger.Sync()

			if addr != "" {
				cfg.HTTPAddr = addr
			}

			a, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			return web.NewServer(cfg.HTTPAddr, a.Handler, logger).Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}

func newPlaylistIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "playlist-id <link>",
		Short: "Print the playlist id derived from a sharing link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), spotify.PlaylistID(args[0]))
			return nil
		},
	}
}
