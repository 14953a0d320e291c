package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/endotronic/dropbox-monitoring/internal/monitor"
)

func init() {
	rootCmd.AddCommand(newStreamCmd())
}

func newStreamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stream",
		Short: "Read Dropbox status lines from stdin and export them",
		Long: `Reads status lines from stdin, echoes each line to stdout unchanged so the
process can sit in a pipeline, and serves the parsed state on the metrics
endpoint. Exits cleanly when the input stream closes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := configFromViper()
			if err != nil {
				return err
			}
			log, err := monitorLogger()
			if err != nil {
				return err
			}

			sm := monitor.NewStream(os.Stdin, os.Stdout, log)
			daemon := monitor.NewDaemon(sm, cfg.Addr())

			defer slog.Info("stopped gracefully")
			return daemon.Start(cmd.Context())
		},
	}
}
