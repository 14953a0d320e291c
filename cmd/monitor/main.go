package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/endotronic/dropbox-monitoring/internal/dropbox"
	"github.com/endotronic/dropbox-monitoring/internal/monitor"
	"github.com/endotronic/dropbox-monitoring/internal/version"
)

const logTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// globalLevel drives the default logger; the monitor component gets its own
// logger at its own level so its debug output (ignored status lines, poll
// results) can be turned up without drowning everything else.
var globalLevel slog.LevelVar

var rootCmd = &cobra.Command{
	Use:     "dropbox-monitor",
	Short:   "Prometheus exporter for the local Dropbox client",
	Version: version.Detailed(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
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
		showHeader()

		source := dropbox.NewCLI(log, dropbox.WithCommand(cfg.DropboxCmd))
		mon := monitor.New(source, cfg.MinPollInterval, log)
		daemon := monitor.NewDaemon(mon, cfg.Addr())

		defer slog.Info("stopped gracefully")
		return daemon.Start(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().IntP("min-poll-interval", "i", 5, "minimum interval for polling Dropbox (in seconds)")
	rootCmd.Flags().String("dropbox-cmd", dropbox.DefaultCommand, "dropbox binary used for status queries")
	rootCmd.PersistentFlags().IntP("port", "p", monitor.DefaultPort, "metrics server port")
	rootCmd.PersistentFlags().String("log-level", "debug", "monitor log level")
	rootCmd.PersistentFlags().String("global-log-level", "info", "log level for everything else")

	viper.SetDefault("min_poll_interval", 5)
	viper.SetDefault("dropbox_cmd", dropbox.DefaultCommand)
}

func main() {
	globalLevel.Set(slog.LevelInfo)

	// Logs go to stderr so the stream subcommand can keep stdout as a clean
	// pass-through of its input.
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      &globalLevel,
		TimeFormat: logTimeFormat,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	slog.SetDefault(slog.New(handler))

	// Hangup, interrupt and terminate all take the same graceful path.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	// Bind whatever flags the executing command carries; the stream
	// subcommand has no poll flags.
	for flagName, key := range map[string]string{
		"port":              "port",
		"log-level":         "log_level",
		"global-log-level":  "global_log_level",
		"min-poll-interval": "min_poll_interval",
		"dropbox-cmd":       "dropbox_cmd",
	} {
		if f := cmd.Flags().Lookup(flagName); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	viper.SetEnvPrefix("DROPBOX_MONITOR")
	viper.AutomaticEnv()

	level, err := parseLevel(viper.GetString("global_log_level"))
	if err != nil {
		return err
	}
	globalLevel.Set(level)
	return nil
}

func configFromViper() (*monitor.Config, error) {
	cfg := &monitor.Config{
		MinPollInterval: time.Duration(viper.GetInt("min_poll_interval")) * time.Second,
		Port:            viper.GetInt("port"),
		DropboxCmd:      viper.GetString("dropbox_cmd"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// monitorLogger builds the component logger at its own level.
func monitorLogger() (*slog.Logger, error) {
	level, err := parseLevel(viper.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: logTimeFormat,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	return slog.New(handler).With("logger", "monitor"), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func showHeader() {
	color.New(color.FgHiCyan, color.Bold).Fprintln(os.Stderr, version.ShortWithApp())
}
