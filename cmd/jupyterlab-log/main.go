package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	clientcmd "github.com/behavioral-data/Data-Assistant-Interface/internal/cmd/client"
	serverrun "github.com/behavioral-data/Data-Assistant-Interface/internal/cmd/server"
	cfgpkg "github.com/behavioral-data/Data-Assistant-Interface/internal/config"
)

// version is set with -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jupyterlab-log",
		Short: "JupyterLab event logging server and client",
		Long: "jupyterlab-log records JSON events posted by notebook front-ends to " +
			"per-context, per-day JSON Lines files.",
		SilenceUsage: true,
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start the event logging server",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			if err := serverrun.Run(ctx, serverrun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	f := serverStartCmd.Flags()
	f.String("config", os.Getenv("JLOG_CONFIG"), "Config file (.json, .yaml or .yml)")
	f.String("http", "", "HTTP listen address (default :8888)")
	f.String("grpc", "", "gRPC listen address (disabled when empty)")
	f.String("log-dir", "", "Directory event files are written to (default .event_logs)")
	f.String("base-path", "", "Base URL path the endpoint is mounted under (default /)")
	f.String("fsync", "", "Fsync mode: always|never (default never)")
	f.Bool("utc", false, "Date file names in UTC instead of local time")
	f.String("token", "", "Require this Jupyter API token on submissions")
	f.Int64("max-body-bytes", 0, "Largest accepted request body in bytes (default 100MiB, 0 disables the cap)")
	f.Bool("metrics", true, "Serve Prometheus metrics at /metrics")
	f.String("log-level", "", "Log level: debug|info|warn|error")
	f.String("log-format", "", "Log format: text|json (default text)")
	f.String("log-file", "", "Also write server logs to this file")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	rootCmd.AddCommand(clientcmd.NewSendCommand())

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "jupyterlab-log", resolveVersion())
		},
	})
	return rootCmd
}

// loadConfig layers defaults, the config file, JLOG_* variables and finally
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfg, err
	}
	cfgpkg.FromEnv(&cfg)

	strFlags := map[string]*string{
		"http":       &cfg.HTTPAddr,
		"grpc":       &cfg.GRPCAddr,
		"log-dir":    &cfg.LogDir,
		"base-path":  &cfg.BasePath,
		"fsync":      &cfg.Fsync,
		"token":      &cfg.Token,
		"log-level":  &cfg.Log.Level,
		"log-format": &cfg.Log.Format,
		"log-file":   &cfg.Log.File,
	}
	for name, dst := range strFlags {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("utc") {
		cfg.UTC, _ = f.GetBool("utc")
	}
	if f.Changed("metrics") {
		cfg.MetricsEnabled, _ = f.GetBool("metrics")
	}
	if f.Changed("max-body-bytes") {
		cfg.MaxBodyBytes, _ = f.GetInt64("max-body-bytes")
	}
	return cfg, cfg.Validate()
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}
