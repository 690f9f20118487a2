package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kompox/mashup/config/mashupcfg"
	"github.com/kompox/mashup/internal/logging"
)

// runConfig holds the configuration resolved in PersistentPreRunE.
var runConfig *mashupcfg.Config

// logFile is the log destination opened in PersistentPreRunE.
var logFile *logging.LogFile

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mashupctl",
		Short:   "Mashup platform workspace CLI",
		Long:    "Manage mashup platform workspaces: create, clone from mashups, merge, remove and log out.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "Config file (default $MASHUP_DIR/config.yml)")
	pf.String("server", "", "Platform server URL (env MASHUP_URL)")
	pf.String("username", "", "Session user name (env MASHUP_USERNAME)")
	pf.String("db-url", "", "Cache database URL (env MASHUP_DB_URL) (sqlite:/path/to.db) (default sqlite:$MASHUP_DIR/mashupctl.db)")
	pf.String("log-format", "human", "Log format (human|text|json) (env MASHUP_LOG_FORMAT)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		runConfig = cfg

		level, err := logging.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		lf, err := logging.NewLogFile(&logging.LogConfig{
			Format:        cfg.Logging.Format,
			Level:         cfg.Logging.Level,
			Output:        cfg.Logging.Output,
			Dir:           cfg.Logging.Dir,
			RetentionDays: cfg.Logging.RetentionDays,
		})
		if err != nil {
			return err
		}
		logFile = lf
		if lf.Path != "" {
			_ = logging.CleanupOldLogFiles(cfg.Logging.Dir, logging.DefaultFilePrefix, cfg.Logging.RetentionDays)
		}
		l, err := logging.NewWithWriter(cfg.Logging.Format, level, lf.Writer())
		if err != nil {
			return err
		}
		l = l.With("runId", uuid.NewString())
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdWorkspace())
	cmd.AddCommand(newCmdPreferences())
	cmd.AddCommand(newCmdLogout())
	return cmd
}

// loadConfig reads the config file, then applies flags set on the command
// line. Environment overrides are applied by mashupcfg.Load, so explicit
// flags win over env, which wins over the file.
func loadConfig(cmd *cobra.Command) (*mashupcfg.Config, error) {
	path, _ := changedFlag(cmd, "config")
	cfg, err := mashupcfg.Load(path)
	if err != nil {
		return nil, err
	}
	if v, ok := changedFlag(cmd, "server"); ok {
		cfg.Server.URL = v
	}
	if v, ok := changedFlag(cmd, "username"); ok {
		cfg.Session.Username = v
	}
	if v, ok := changedFlag(cmd, "db-url"); ok && v != "" {
		cfg.Store.Type = mashupcfg.StoreRDB
		cfg.Store.DSN = v
	}
	if _, ok := changedFlag(cmd, "log-format"); ok || cfg.Logging.Format == "" {
		if f := findFlag(cmd, "log-format"); f != nil {
			cfg.Logging.Format = f.Value.String()
		}
	}
	return cfg, nil
}

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// changedFlag returns the value of a flag given on the command line.
func changedFlag(cmd *cobra.Command, name string) (string, bool) {
	f := findFlag(cmd, name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// execute runs root and performs process-wide teardown.
func execute(root *cobra.Command) error {
	executed, err := root.ExecuteC()
	ctx := root.Context()
	if executed != nil {
		ctx = executed.Context()
	}
	if err != nil {
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	}
	if runConfig != nil && runConfig.Metrics.Textfile != "" {
		if werr := writeMetrics(runConfig.Metrics.Textfile); werr != nil {
			logging.FromContext(ctx).Warn(ctx, "writing metrics textfile failed", "path", runConfig.Metrics.Textfile, "err", werr)
		}
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	return err
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	if err := execute(root); err != nil {
		os.Exit(1)
	}
}
