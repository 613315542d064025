package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"contactpsi/internal/app"
)

var (
	home       string
	passphrase string
	clusterURL string
	storePath  string
	logLevel   string
	jsonLogs   bool
	timeout    time.Duration

	cfg   app.Config
	wired *app.Wire
)

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:          "contactpsi",
		Short:        "Private contact discovery between two parties",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".contactpsi")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			var err error
			if cfg, err = app.LoadConfig(home); err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cluster") {
				cfg.ClusterURL = clusterURL
			}
			if flags.Changed("store") {
				cfg.StorePath = storePath
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("json-logs") {
				cfg.JSONLogs = jsonLogs
			}
			if flags.Changed("timeout") {
				cfg.JobTimeout.Duration = timeout
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wired == nil {
				return nil
			}
			err := wired.Close()
			wired = nil
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "config dir (default ~/.contactpsi)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the identity keys")
	pf.StringVar(&clusterURL, "cluster", "", "cluster base URL (e.g. http://127.0.0.1:8090); empty runs in-process")
	pf.StringVar(&storePath, "store", "", "session store directory shared by parties of a local cluster")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON")
	pf.DurationVar(&timeout, "timeout", 0, "how long to wait for each cluster job")

	root.AddCommand(
		initCmd(),
		fingerprintCmd(),
		hashCmd(),
		createCmd(),
		submitCmd(),
		matchCmd(),
		revealCmd(),
		statusCmd(),
	)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}

// wire builds the dependency graph on first use.
func wire(ctx context.Context) (*app.Wire, error) {
	if wired != nil {
		return wired, nil
	}
	w, err := app.NewWire(ctx, cfg)
	if err != nil {
		return nil, err
	}
	wired = w
	return w, nil
}

func requirePassphrase() error {
	if passphrase == "" {
		return fmt.Errorf("passphrase required (-p)")
	}
	return nil
}
