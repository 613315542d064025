package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"contactpsi/internal/app"
	"contactpsi/internal/cluster"
	"contactpsi/internal/crypto"
	"contactpsi/internal/store"
)

var (
	home   string
	listen string
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "psicluster",
		Short:        "Run the contactpsi computation cluster",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.contactpsi-cluster)")
	root.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	root.AddCommand(keysCmd())
	return root
}

func loadConfig(cmd *cobra.Command) (app.Config, error) {
	if home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return app.Config{}, err
		}
		home = filepath.Join(dir, ".contactpsi-cluster")
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return app.Config{}, err
	}
	cfg, err := app.LoadConfig(home)
	if err != nil {
		return app.Config{}, err
	}
	if cmd.Flags().Changed("listen") {
		cfg.Listen = listen
	}
	return cfg, nil
}

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the cluster's public keys, creating them if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			keys, err := app.LoadOrCreateClusterKeys(store.NewClusterKeyFileStore(cfg.StorePath, cfg.ClusterPassphrase))
			if err != nil {
				return err
			}
			info := keys.Info()
			fmt.Printf("Box key:     %x\nSigning key: %x\nFingerprint: %s\n",
				info.BoxKey, info.SigningKey, crypto.Fingerprint(info.SigningKey.Slice()))
			return nil
		},
	}
}

func serve(ctx context.Context, cfg app.Config) error {
	logger, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	exec, err := app.NewLocalExecutor(cfg, logger)
	if err != nil {
		return err
	}
	defer exec.Close()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           cluster.NewServer(ctx, exec, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("cluster listening", "addr", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
