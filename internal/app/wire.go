package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/hashicorp/go-multierror"

	"contactpsi/internal/cluster"
	"contactpsi/internal/crypto"
	"contactpsi/internal/domain"
	"contactpsi/internal/log"
	identitysvc "contactpsi/internal/services/identity"
	"contactpsi/internal/services/party"
	sessionsvc "contactpsi/internal/services/session"
	"contactpsi/internal/store"
)

// Wire bundles all stores, services, and clients for the binaries.
type Wire struct {
	Config   Config
	Log      log.Logger
	Identity domain.IdentityService
	Store    domain.SessionStore
	Executor domain.Executor
	Sessions domain.SessionService
	HTTP     *http.Client
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg Config) (log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.New(os.Stderr, level, cfg.JSONLogs), nil
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config) (_ *Wire, err error) {
	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	w := &Wire{Config: cfg, Log: logger, HTTP: httpClient}
	defer func() {
		if err != nil {
			_ = w.Close()
		}
	}()

	w.Identity = identitysvc.New(store.NewIdentityFileStore(cfg.Home), logger)

	bolt, err := store.NewBoltStore(ctx, logger, cfg.StorePath)
	if err != nil {
		return nil, err
	}
	w.Store = bolt
	cached, err := store.NewCachingStore(bolt, cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	w.Store = cached

	if cfg.ClusterURL != "" {
		w.Executor = cluster.NewRemote(cfg.ClusterURL, httpClient)
	} else {
		local, err := NewLocalExecutor(cfg, logger)
		if err != nil {
			return nil, err
		}
		w.Executor = local
	}

	w.Sessions = sessionsvc.New(w.Store, w.Executor,
		sessionsvc.WithTimeout(cfg.JobTimeout.Duration),
		sessionsvc.WithLogger(logger),
	)
	return w, nil
}

// NewLocalExecutor starts an in-process cluster with the keys kept under
// cfg.StorePath, creating them on first use.
func NewLocalExecutor(cfg Config, logger log.Logger) (*cluster.Local, error) {
	keys, err := LoadOrCreateClusterKeys(store.NewClusterKeyFileStore(cfg.StorePath, cfg.ClusterPassphrase))
	if err != nil {
		return nil, err
	}
	return cluster.NewLocal(keys,
		cluster.WithWorkers(cfg.Workers),
		cluster.WithLocalLogger(logger),
	)
}

// LoadOrCreateClusterKeys returns the stored cluster keys, generating and
// saving a fresh set when none exist.
func LoadOrCreateClusterKeys(ks domain.ClusterKeyStore) (domain.ClusterKeys, error) {
	keys, ok, err := ks.LoadClusterKeys()
	if err != nil {
		return domain.ClusterKeys{}, fmt.Errorf("load cluster keys: %w", err)
	}
	if ok {
		return keys, nil
	}
	keys, err = crypto.GenerateClusterKeys()
	if err != nil {
		return domain.ClusterKeys{}, err
	}
	if err := ks.SaveClusterKeys(keys); err != nil {
		return domain.ClusterKeys{}, fmt.Errorf("save cluster keys: %w", err)
	}
	return keys, nil
}

// Party loads the local identity and returns a client for the configured
// cluster.
func (w *Wire) Party(ctx context.Context, passphrase string) (*party.Client, error) {
	id, err := w.Identity.LoadIdentity(passphrase)
	if err != nil {
		return nil, err
	}
	info, err := w.Executor.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("cluster info: %w", err)
	}
	return party.New(id, info), nil
}

// Close releases the executor and the store.
func (w *Wire) Close() error {
	var result *multierror.Error
	if w.Executor != nil {
		if err := w.Executor.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close executor: %w", err))
		}
	}
	if w.Store != nil {
		if err := w.Store.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close store: %w", err))
		}
	}
	return result.ErrorOrNil()
}
