package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joeydtaylor/steeze-doris/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-doris/pkg/checkpoint"
	"github.com/joeydtaylor/steeze-doris/pkg/core"
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/joeydtaylor/steeze-doris/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-doris/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-doris/pkg/transport/httpx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options allow per-service env keys/defaults without code duplication.
type Options struct {
	Service          string // for logs only
	ManifestEnv      string // e.g. "DORIS_SINK_MANIFEST"
	DefaultManifest  string // e.g. "manifest.toml"
	ListenAddrEnv    string // e.g. "SERVER_LISTEN_ADDRESS"
	DefaultListen    string // e.g. ":4000"
	TLSCertEnv       string // e.g. "SSL_SERVER_CERTIFICATE"
	TLSKeyEnv        string // e.g. "SSL_SERVER_KEY"
	CheckpointDirEnv string // e.g. "CHECKPOINT_DIR"; unset disables snapshots

	MetricsSkipPaths []string // extra paths left out of request metrics
}

// DefaultOptions returns the env keys used by cmd/dorisopts.
func DefaultOptions() Options {
	return Options{
		Service:          "dorisopts",
		ManifestEnv:      "DORIS_SINK_MANIFEST",
		DefaultManifest:  "manifest.toml",
		ListenAddrEnv:    "SERVER_LISTEN_ADDRESS",
		DefaultListen:    ":4000",
		TLSCertEnv:       "SSL_SERVER_CERTIFICATE",
		TLSKeyEnv:        "SSL_SERVER_KEY",
		CheckpointDirEnv: "CHECKPOINT_DIR",
	}
}

// ---- Registry ----

type registryDeps struct {
	fx.In
	Opts Options
	Log  *zap.Logger
}

// provideRegistry loads the manifest and builds every sink's options. Any
// rejected option aborts startup.
func provideRegistry(d registryDeps) (*core.Registry, error) {
	path := envOr(d.Opts.ManifestEnv, d.Opts.DefaultManifest)
	cfg, err := core.LoadConfig(path)
	if err != nil {
		metrics.ObserveBuildError(err)
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	reg, err := core.NewRegistry(cfg)
	if err != nil {
		metrics.ObserveBuildError(err)
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	for _, name := range reg.Names() {
		o, _ := reg.Get(name)
		metrics.ObserveOptions(name, o)
		d.Log.Info("sink options", zap.String("sink", name), zap.Object("options", o))
		for _, w := range o.Warnings() {
			d.Log.Warn("sink option will not run", zap.String("sink", name), zap.String("warning", w))
		}
	}
	return reg, nil
}

// ---- Checkpoints ----

type snapshotStore interface {
	Load(name string) (execution.Options, error)
	Save(name string, o execution.Options) error
	Close() error
}

var openStore = func(dir string) (snapshotStore, error) {
	s, err := checkpoint.Open(dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type checkpointDeps struct {
	fx.In
	Opts     Options
	Log      *zap.Logger
	Registry *core.Registry
}

// recordCheckpoints saves each sink's snapshot and warns when it differs from
// the one recorded by the previous run.
func recordCheckpoints(lc fx.Lifecycle, d checkpointDeps) error {
	dir := os.Getenv(d.Opts.CheckpointDirEnv)
	if dir == "" {
		return nil
	}
	store, err := openStore(dir)
	if err != nil {
		return err
	}
	if err := saveCheckpoints(store, d.Registry, d.Log); err != nil {
		_ = store.Close()
		return fmt.Errorf("checkpoint %s: %w", dir, err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return store.Close() }})
	d.Log.Info("checkpoints recorded", zap.String("dir", dir), zap.Int("sinks", len(d.Registry.Names())))
	return nil
}

func saveCheckpoints(store snapshotStore, reg *core.Registry, log *zap.Logger) error {
	for _, name := range reg.Names() {
		o, _ := reg.Get(name)
		prev, err := store.Load(name)
		switch {
		case errors.Is(err, checkpoint.ErrNotFound):
		case err != nil:
			log.Warn("checkpoint unreadable, overwriting", zap.String("sink", name), zap.Error(err))
		case !prev.Equal(o):
			log.Warn("sink options changed since last checkpoint",
				zap.String("sink", name),
				zap.Object("previous", prev),
				zap.Object("current", o),
			)
		}
		if err := store.Save(name, o); err != nil {
			return err
		}
	}
	return nil
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Opts     Options
	LogMW    *logger.Middleware
	Metrics  http.Handler `name:"metrics"`
	R        httpx.Router
	Registry *core.Registry
}

func provideRouter(d routerDeps) http.Handler {
	metrics.AddMetricsSkipPaths(d.Opts.MetricsSkipPaths...)
	return core.BuildRouter(core.BuildDeps{
		LogMW:    d.LogMW,
		Metrics:  d.Metrics,
		Router:   d.R,
		Registry: d.Registry,
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Opts.ListenAddrEnv, d.Opts.DefaultListen)
	cert := os.Getenv(d.Opts.TLSCertEnv)
	key := os.Getenv(d.Opts.TLSKeyEnv)

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}
			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Opts.Service),
				zap.String("addr", addr),
			)
			go func() {
				srv.TLSConfig = nil
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

// Module wires the introspection server. Without the HTTP lifecycle (see
// RegistryModule) it can be embedded by a sink that only needs the options.
func Module(opts Options) fx.Option {
	return fx.Options(
		RegistryModule(opts),
		fx.Provide(httpx.NewChi),
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),
		fx.Invoke(registerHooks),
	)
}

// RegistryModule provides logging, metrics and the *core.Registry, and records
// checkpoints when configured.
func RegistryModule(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		bundlefx.Module,
		fx.Provide(provideRegistry),
		fx.Invoke(recordCheckpoints),
	)
}

// ---- helpers ----

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
