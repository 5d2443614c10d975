package serverfx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/joeydtaylor/steeze-doris/pkg/checkpoint"
	"github.com/joeydtaylor/steeze-doris/pkg/core"
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/joeydtaylor/steeze-doris/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-doris/pkg/transport/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func manifestWith(t *testing.T, retries string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.toml")
	doc := `
[[sink]]
type = "doris"
name = "orders"
[sink.doris]
fenodes = ["fe:8030"]
table = "shop.orders"
[sink.doris.execution]
max_retries = ` + retries + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func testOptions() Options {
	o := DefaultOptions()
	o.ManifestEnv = "TEST_DORIS_SINK_MANIFEST"
	o.CheckpointDirEnv = "TEST_CHECKPOINT_DIR"
	return o
}

func TestRegistryModuleBuildsAndCheckpoints(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	ckpt := t.TempDir()
	t.Setenv("TEST_CHECKPOINT_DIR", ckpt)

	obsCore, logs := observer.New(zapcore.InfoLevel)
	observed := zap.New(obsCore)

	for _, retries := range []string{"2", "2", "4"} {
		t.Setenv("TEST_DORIS_SINK_MANIFEST", manifestWith(t, retries))

		var reg *core.Registry
		app := fxtest.New(t,
			RegistryModule(testOptions()),
			fx.Decorate(func(*zap.Logger) *zap.Logger { return observed }),
			fx.Populate(&reg),
		)
		app.RequireStart()

		o, ok := reg.Get("orders")
		require.True(t, ok)
		assert.Equal(t, retries, strconv.Itoa(o.MaxRetries()))

		app.RequireStop()
	}

	changed := logs.FilterMessage("sink options changed since last checkpoint").All()
	require.Len(t, changed, 1)
	assert.Equal(t, "orders", changed[0].ContextMap()["sink"])
	assert.Equal(t, 3, logs.FilterMessage("checkpoints recorded").Len())

	store, err := checkpoint.Open(ckpt)
	require.NoError(t, err)
	defer store.Close()

	saved, err := store.Load("orders")
	require.NoError(t, err)
	assert.Equal(t, 4, saved.MaxRetries())
	assert.Equal(t, execution.Defaults().StreamLoadProp(), saved.StreamLoadProp())
}

func TestRegistryModuleFailsOnRejectedOption(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("TEST_DORIS_SINK_MANIFEST", manifestWith(t, "-1"))
	t.Setenv("TEST_CHECKPOINT_DIR", "")

	var reg *core.Registry
	app := fx.New(RegistryModule(testOptions()), fx.Populate(&reg), fx.NopLogger)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "invalid argument: maxRetries=-1")
}

type failingStore struct {
	closed bool
}

func (s *failingStore) Load(string) (execution.Options, error) {
	return execution.Options{}, checkpoint.ErrNotFound
}
func (s *failingStore) Save(string, execution.Options) error { return errors.New("disk full") }
func (s *failingStore) Close() error                          { s.closed = true; return nil }

func TestRecordCheckpointsClosesStoreOnSaveError(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("TEST_DORIS_SINK_MANIFEST", manifestWith(t, "2"))
	t.Setenv("TEST_CHECKPOINT_DIR", t.TempDir())

	fs := &failingStore{}
	orig := openStore
	openStore = func(string) (snapshotStore, error) { return fs, nil }
	t.Cleanup(func() { openStore = orig })

	app := fx.New(RegistryModule(testOptions()), fx.NopLogger)
	require.Error(t, app.Err())
	assert.Contains(t, app.Err().Error(), "disk full")
	assert.True(t, fs.closed)
}

func TestRouterSkipsConfiguredMetricsPaths(t *testing.T) {
	cfg, err := core.LoadConfig(manifestWith(t, "2"))
	require.NoError(t, err)
	reg, err := core.NewRegistry(cfg)
	require.NoError(t, err)

	opts := testOptions()
	opts.MetricsSkipPaths = []string{"/sinks"}
	h := provideRouter(routerDeps{
		Opts:     opts,
		Metrics:  metrics.ProvideMetrics(),
		R:        httpx.NewChi(),
		Registry: reg,
	})

	for _, path := range []string{"/sinks", "/sinks/orders/options"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `uri="/sinks/{name}/options"`)
	assert.NotContains(t, body, `uri="/sinks"`)
}
