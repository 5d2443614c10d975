package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "manifest.yaml", `
sink:
  - type: doris
    name: metrics
    doris:
      fenodes: ["fe:8030"]
      table: obs.metrics
      execution:
        check_interval_ms: 2000
        enable_delete: false
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	reg, err := NewRegistry(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"metrics"}, reg.Names())

	o, ok := reg.Get("metrics")
	require.True(t, ok)
	assert.Equal(t, 2000, o.CheckInterval())
	assert.False(t, o.Deletable())
	assert.Equal(t, "json", o.StreamLoadProp()["format"])
}

func TestLoadConfigTOMLFailsOnRejectedOption(t *testing.T) {
	path := writeFile(t, "manifest.toml", `
[[sink]]
type = "doris"
name = "orders"
[sink.doris]
fenodes = ["fe:8030"]
table = "shop.orders"
[sink.doris.execution]
buffer_flush_interval_ms = 100
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, execution.ErrIllegalState)
	assert.Contains(t, err.Error(), "sink 0 (orders)")
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "manifest.ini", "x=1"))
	assert.ErrorContains(t, err, "unsupported file extension")

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "manifest.toml", "[[sink]]\ntype = \"doris\"\nname = \"x\"\nwat = 1\n"))
	assert.ErrorContains(t, err, "toml decode")
}
