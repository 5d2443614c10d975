package sinkenv

import (
	"testing"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsFromEnvDefaults(t *testing.T) {
	o, err := LoadOptionsFromEnv("DORIS_SINK_TEST_EMPTY")
	require.NoError(t, err)
	assert.True(t, o.Equal(execution.Defaults()))
}

func TestLoadOptionsFromEnv(t *testing.T) {
	t.Setenv("DORIS_SINK_CHECK_INTERVAL_MS", "2500")
	t.Setenv("DORIS_SINK_MAX_RETRIES", "0")
	t.Setenv("DORIS_SINK_BUFFER_SIZE", "2048")
	t.Setenv("DORIS_SINK_BUFFER_COUNT", "5")
	t.Setenv("DORIS_SINK_LABEL_PREFIX", "orders")
	t.Setenv("DORIS_SINK_STREAM_LOAD_PROPS", "format=csv, column_separator=|,bogus")
	t.Setenv("DORIS_SINK_ENABLE_DELETE", "false")
	t.Setenv("DORIS_SINK_ENABLE_2PC", "false")
	t.Setenv("DORIS_SINK_BATCH_MODE", "true")
	t.Setenv("DORIS_SINK_FLUSH_QUEUE_SIZE", "4")
	t.Setenv("DORIS_SINK_BUFFER_FLUSH_MAX_ROWS", "100")
	t.Setenv("DORIS_SINK_BUFFER_FLUSH_MAX_BYTES", "4096")
	t.Setenv("DORIS_SINK_BUFFER_FLUSH_INTERVAL_MS", "3000")

	o, err := LoadOptionsFromEnv("")
	require.NoError(t, err)

	assert.Equal(t, 2500, o.CheckInterval())
	assert.Equal(t, 0, o.MaxRetries())
	assert.Equal(t, 2048, o.BufferSize())
	assert.Equal(t, 5, o.BufferCount())
	assert.Equal(t, "orders", o.LabelPrefix())
	assert.Equal(t, execution.Properties{"format": "csv", "column_separator": "|"}, o.StreamLoadProp())
	assert.False(t, o.Deletable())
	assert.False(t, o.Enabled2PC())
	assert.True(t, o.EnableBatchMode())
	assert.Equal(t, 4, o.FlushQueueSize())
	assert.Equal(t, 100, o.BufferFlushMaxRows())
	assert.Equal(t, 4096, o.BufferFlushMaxBytes())
	assert.Equal(t, int64(3000), o.BufferFlushIntervalMs())
}

func TestLoadOptionsFromEnvCustomPrefix(t *testing.T) {
	t.Setenv("ORDERS_ENABLE_2PC", "true")
	t.Setenv("ORDERS_BATCH_MODE", "false")
	t.Setenv("ORDERS_LABEL_PREFIX", "o")

	o, err := LoadOptionsFromEnv("ORDERS")
	require.NoError(t, err)
	assert.True(t, o.Enabled2PC())
	assert.False(t, o.EnableBatchMode())
	assert.Equal(t, "o", o.LabelPrefix())
}

func TestLoadOptionsFromEnvErrors(t *testing.T) {
	cases := []struct {
		key, val string
		want     string
		is       error
	}{
		{"P1_MAX_RETRIES", "three", "P1_MAX_RETRIES", nil},
		{"P1_ENABLE_DELETE", "maybe", "P1_ENABLE_DELETE", nil},
		{"P1_BUFFER_FLUSH_INTERVAL_MS", "1.5", "P1_BUFFER_FLUSH_INTERVAL_MS", nil},
		{"P1_BUFFER_FLUSH_INTERVAL_MS", "999", "bufferFlushIntervalMs", execution.ErrIllegalState},
		{"P1_MAX_RETRIES", "-1", "maxRetries", execution.ErrInvalidArgument},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.val, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := LoadOptionsFromEnv("P1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}
