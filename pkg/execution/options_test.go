package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestEqualTreatsNilAndEmptyPropsAlike(t *testing.T) {
	a := NewBuilder().SetStreamLoadProp(nil).MustBuild()
	b := NewBuilder().SetStreamLoadProp(Properties{}).MustBuild()
	assert.True(t, a.Equal(b))

	c := NewBuilder().SetStreamLoadProp(Properties{"format": "csv"}).MustBuild()
	assert.False(t, a.Equal(c))
}

func TestFieldsCoverEveryOption(t *testing.T) {
	o := Defaults()
	keys := make([]string, 0)
	for _, f := range o.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		"checkInterval", "maxRetries", "bufferSize", "bufferCount", "labelPrefix",
		"streamLoadProp", "enableDelete", "enable2PC", "enableBatchMode",
		"flushQueueSize", "bufferFlushMaxRows", "bufferFlushMaxBytes", "bufferFlushIntervalMs",
	}, keys)
}

func TestWarnings(t *testing.T) {
	assert.Empty(t, Defaults().Warnings())

	legacy := NewBuilder().SetBufferSize(0).SetBufferCount(-1).SetFlushQueueSize(0).MustBuild()
	assert.Equal(t, []string{
		"bufferSize must be > 0, got 0",
		"bufferCount must be > 0, got -1",
	}, legacy.Warnings())

	batch := NewBuilder().EnableBatchMode().SetBufferSize(0).SetBufferFlushMaxRows(0).MustBuild()
	assert.Equal(t, []string{"bufferFlushMaxRows must be > 0, got 0"}, batch.Warnings())

	assert.Equal(t, []string{"checkInterval must be > 0, got 0"},
		NewBuilder().SetCheckInterval(0).MustBuild().Warnings())
}

func TestMarshalLogObject(t *testing.T) {
	o := BuilderDefaults().SetLabelPrefix("orders").Disable2PC().MustBuild()

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, o.MarshalLogObject(enc))

	assert.Equal(t, "orders", enc.Fields["labelPrefix"])
	assert.Equal(t, false, enc.Fields["enable2PC"])
	assert.Equal(t, 3, enc.Fields["bufferCount"])
	assert.Equal(t, int64(10000), enc.Fields["bufferFlushIntervalMs"])
	assert.Equal(t, map[string]interface{}{"format": "json", "read_json_by_line": "true"}, enc.Fields["streamLoadProp"])
}

func TestPropertiesKeysSorted(t *testing.T) {
	p := Properties{"b": "2", "a": "1", "c": "3"}
	assert.Equal(t, []string{"a", "b", "c"}, p.Keys())
	assert.Empty(t, Properties(nil).Keys())
	assert.NotNil(t, Properties(nil).Clone())
}
