// Package execution holds the tunables of a Doris stream load sink: batching,
// retry, delete handling, two-phase commit and the batch-mode flush queue.
//
// Options are assembled with a Builder and are immutable once built:
//
//	opts, err := execution.BuilderDefaults().
//	    SetLabelPrefix("orders").
//	    SetMaxRetries(3).
//	    EnableBatchMode().
//	    SetBufferFlushIntervalMs(5000).
//	    Build()
//
// The sink reads every getter once at startup and treats the values as constant
// for the lifetime of the job.
package execution

import (
	"fmt"
	"maps"
	"sort"

	"go.uber.org/zap/zapcore"
)

const (
	DefaultCheckInterval         = 10000
	DefaultMaxRetries            = 1
	DefaultBufferSize            = 1024 * 1024
	DefaultBufferCount           = 3
	DefaultFlushQueueSize        = 2
	DefaultBufferFlushMaxRows    = 50000
	DefaultBufferFlushMaxBytes   = 10 * 1024 * 1024
	DefaultBufferFlushIntervalMs = int64(10 * 1000)

	// MinBufferFlushIntervalMs is the floor for the batch-mode flush interval.
	MinBufferFlushIntervalMs = int64(1000)
)

// Properties are stream load protocol properties (format, column_separator, ...),
// forwarded verbatim as load request headers.
type Properties map[string]string

// Clone returns an independent copy. A nil receiver yields an empty map.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	maps.Copy(out, p)
	return out
}

// Keys returns the property names in sorted order.
func (p Properties) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Options is the immutable execution configuration of one sink.
// The zero value is not meaningful; obtain one from a Builder or Defaults.
type Options struct {
	checkInterval  int
	maxRetries     int
	bufferSize     int
	bufferCount    int
	labelPrefix    string
	streamLoadProp Properties
	enableDelete   bool
	enable2PC      bool

	// batch mode
	enableBatchMode       bool
	flushQueueSize        int
	bufferFlushMaxRows    int
	bufferFlushMaxBytes   int
	bufferFlushIntervalMs int64
}

// Defaults returns options built from BuilderDefaults.
func Defaults() Options {
	return BuilderDefaults().MustBuild()
}

// CheckInterval is the polling interval, in ms, for in-flight load job status.
func (o Options) CheckInterval() int { return o.checkInterval }

// MaxRetries is the retry budget for a failed flush or commit.
func (o Options) MaxRetries() int { return o.maxRetries }

// BufferSize is the size in bytes of each write buffer (legacy mode).
func (o Options) BufferSize() int { return o.bufferSize }

// BufferCount is the number of buffers in rotation (legacy mode).
func (o Options) BufferCount() int { return o.bufferCount }

// LabelPrefix prefixes generated load labels. May be empty.
func (o Options) LabelPrefix() string { return o.labelPrefix }

// StreamLoadProp returns a copy of the stream load properties.
func (o Options) StreamLoadProp() Properties { return o.streamLoadProp.Clone() }

// Deletable reports whether delete-marked rows are forwarded as deletions.
func (o Options) Deletable() bool { return o.enableDelete }

// Enabled2PC reports whether loads are pre-committed and committed on checkpoint.
func (o Options) Enabled2PC() bool { return o.enable2PC }

// EnableBatchMode reports whether the batch flush queue replaces per-checkpoint flushing.
func (o Options) EnableBatchMode() bool { return o.enableBatchMode }

func (o Options) FlushQueueSize() int { return o.flushQueueSize }

func (o Options) BufferFlushMaxRows() int { return o.bufferFlushMaxRows }

func (o Options) BufferFlushMaxBytes() int { return o.bufferFlushMaxBytes }

func (o Options) BufferFlushIntervalMs() int64 { return o.bufferFlushIntervalMs }

// Equal reports value equality. Nil and empty property sets compare equal.
func (o Options) Equal(other Options) bool {
	return o.checkInterval == other.checkInterval &&
		o.maxRetries == other.maxRetries &&
		o.bufferSize == other.bufferSize &&
		o.bufferCount == other.bufferCount &&
		o.labelPrefix == other.labelPrefix &&
		maps.Equal(o.streamLoadProp, other.streamLoadProp) &&
		o.enableDelete == other.enableDelete &&
		o.enable2PC == other.enable2PC &&
		o.enableBatchMode == other.enableBatchMode &&
		o.flushQueueSize == other.flushQueueSize &&
		o.bufferFlushMaxRows == other.bufferFlushMaxRows &&
		o.bufferFlushMaxBytes == other.bufferFlushMaxBytes &&
		o.bufferFlushIntervalMs == other.bufferFlushIntervalMs
}

// Field is one named option value.
type Field struct {
	Key   string
	Value any // int | int64 | bool | string | Properties
}

// Fields lists every option in a stable order, keyed like the snapshot layout.
func (o Options) Fields() []Field {
	return []Field{
		{"checkInterval", o.checkInterval},
		{"maxRetries", o.maxRetries},
		{"bufferSize", o.bufferSize},
		{"bufferCount", o.bufferCount},
		{"labelPrefix", o.labelPrefix},
		{"streamLoadProp", o.StreamLoadProp()},
		{"enableDelete", o.enableDelete},
		{"enable2PC", o.enable2PC},
		{"enableBatchMode", o.enableBatchMode},
		{"flushQueueSize", o.flushQueueSize},
		{"bufferFlushMaxRows", o.bufferFlushMaxRows},
		{"bufferFlushMaxBytes", o.bufferFlushMaxBytes},
		{"bufferFlushIntervalMs", o.bufferFlushIntervalMs},
	}
}

// Warnings lists values Build accepts but a sink cannot run with.
// Batch-mode thresholds are only checked when batch mode is enabled.
func (o Options) Warnings() []string {
	var out []string
	positive := func(name string, v int) {
		if v <= 0 {
			out = append(out, fmt.Sprintf("%s must be > 0, got %d", name, v))
		}
	}
	positive("checkInterval", o.checkInterval)
	if o.enableBatchMode {
		positive("flushQueueSize", o.flushQueueSize)
		positive("bufferFlushMaxRows", o.bufferFlushMaxRows)
		positive("bufferFlushMaxBytes", o.bufferFlushMaxBytes)
	} else {
		positive("bufferSize", o.bufferSize)
		positive("bufferCount", o.bufferCount)
	}
	return out
}

// MarshalLogObject lets Options be logged with zap.Object.
func (o Options) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, f := range o.Fields() {
		switch v := f.Value.(type) {
		case int:
			enc.AddInt(f.Key, v)
		case int64:
			enc.AddInt64(f.Key, v)
		case bool:
			enc.AddBool(f.Key, v)
		case string:
			enc.AddString(f.Key, v)
		case Properties:
			if err := enc.AddObject(f.Key, props(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

type props Properties

func (p props) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, k := range Properties(p).Keys() {
		enc.AddString(k, p[k])
	}
	return nil
}
