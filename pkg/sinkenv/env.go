// Package sinkenv builds execution options from environment variables.
package sinkenv

import (
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
)

// DefaultPrefix is used when LoadOptionsFromEnv gets an empty prefix.
const DefaultPrefix = "DORIS_SINK"

// LoadOptionsFromEnv reads <prefix>_* variables over BuilderDefaults.
//
//	<prefix>_CHECK_INTERVAL_MS        <prefix>_MAX_RETRIES
//	<prefix>_BUFFER_SIZE              <prefix>_BUFFER_COUNT
//	<prefix>_LABEL_PREFIX             <prefix>_STREAM_LOAD_PROPS  ("k=v,k2=v2", replaces the json defaults)
//	<prefix>_ENABLE_DELETE            <prefix>_ENABLE_2PC
//	<prefix>_BATCH_MODE               <prefix>_FLUSH_QUEUE_SIZE
//	<prefix>_BUFFER_FLUSH_MAX_ROWS    <prefix>_BUFFER_FLUSH_MAX_BYTES
//	<prefix>_BUFFER_FLUSH_INTERVAL_MS
func LoadOptionsFromEnv(prefix string) (execution.Options, error) {
	b, err := LoadBuilderFromEnv(prefix)
	if err != nil {
		return execution.Options{}, err
	}
	return b.Build()
}

// LoadBuilderFromEnv is LoadOptionsFromEnv without the final Build, so callers
// can layer further setters on top.
func LoadBuilderFromEnv(prefix string) (*execution.Builder, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	key := func(s string) string { return prefix + "_" + s }

	b := execution.BuilderDefaults()

	ints := []struct {
		name string
		set  func(int) *execution.Builder
	}{
		{"CHECK_INTERVAL_MS", b.SetCheckInterval},
		{"MAX_RETRIES", b.SetMaxRetries},
		{"BUFFER_SIZE", b.SetBufferSize},
		{"BUFFER_COUNT", b.SetBufferCount},
		{"FLUSH_QUEUE_SIZE", b.SetFlushQueueSize},
		{"BUFFER_FLUSH_MAX_ROWS", b.SetBufferFlushMaxRows},
		{"BUFFER_FLUSH_MAX_BYTES", b.SetBufferFlushMaxBytes},
	}
	for _, f := range ints {
		n, ok, err := envInt(key(f.name))
		if err != nil {
			return nil, err
		}
		if ok {
			f.set(n)
		}
	}

	if v, ok := getenv(key("LABEL_PREFIX")); ok {
		b.SetLabelPrefix(v)
	}
	if v, ok := getenv(key("STREAM_LOAD_PROPS")); ok {
		b.SetStreamLoadProp(execution.Properties(parseKV(v)))
	}

	del, ok, err := envBool(key("ENABLE_DELETE"))
	if err != nil {
		return nil, err
	}
	if ok {
		b.SetDeletable(del)
	}
	twoPC, ok, err := envBool(key("ENABLE_2PC"))
	if err != nil {
		return nil, err
	}
	if ok && !twoPC {
		b.Disable2PC()
	}
	batch, ok, err := envBool(key("BATCH_MODE"))
	if err != nil {
		return nil, err
	}
	if ok && batch {
		b.EnableBatchMode()
	}

	ms, ok, err := envInt64(key("BUFFER_FLUSH_INTERVAL_MS"))
	if err != nil {
		return nil, err
	}
	if ok {
		b.SetBufferFlushIntervalMs(ms)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	return b, nil
}
