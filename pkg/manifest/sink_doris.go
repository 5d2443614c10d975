package manifest

import (
	"fmt"
	"net"
	"strings"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
)

// DorisSink identifies the target table and carries its execution tunables.
type DorisSink struct {
	FENodes   []string   `toml:"fenodes" yaml:"fenodes"` // e.g., ["127.0.0.1:8030"]
	Table     string     `toml:"table" yaml:"table"`     // "db.table"
	Execution *Execution `toml:"execution" yaml:"execution"`
}

// Execution mirrors the execution.Builder setters. Unset fields keep the defaults.
type Execution struct {
	CheckIntervalMS *int `toml:"check_interval_ms" yaml:"check_interval_ms"` // default: 10000
	MaxRetries      *int `toml:"max_retries" yaml:"max_retries"`             // default: 1
	BufferSize      *int `toml:"buffer_size" yaml:"buffer_size"`             // default: 1 MiB
	BufferCount     *int `toml:"buffer_count" yaml:"buffer_count"`           // default: 3

	LabelPrefix string            `toml:"label_prefix" yaml:"label_prefix"`
	StreamLoad  map[string]string `toml:"stream_load" yaml:"stream_load"` // absent: format=json, read_json_by_line=true

	EnableDelete *bool `toml:"enable_delete" yaml:"enable_delete"` // default: true
	Enable2PC    *bool `toml:"enable_2pc" yaml:"enable_2pc"`       // default: true
	BatchMode    bool  `toml:"batch_mode" yaml:"batch_mode"`

	FlushQueueSize        *int   `toml:"flush_queue_size" yaml:"flush_queue_size"`                 // default: 2
	BufferFlushMaxRows    *int   `toml:"buffer_flush_max_rows" yaml:"buffer_flush_max_rows"`       // default: 50000
	BufferFlushMaxBytes   *int   `toml:"buffer_flush_max_bytes" yaml:"buffer_flush_max_bytes"`     // default: 10 MiB
	BufferFlushIntervalMS *int64 `toml:"buffer_flush_interval_ms" yaml:"buffer_flush_interval_ms"` // default: 10000, min 1000
}

func (d *DorisSink) validate() error {
	if len(d.FENodes) == 0 {
		return fmt.Errorf("doris.fenodes required")
	}
	for _, n := range d.FENodes {
		if _, port, err := net.SplitHostPort(strings.TrimSpace(n)); err != nil || port == "" {
			return fmt.Errorf("doris.fenodes: %q must be host:port", n)
		}
	}
	db, tbl, ok := strings.Cut(strings.TrimSpace(d.Table), ".")
	if !ok || db == "" || tbl == "" {
		return fmt.Errorf("doris.table %q must be db.table", d.Table)
	}
	if _, err := d.Execution.Options(); err != nil {
		return fmt.Errorf("doris.execution: %w", err)
	}
	return nil
}

// Options applies e to a builder and builds. A nil Execution yields execution.Defaults().
func (e *Execution) Options() (execution.Options, error) {
	return e.Builder().Build()
}

// Builder returns the builder e describes, without building it.
func (e *Execution) Builder() *execution.Builder {
	b := execution.BuilderDefaults()
	if e == nil {
		return b
	}
	if e.StreamLoad != nil {
		b.SetStreamLoadProp(execution.Properties(e.StreamLoad))
	}
	if e.CheckIntervalMS != nil {
		b.SetCheckInterval(*e.CheckIntervalMS)
	}
	if e.MaxRetries != nil {
		b.SetMaxRetries(*e.MaxRetries)
	}
	if e.BufferSize != nil {
		b.SetBufferSize(*e.BufferSize)
	}
	if e.BufferCount != nil {
		b.SetBufferCount(*e.BufferCount)
	}
	if e.LabelPrefix != "" {
		b.SetLabelPrefix(e.LabelPrefix)
	}
	if e.EnableDelete != nil {
		b.SetDeletable(*e.EnableDelete)
	}
	if e.Enable2PC != nil && !*e.Enable2PC {
		b.Disable2PC()
	}
	if e.BatchMode {
		b.EnableBatchMode()
	}
	if e.FlushQueueSize != nil {
		b.SetFlushQueueSize(*e.FlushQueueSize)
	}
	if e.BufferFlushMaxRows != nil {
		b.SetBufferFlushMaxRows(*e.BufferFlushMaxRows)
	}
	if e.BufferFlushMaxBytes != nil {
		b.SetBufferFlushMaxBytes(*e.BufferFlushMaxBytes)
	}
	if e.BufferFlushIntervalMS != nil {
		b.SetBufferFlushIntervalMs(*e.BufferFlushIntervalMS)
	}
	return b
}
