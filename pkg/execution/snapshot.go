package execution

import (
	"fmt"

	"github.com/joeydtaylor/steeze-doris/pkg/codec"
)

// SnapshotVersion is the layout version written by MarshalJSON.
const SnapshotVersion = 1

// snapshot is the persisted layout. Keys are stable; add fields, never rename.
type snapshot struct {
	Version               int               `json:"version"`
	CheckInterval         int               `json:"checkInterval"`
	MaxRetries            int               `json:"maxRetries"`
	BufferSize            int               `json:"bufferSize"`
	BufferCount           int               `json:"bufferCount"`
	LabelPrefix           string            `json:"labelPrefix"`
	StreamLoadProp        map[string]string `json:"streamLoadProp"`
	EnableDelete          bool              `json:"enableDelete"`
	Enable2PC             bool              `json:"enable2PC"`
	EnableBatchMode       bool              `json:"enableBatchMode"`
	FlushQueueSize        int               `json:"flushQueueSize"`
	BufferFlushMaxRows    int               `json:"bufferFlushMaxRows"`
	BufferFlushMaxBytes   int               `json:"bufferFlushMaxBytes"`
	BufferFlushIntervalMs int64             `json:"bufferFlushIntervalMs"`
}

func snapshotOf(o Options, version int) snapshot {
	return snapshot{
		Version:               version,
		CheckInterval:         o.checkInterval,
		MaxRetries:            o.maxRetries,
		BufferSize:            o.bufferSize,
		BufferCount:           o.bufferCount,
		LabelPrefix:           o.labelPrefix,
		StreamLoadProp:        o.streamLoadProp.Clone(),
		EnableDelete:          o.enableDelete,
		Enable2PC:             o.enable2PC,
		EnableBatchMode:       o.enableBatchMode,
		FlushQueueSize:        o.flushQueueSize,
		BufferFlushMaxRows:    o.bufferFlushMaxRows,
		BufferFlushMaxBytes:   o.bufferFlushMaxBytes,
		BufferFlushIntervalMs: o.bufferFlushIntervalMs,
	}
}

func (o Options) MarshalJSON() ([]byte, error) {
	return codec.JSONStrict.Marshal(snapshotOf(o, SnapshotVersion))
}

// UnmarshalJSON restores a snapshot through the Builder, so a restored value
// passes the same checks as a freshly built one. Keys missing from the
// snapshot, or null, keep the NewBuilder defaults. The version is required.
func (o *Options) UnmarshalJSON(data []byte) error {
	s := snapshotOf(NewBuilder().opts, 0)
	if err := codec.JSONStrict.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("execution snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("execution snapshot: unsupported version %d", s.Version)
	}

	b := NewBuilder().
		SetCheckInterval(s.CheckInterval).
		SetMaxRetries(s.MaxRetries).
		SetBufferSize(s.BufferSize).
		SetBufferCount(s.BufferCount).
		SetLabelPrefix(s.LabelPrefix).
		SetStreamLoadProp(s.StreamLoadProp).
		SetDeletable(s.EnableDelete).
		SetFlushQueueSize(s.FlushQueueSize).
		SetBufferFlushMaxRows(s.BufferFlushMaxRows).
		SetBufferFlushMaxBytes(s.BufferFlushMaxBytes).
		SetBufferFlushIntervalMs(s.BufferFlushIntervalMs)
	if !s.Enable2PC {
		b.Disable2PC()
	}
	if s.EnableBatchMode {
		b.EnableBatchMode()
	}

	restored, err := b.Build()
	if err != nil {
		return fmt.Errorf("execution snapshot: %w", err)
	}
	*o = restored
	return nil
}

// Encode serializes o in the snapshot layout.
func Encode(o Options) ([]byte, error) { return o.MarshalJSON() }

// Decode restores options written by Encode.
func Decode(data []byte) (Options, error) {
	var o Options
	if err := o.UnmarshalJSON(data); err != nil {
		return Options{}, err
	}
	return o, nil
}
