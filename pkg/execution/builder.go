package execution

// Builder accumulates option overrides on top of the defaults.
//
// A setter that rejects its value records the error at the call; every later
// call in the chain is ignored and Build returns that error.
type Builder struct {
	opts Options
	err  error
}

// NewBuilder returns a Builder holding the plain defaults (no stream load properties).
func NewBuilder() *Builder {
	return &Builder{opts: Options{
		checkInterval:         DefaultCheckInterval,
		maxRetries:            DefaultMaxRetries,
		bufferSize:            DefaultBufferSize,
		bufferCount:           DefaultBufferCount,
		labelPrefix:           "",
		streamLoadProp:        Properties{},
		enableDelete:          true,
		enable2PC:             true,
		enableBatchMode:       false,
		flushQueueSize:        DefaultFlushQueueSize,
		bufferFlushMaxRows:    DefaultBufferFlushMaxRows,
		bufferFlushMaxBytes:   DefaultBufferFlushMaxBytes,
		bufferFlushIntervalMs: DefaultBufferFlushIntervalMs,
	}}
}

// BuilderDefaults returns a Builder seeded with line-delimited JSON stream load properties.
func BuilderDefaults() *Builder {
	return NewBuilder().SetStreamLoadProp(Properties{
		"format":            "json",
		"read_json_by_line": "true",
	})
}

// Err returns the error recorded by a rejected setter, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) set(fn func(o *Options)) *Builder {
	if b.err == nil {
		fn(&b.opts)
	}
	return b
}

func (b *Builder) SetCheckInterval(ms int) *Builder {
	return b.set(func(o *Options) { o.checkInterval = ms })
}

func (b *Builder) SetMaxRetries(n int) *Builder {
	return b.set(func(o *Options) { o.maxRetries = n })
}

func (b *Builder) SetBufferSize(bytes int) *Builder {
	return b.set(func(o *Options) { o.bufferSize = bytes })
}

func (b *Builder) SetBufferCount(n int) *Builder {
	return b.set(func(o *Options) { o.bufferCount = n })
}

func (b *Builder) SetLabelPrefix(prefix string) *Builder {
	return b.set(func(o *Options) { o.labelPrefix = prefix })
}

// SetStreamLoadProp replaces the stream load properties. The map is copied at Build.
func (b *Builder) SetStreamLoadProp(p Properties) *Builder {
	return b.set(func(o *Options) { o.streamLoadProp = p })
}

func (b *Builder) SetDeletable(enable bool) *Builder {
	return b.set(func(o *Options) { o.enableDelete = enable })
}

// Disable2PC turns two-phase commit off. There is no way back on this builder.
func (b *Builder) Disable2PC() *Builder {
	return b.set(func(o *Options) { o.enable2PC = false })
}

// EnableBatchMode switches the sink to the batch flush queue. There is no way back on this builder.
func (b *Builder) EnableBatchMode() *Builder {
	return b.set(func(o *Options) { o.enableBatchMode = true })
}

func (b *Builder) SetFlushQueueSize(n int) *Builder {
	return b.set(func(o *Options) { o.flushQueueSize = n })
}

// SetBufferFlushIntervalMs sets the batch-mode flush interval. Values below
// MinBufferFlushIntervalMs fail immediately with ErrIllegalState.
func (b *Builder) SetBufferFlushIntervalMs(ms int64) *Builder {
	if b.err != nil {
		return b
	}
	if ms < MinBufferFlushIntervalMs {
		b.err = &OptionError{
			Kind:   ErrIllegalState,
			Option: "bufferFlushIntervalMs",
			Value:  ms,
			Reason: "must be greater than or equal to 1 second",
		}
		return b
	}
	b.opts.bufferFlushIntervalMs = ms
	return b
}

func (b *Builder) SetBufferFlushMaxRows(n int) *Builder {
	return b.set(func(o *Options) { o.bufferFlushMaxRows = n })
}

func (b *Builder) SetBufferFlushMaxBytes(bytes int) *Builder {
	return b.set(func(o *Options) { o.bufferFlushMaxBytes = bytes })
}

// Build validates the accumulated values and returns an independent snapshot.
// The builder stays usable; later Build calls reflect later setter calls.
func (b *Builder) Build() (Options, error) {
	if b.err != nil {
		return Options{}, b.err
	}
	if b.opts.maxRetries < 0 {
		return Options{}, &OptionError{
			Kind:   ErrInvalidArgument,
			Option: "maxRetries",
			Value:  b.opts.maxRetries,
			Reason: "must be >= 0",
		}
	}
	out := b.opts
	out.streamLoadProp = b.opts.streamLoadProp.Clone()
	return out, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() Options {
	o, err := b.Build()
	if err != nil {
		panic(err)
	}
	return o
}
