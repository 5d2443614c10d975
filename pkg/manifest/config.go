package manifest

import (
	"fmt"
	"strings"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
)

// Config is the top-level manifest: one or more [[sink]] blocks.
type Config struct {
	Sinks []Sink `toml:"sink" yaml:"sink"`
}

// Validate checks every sink and builds its execution options so that a
// misconfigured option fails the load, not the job.
func (c *Config) Validate() error {
	if len(c.Sinks) == 0 {
		return fmt.Errorf("at least one sink required")
	}
	names := map[string]struct{}{}
	for i := range c.Sinks {
		s := &c.Sinks[i]
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("sink %d: name required", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("sink %d: duplicate name %q", i, name)
		}
		names[name] = struct{}{}

		switch s.Type {
		case SinkTypeDoris:
			if s.Doris == nil {
				return fmt.Errorf("sink %d (%s): doris block required for type 'doris'", i, name)
			}
			if err := s.Doris.validate(); err != nil {
				return fmt.Errorf("sink %d (%s): %w", i, name, err)
			}
		default:
			return fmt.Errorf("sink %d (%s): unknown type %q", i, name, s.Type)
		}
	}
	return nil
}

// ExecutionOptions builds the options of every sink, keyed by sink name.
func (c *Config) ExecutionOptions() (map[string]execution.Options, error) {
	out := make(map[string]execution.Options, len(c.Sinks))
	for i := range c.Sinks {
		s := &c.Sinks[i]
		if s.Doris == nil {
			return nil, fmt.Errorf("sink %d (%s): doris block required", i, s.Name)
		}
		opts, err := s.Doris.Execution.Options()
		if err != nil {
			return nil, fmt.Errorf("sink %d (%s): %w", i, s.Name, err)
		}
		out[strings.TrimSpace(s.Name)] = opts
	}
	return out, nil
}
