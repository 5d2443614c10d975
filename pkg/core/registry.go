package core

import (
	"sort"

	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	manifest "github.com/joeydtaylor/steeze-doris/pkg/manifest"
)

// Registry is the read-only set of built execution options, keyed by sink name.
type Registry struct {
	byName map[string]execution.Options
	names  []string
}

// NewRegistry builds the options of every sink in cfg.
func NewRegistry(cfg manifest.Config) (*Registry, error) {
	opts, err := cfg.ExecutionOptions()
	if err != nil {
		return nil, err
	}
	r := &Registry{byName: opts, names: make([]string, 0, len(opts))}
	for n := range opts {
		r.names = append(r.names, n)
	}
	sort.Strings(r.names)
	return r, nil
}

// Names returns sink names in sorted order.
func (r *Registry) Names() []string { return append([]string(nil), r.names...) }

func (r *Registry) Get(name string) (execution.Options, bool) {
	o, ok := r.byName[name]
	return o, ok
}
