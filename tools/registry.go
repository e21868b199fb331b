package tools

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Registry holds a set of tools by name, preserving registration order for
// prompt assembly.
type Registry struct {
	tools []ITool
	index map[string]ITool
}

func NewRegistry(list ...ITool) *Registry {
	r := &Registry{index: make(map[string]ITool)}
	for _, t := range list {
		r.Register(t)
	}
	return r
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t ITool) {
	if _, ok := r.index[t.Name()]; !ok {
		r.tools = append(r.tools, t)
	} else {
		for i, existing := range r.tools {
			if existing.Name() == t.Name() {
				r.tools[i] = t
				break
			}
		}
	}
	r.index[t.Name()] = t
}

func (r *Registry) Get(name string) (ITool, bool) {
	t, ok := r.index[name]
	return t, ok
}

func (r *Registry) List() []ITool {
	return r.tools
}

// Call dispatches a raw input to a registered tool by name.
func (r *Registry) Call(ctx context.Context, name, input string) (string, error) {
	t, ok := r.index[name]
	if !ok {
		return "", errors.Errorf("unknown tool: %s", name)
	}
	return t.Call(ctx, input)
}

// Descriptions returns the markdown block advertising the registered tools.
func (r *Registry) Descriptions() string {
	return GetDescriptions(r.tools...)
}
