package tool

import (
	"context"

	"github.com/habiliai/toolserver/entity"
	"github.com/samber/lo"
)

type (
	// Func is the uniform shape of every tool: it reads the caller's
	// conversation history and a single string argument.
	Func func(ctx context.Context, history []entity.Message, arg string) (string, error)

	Entry struct {
		Name string
		Func Func
		// Usage is the line the tools banner prints for this tool. Tools
		// without usage are callable but not advertised.
		Usage string
	}

	// Registry maps tool names to entries. It is filled once at startup and
	// only read while serving, so it carries no lock.
	Registry struct {
		names   []string
		entries map[string]Entry
	}
)

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds a tool. Registering a name again replaces its function and
// usage; the name keeps the position of its first registration.
func (r *Registry) Register(name string, fn Func, usage string) {
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = Entry{
		Name:  name,
		Func:  fn,
		Usage: usage,
	}
}

func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// List returns tool names in registration order.
func (r *Registry) List() []string {
	return append([]string{}, r.names...)
}

// Entries returns the entries in registration order.
func (r *Registry) Entries() []Entry {
	return lo.Map(r.names, func(name string, _ int) Entry {
		return r.entries[name]
	})
}

// Usages returns the non-empty usage lines in registration order.
func (r *Registry) Usages() []string {
	return lo.FilterMap(r.names, func(name string, _ int) (string, bool) {
		usage := r.entries[name].Usage
		return usage, usage != ""
	})
}
