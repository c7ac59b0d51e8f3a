// Package datasource supplies the row sets behind each list view.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"hmis/m/internal/listing"
)

// ErrUnknownList is returned for list names that are not registered.
var ErrUnknownList = errors.New("unknown list")

// Source returns the full, homogeneous row set of one list.
type Source interface {
	Rows(ctx context.Context) ([]listing.Row, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]listing.Row, error)

func (f SourceFunc) Rows(ctx context.Context) ([]listing.Row, error) { return f(ctx) }

// StaticSource serves a fixed row set.
type StaticSource []listing.Row

func (s StaticSource) Rows(context.Context) ([]listing.Row, error) {
	return slices.Clone([]listing.Row(s)), nil
}

// List binds a list definition to its data source.
type List struct {
	Spec
	Source Source
	engine *listing.Engine[listing.Row]
}

func (l *List) Engine() *listing.Engine[listing.Row] {
	return l.engine
}

// Rows fetches the list's rows.
func (l *List) Rows(ctx context.Context) ([]listing.Row, error) {
	rows, err := l.Source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s rows: %w", l.Name, err)
	}
	return rows, nil
}

// Query fetches the rows and runs q against them. A query without sort
// keys uses the list's default sort.
func (l *List) Query(ctx context.Context, q listing.Query) (listing.Page[listing.Row], error) {
	rows, err := l.Rows(ctx)
	if err != nil {
		return listing.Page[listing.Row]{}, err
	}
	if len(q.Sort) == 0 {
		q.Sort = l.DefaultSort
	}
	return l.engine.Query(rows, q), nil
}

// Registry maps list names to lists.
type Registry struct {
	lists map[string]*List
	names []string
}

func NewRegistry() *Registry {
	return &Registry{lists: make(map[string]*List)}
}

// Register adds or replaces a list.
func (r *Registry) Register(spec Spec, src Source) {
	if _, ok := r.lists[spec.Name]; !ok {
		r.names = append(r.names, spec.Name)
	}
	r.lists[spec.Name] = &List{
		Spec:   spec,
		Source: src,
		engine: listing.NewRowEngine(spec.Config()),
	}
}

func (r *Registry) Get(name string) (*List, error) {
	l, ok := r.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return l, nil
}

// Specs returns the registered list definitions in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.lists[n].Spec)
	}
	return out
}

// RegisterAll registers every list in Specs with its source from sources.
func (r *Registry) RegisterAll(sources map[string]Source) error {
	for _, spec := range Specs {
		src, ok := sources[spec.Name]
		if !ok {
			return fmt.Errorf("no source for list %q", spec.Name)
		}
		r.Register(spec, src)
	}
	return nil
}
