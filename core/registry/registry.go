// Package registry manages resource registration for one admin
// instance. It decorates every adapter resource with its options,
// detects duplicate identifiers, and answers lookups from the web
// layer.
//
// A registry is built once per configuration load. Reconfiguration
// builds a replacement registry with fresh decorators; live ones are
// never mutated.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/artpar/admingate/core/decorator"
	"github.com/artpar/admingate/core/options"
	"github.com/artpar/admingate/ports"
)

// Branding controls the instance-wide presentation.
type Branding struct {
	// CompanyName is shown in the header and page titles.
	CompanyName string

	// RootPath prefixes all generated hrefs. Defaults to "/admin".
	RootPath string

	// Logo is a URL to the instance logo, if any.
	Logo string
}

// Registry owns the decorated resources of one admin instance.
type Registry struct {
	mu sync.RWMutex

	branding Branding

	// resources by ID, plus registration order for stable listings.
	resources map[string]*decorator.Resource
	order     []string
}

// New creates an empty registry.
func New(branding Branding) *Registry {
	if branding.RootPath == "" {
		branding.RootPath = decorator.DefaultRootPath
	}
	if branding.CompanyName == "" {
		branding.CompanyName = "Admingate"
	}
	return &Registry{
		branding:  branding,
		resources: make(map[string]*decorator.Resource),
	}
}

// Build creates a registry and registers every resource of the adapter
// with its matching options (keyed by resource ID). Validation runs
// eagerly so configuration errors surface before serving.
func Build(ctx context.Context, adapter ports.Adapter, opts map[string]options.ResourceOptions, branding Branding) (*Registry, error) {
	reg := New(branding)

	resources, err := adapter.Resources(ctx)
	if err != nil {
		return nil, fmt.Errorf("load resources from adapter %q: %w", adapter.Name(), err)
	}

	for _, raw := range resources {
		if err := reg.Register(raw, opts[raw.ID()]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register decorates and validates one resource. Returns an error on a
// duplicate identifier or invalid options.
func (r *Registry) Register(raw ports.Resource, opts options.ResourceOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.resources[raw.ID()]; exists {
		return fmt.Errorf("resource %q already registered", raw.ID())
	}

	res := decorator.New(raw, opts, r.branding.RootPath)
	if err := res.Validate(); err != nil {
		return err
	}

	r.resources[raw.ID()] = res
	r.order = append(r.order, raw.ID())
	return nil
}

// Get returns a decorated resource by ID.
func (r *Registry) Get(id string) (*decorator.Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.resources[id]
	return res, ok
}

// List returns all decorated resources in registration order.
func (r *Registry) List() []*decorator.Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*decorator.Resource, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.resources[id])
	}
	return out
}

// Branding returns the instance branding.
func (r *Registry) Branding() Branding {
	return r.branding
}

// JSON returns the snapshots of all resources for one acting admin, in
// registration order.
func (r *Registry) JSON(admin ports.CurrentAdmin) ([]decorator.ResourceJSON, error) {
	list := r.List()

	out := make([]decorator.ResourceJSON, 0, len(list))
	for _, res := range list {
		j, err := res.JSON(admin)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}
