// Package memory provides an in-memory implementation of the database
// adapter ports. It serves as the reference adapter implementation and
// backs tests and demo setups.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/artpar/admingate/ports"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// Adapter is an in-memory ports.Adapter holding declared resources.
type Adapter struct {
	mu        sync.RWMutex
	resources []*Resource
}

// NewAdapter creates an empty in-memory adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// AddResource declares a resource on the adapter.
func (a *Adapter) AddResource(res *Resource) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resources = append(a.resources, res)
}

// Name identifies the adapter.
func (a *Adapter) Name() string { return "memory" }

// Resources returns declared resources in declaration order.
func (a *Adapter) Resources(ctx context.Context) ([]ports.Resource, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]ports.Resource, len(a.resources))
	for i, r := range a.resources {
		out[i] = r
	}
	return out, nil
}

// Ensure interface compliance.
var _ ports.Adapter = (*Adapter)(nil)
