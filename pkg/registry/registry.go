// pkg/registry/registry.go
package registry

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Registry holds the endpoints the service exposes.
type Registry struct {
	mu        sync.RWMutex
	service   string
	version   string
	endpoints map[string]Endpoint
}

func New(service, version string) *Registry {
	return &Registry{
		service:   service,
		version:   version,
		endpoints: make(map[string]Endpoint),
	}
}

// Register adds ep. Task types and method+path pairs must be unique.
func (r *Registry) Register(ep Endpoint) error {
	if ep.TaskType == "" {
		return fmt.Errorf("endpoint has no task type")
	}
	if ep.Path == "" || ep.Handler == nil {
		return fmt.Errorf("endpoint %s needs a path and a handler", ep.TaskType)
	}
	if ep.Method == "" {
		ep.Method = http.MethodPost
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.endpoints[ep.TaskType]; exists {
		return fmt.Errorf("endpoint %s already registered", ep.TaskType)
	}
	for _, other := range r.endpoints {
		if other.Method == ep.Method && other.Path == ep.Path {
			return fmt.Errorf("route %s %s already served by %s", ep.Method, ep.Path, other.TaskType)
		}
	}
	r.endpoints[ep.TaskType] = ep
	return nil
}

// Lookup returns the endpoint registered for taskType.
func (r *Registry) Lookup(taskType string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.endpoints[taskType]
	return ep, ok
}

// Endpoints returns all endpoints ordered by path.
func (r *Registry) Endpoints() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (r *Registry) Catalog() Catalog {
	return Catalog{
		Service:   r.service,
		Version:   r.version,
		Endpoints: r.Endpoints(),
	}
}

// Mount routes every registered endpoint on router.
func (r *Registry) Mount(router chi.Router) {
	for _, ep := range r.Endpoints() {
		router.Method(ep.Method, ep.Path, ep.Handler)
	}
}
