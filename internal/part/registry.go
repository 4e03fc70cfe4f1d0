// Package part provides the part-template registry and command expansion for
// bob. A part is a named, reusable command-generation unit (a build tool
// invocation) instantiated with parameters inside a project.
package part

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

// Registry provides thread-safe access to part templates.
// Templates are stored by part type name. Content is static during a run;
// registration happens once at startup.
type Registry struct {
	mu    sync.RWMutex
	parts map[string]*domain.PartTemplate
}

// NewRegistry creates a new empty part registry.
func NewRegistry() *Registry {
	return &Registry{
		parts: make(map[string]*domain.PartTemplate),
	}
}

// Lookup retrieves the part template for a part type.
// Returns a clone to prevent mutation of registry state.
// Returns ErrUnknownPart if the part type has no registered templates.
func (r *Registry) Lookup(partType string) (*domain.PartTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parts[partType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", boberrors.ErrUnknownPart, partType)
	}
	return p.Clone(), nil
}

// Register adds a part template to the registry.
// Returns an error if the template is nil, has an empty name, or already exists.
func (r *Registry) Register(p *domain.PartTemplate) error {
	if p == nil {
		return boberrors.ErrPartNil
	}
	if strings.TrimSpace(p.Name) == "" {
		return boberrors.ErrPartNameEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parts[p.Name]; exists {
		return fmt.Errorf("%w: %s", boberrors.ErrPartDuplicate, p.Name)
	}

	r.parts[p.Name] = p
	return nil
}

// RegisterOrReplace adds a part template, replacing any existing template
// with the same name. This is used for custom parts files that override
// built-in parts.
func (r *Registry) RegisterOrReplace(p *domain.PartTemplate) error {
	if p == nil {
		return boberrors.ErrPartNil
	}
	if strings.TrimSpace(p.Name) == "" {
		return boberrors.ErrPartNameEmpty
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.parts[p.Name] = p
	return nil
}

// Types returns the registered part type names in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parts))
	for name := range r.parts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
