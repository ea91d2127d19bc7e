package rewrite

import (
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// DefaultCatalogue is the name of the built-in dog-sale catalogue.
const DefaultCatalogue = "dog-sale"

// Catalogue is a named rule set.
type Catalogue struct {
	Name        string
	Description string
	// Rules returns a fresh copy of the rules on every call.
	Rules func() []Rule
}

// Registry manages named catalogues.
type Registry struct {
	mu         sync.RWMutex
	catalogues map[string]Catalogue
}

// NewRegistry creates an empty catalogue registry.
func NewRegistry() *Registry {
	return &Registry{
		catalogues: make(map[string]Catalogue),
	}
}

// Register adds a catalogue to the registry.
func (r *Registry) Register(c Catalogue) error {
	if c.Name == "" {
		return errors.New("catalogue name cannot be empty")
	}
	if c.Rules == nil {
		return errors.Errorf("catalogue %s has no rules", c.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.catalogues[c.Name]; exists {
		return errors.Errorf("catalogue already registered: %s", c.Name)
	}

	r.catalogues[c.Name] = c
	return nil
}

// Get returns a catalogue by name.
func (r *Registry) Get(name string) (Catalogue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.catalogues[name]
	if !ok {
		return Catalogue{}, errors.Errorf("catalogue not found: %s", name)
	}
	return c, nil
}

// List returns all registered catalogue names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.catalogues))
	for name := range r.catalogues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a catalogue is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.catalogues[name]
	return ok
}

// Count returns the number of registered catalogues.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.catalogues)
}

// DefaultRegistry is the global catalogue registry. It holds the built-in
// dog-sale catalogue.
var DefaultRegistry = NewRegistry()

func init() {
	_ = Register(Catalogue{
		Name:        DefaultCatalogue,
		Description: "puppy contract of sale",
		Rules:       DogSaleCatalogue,
	})
}

// Register adds a catalogue to the default registry.
func Register(c Catalogue) error {
	return DefaultRegistry.Register(c)
}

// Lookup returns a catalogue from the default registry.
func Lookup(name string) (Catalogue, error) {
	return DefaultRegistry.Get(name)
}

// Catalogues returns all catalogue names from the default registry.
func Catalogues() []string {
	return DefaultRegistry.List()
}

// Resolve returns the rules of the registered catalogue called ref, or reads
// ref as a YAML catalogue file. An empty ref is the default catalogue.
func Resolve(ref string) ([]Rule, error) {
	if ref == "" {
		ref = DefaultCatalogue
	}
	if !DefaultRegistry.Has(ref) {
		return LoadCatalogue(ref)
	}
	c, err := Lookup(ref)
	if err != nil {
		return nil, err
	}
	return c.Rules(), nil
}
