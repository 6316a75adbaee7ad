package connection

import (
	"sync"

	"github.com/grainsearch/grain-dsl/internal/pkg/logger"
	"github.com/grainsearch/grain-dsl/pkg/errors"
)

// DefaultAlias is the alias used when callers do not name a connection.
const DefaultAlias = "default"

// Registry maps aliases to connection configurations. All methods are safe
// for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	connections  map[string]*Config
	defaultAlias string
	log          *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Default()
	}
	return &Registry{
		connections:  make(map[string]*Config),
		defaultAlias: DefaultAlias,
		log:          log,
	}
}

// Configure replaces the registry contents with the given alias map.
// Existing aliases not named in configs are removed.
func (r *Registry) Configure(configs map[string]*Config) error {
	for alias, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return errors.ConfigurationError("invalid connection configuration: " + err.Error()).
				WithDetail("alias", alias)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections = make(map[string]*Config, len(configs))
	for alias, cfg := range configs {
		r.connections[alias] = cfg
	}
	r.log.Info("configured connections", "count", len(configs))
	return nil
}

// Add registers a connection under alias. Registering an alias twice fails;
// use Configure to replace the registry wholesale, or Remove first.
func (r *Registry) Add(alias string, cfg *Config) error {
	if alias == "" {
		return errors.ValidationError("connection alias must not be empty")
	}
	if err := cfg.Validate(); err != nil {
		return errors.ConfigurationError("invalid connection configuration: " + err.Error()).
			WithDetails(map[string]string{"alias": alias, "address": cfg.Primary()})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connections[alias]; ok {
		return errors.AlreadyExistsError("connection " + alias)
	}
	r.connections[alias] = cfg
	r.log.Debug("added connection", "alias", alias, "address", cfg.Primary())
	return nil
}

// Get returns the connection registered under alias. An empty alias resolves
// to the default.
func (r *Registry) Get(alias string) (*Config, error) {
	if alias == "" {
		alias = r.Default()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.connections[alias]
	if !ok {
		return nil, errors.NotFoundError("connection " + alias)
	}
	return cfg, nil
}

// Remove deletes the connection registered under alias.
func (r *Registry) Remove(alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.connections[alias]; !ok {
		return errors.NotFoundError("connection " + alias)
	}
	delete(r.connections, alias)
	return nil
}

// SetDefault changes which alias Get resolves for the empty alias.
func (r *Registry) SetDefault(alias string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultAlias = alias
}

// Default returns the current default alias.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultAlias
}

// Aliases lists the registered aliases.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	aliases := make([]string, 0, len(r.connections))
	for alias := range r.connections {
		aliases = append(aliases, alias)
	}
	return aliases
}

var defaultRegistry = NewRegistry(nil)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
