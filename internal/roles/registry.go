package roles

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Permission strings form a flat namespace of resource:verb capabilities.
const (
	PermGroupRead       = "group:read"
	PermGroupWrite      = "group:write"
	PermInvitationRead  = "invitation:read"
	PermInvitationWrite = "invitation:write"
	PermWishListRead    = "wishlist:read"
	PermWishListWrite   = "wishlist:write"
	PermUserRead        = "user:read"
	PermUserWrite       = "user:write"
)

// The three fixed role names.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Definition is a named permission bundle as declared in the seed file.
type Definition struct {
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type rolesFile struct {
	Roles []Definition `yaml:"roles"`
}

// Registry holds the role definitions loaded from the embedded seed file.
// It is established once at startup and read-only afterwards; request
// handling never mutates it.
type Registry struct {
	definitions map[string]Definition
	order       []string
	mu          sync.RWMutex
}

// NewRegistry loads the embedded role definitions.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/roles.yaml")
	if err != nil {
		return nil, fmt.Errorf("read role definitions: %w", err)
	}

	var file rolesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal role definitions: %w", err)
	}

	r := &Registry{
		definitions: make(map[string]Definition, len(file.Roles)),
	}
	for _, def := range file.Roles {
		if def.Name == "" {
			return nil, fmt.Errorf("role definition without a name")
		}
		if _, exists := r.definitions[def.Name]; exists {
			return nil, fmt.Errorf("duplicate role definition %q", def.Name)
		}
		if def.Permissions == nil {
			def.Permissions = []string{}
		}
		r.definitions[def.Name] = def
		r.order = append(r.order, def.Name)
	}

	for _, required := range []string{RoleAdmin, RoleUser, RoleGuest} {
		if _, ok := r.definitions[required]; !ok {
			return nil, fmt.Errorf("role definition %q missing from seed file", required)
		}
	}

	return r, nil
}

// Get returns the definition for a role name.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[name]
	return def, ok
}

// All returns the definitions in declaration order.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.definitions[name])
	}
	return out
}
