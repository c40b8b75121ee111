// Package agent defines the role-tagged agents that execute pipeline tasks
// and the registry used to dispatch tasks to them.
package agent

import (
	"errors"
	"fmt"
)

// ErrNoAgentFound is returned when no registered agent has the requested role.
var ErrNoAgentFound = errors.New("no suitable agent found")

// Role tags an agent with the kind of work it performs.
type Role string

// Built-in roles.
const (
	RoleBusinessAnalyst Role = "Business Analyst"
	RoleDeveloper       Role = "Developer"
	RoleQATester        Role = "QA Tester"
)

// BuiltinRoles lists the roles offered by the forms.
func BuiltinRoles() []Role {
	return []Role{RoleBusinessAnalyst, RoleDeveloper, RoleQATester}
}

// Agent is an immutable named identity with a role.
type Agent struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (a Agent) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Role)
}

// Registry keeps agents in registration order. It is not safe for concurrent use.
type Registry struct {
	agents []Agent
}

// NewRegistry creates a registry seeded with agents.
func NewRegistry(agents ...Agent) *Registry {
	r := &Registry{agents: make([]Agent, 0, len(agents))}
	r.agents = append(r.agents, agents...)
	return r
}

// Register appends an agent. Names are not required to be unique.
func (r *Registry) Register(name string, role Role) Agent {
	a := Agent{Name: name, Role: role}
	r.agents = append(r.agents, a)
	return a
}

// FindByRole returns the first registered agent whose role matches exactly.
func (r *Registry) FindByRole(role Role) (Agent, error) {
	for _, a := range r.agents {
		if a.Role == role {
			return a, nil
		}
	}
	return Agent{}, fmt.Errorf("%w: role %q", ErrNoAgentFound, role)
}

// List returns a copy of the registered agents.
func (r *Registry) List() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// Len reports the number of registered agents.
func (r *Registry) Len() int {
	return len(r.agents)
}
