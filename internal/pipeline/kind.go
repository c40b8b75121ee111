package pipeline

import (
	"strings"

	"github.com/metalagman/agentflow/internal/agent"
)

// Kind classifies a task name for agent dispatch.
type Kind int

// Task kinds.
const (
	KindUnknown Kind = iota
	KindRequirements
	KindUserStory
	KindScript
	KindTestCase
)

// kindRules are checked in order; the first substring found wins.
var kindRules = []struct {
	substr string
	kind   Kind
}{
	{"Requirements", KindRequirements},
	{"User Story", KindUserStory},
	{"Script", KindScript},
	{"Test Case", KindTestCase},
}

var kindRoles = map[Kind]agent.Role{
	KindRequirements: agent.RoleBusinessAnalyst,
	KindUserStory:    agent.RoleBusinessAnalyst,
	KindScript:       agent.RoleDeveloper,
	KindTestCase:     agent.RoleQATester,
}

// Classify maps a task name to its kind.
func Classify(taskName string) Kind {
	for _, rule := range kindRules {
		if strings.Contains(taskName, rule.substr) {
			return rule.kind
		}
	}
	return KindUnknown
}

// Role returns the role responsible for tasks of this kind.
func (k Kind) Role() (agent.Role, bool) {
	role, ok := kindRoles[k]
	return role, ok
}

func (k Kind) String() string {
	switch k {
	case KindRequirements:
		return "requirements"
	case KindUserStory:
		return "user_story"
	case KindScript:
		return "script"
	case KindTestCase:
		return "test_case"
	default:
		return "unknown"
	}
}
