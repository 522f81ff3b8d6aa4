package fpf

type Role string

const (
	RoleInitializer Role = "Initializer"
	RoleAbductor    Role = "Abductor"
	RoleDeductor    Role = "Deductor"
	RoleInductor    Role = "Inductor"
	RoleAuditor     Role = "Auditor"
	RoleDecider     Role = "Decider"
	RoleObserver    Role = "Observer"
)

// ToolRole maps tool name → role (static, deterministic).
// The role is recorded as the actor of every audit log entry.
var ToolRole = map[string]Role{
	"quint_init": RoleInitializer,

	// Hypothesis lifecycle
	"quint_propose": RoleAbductor,
	"quint_verify":  RoleDeductor,
	"quint_test":    RoleInductor,
	"quint_audit":   RoleAuditor,
	"quint_decide":  RoleDecider,

	// Read-only
	"quint_calculate_r": RoleObserver,
	"quint_audit_tree":  RoleObserver,
	"quint_show":        RoleObserver,
	"quint_status":      RoleObserver,
}

// GetRoleForTool returns the role associated with a tool.
// Returns RoleObserver for unknown tools (safe default).
func GetRoleForTool(toolName string) Role {
	if role, ok := ToolRole[toolName]; ok {
		return role
	}
	return RoleObserver
}

// IsMutating reports whether the tool writes to the store.
func IsMutating(toolName string) bool {
	switch GetRoleForTool(toolName) {
	case RoleObserver:
		return false
	}
	return true
}
