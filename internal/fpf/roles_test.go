package fpf

import (
	"testing"
)

func TestGetRoleForTool(t *testing.T) {
	tests := []struct {
		tool string
		want Role
	}{
		{"quint_init", RoleInitializer},
		// Hypothesis lifecycle
		{"quint_propose", RoleAbductor},
		{"quint_verify", RoleDeductor},
		{"quint_test", RoleInductor},
		{"quint_audit", RoleAuditor},
		{"quint_decide", RoleDecider},
		// Read-only
		{"quint_calculate_r", RoleObserver},
		{"quint_audit_tree", RoleObserver},
		{"quint_show", RoleObserver},
		// Unknown tool defaults to Observer
		{"unknown_tool", RoleObserver},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			got := GetRoleForTool(tt.tool)
			if got != tt.want {
				t.Errorf("GetRoleForTool(%q) = %v, want %v", tt.tool, got, tt.want)
			}
		})
	}
}

func TestIsMutating(t *testing.T) {
	tests := []struct {
		tool string
		want bool
	}{
		{"quint_propose", true},
		{"quint_verify", true},
		{"quint_test", true},
		{"quint_audit", true},
		{"quint_decide", true},
		{"quint_calculate_r", false},
		{"quint_audit_tree", false},
		{"unknown_tool", false},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			if got := IsMutating(tt.tool); got != tt.want {
				t.Errorf("IsMutating(%q) = %v, want %v", tt.tool, got, tt.want)
			}
		})
	}
}

func TestAllToolsHaveRoles(t *testing.T) {
	tools := []string{
		"quint_init",
		"quint_propose",
		"quint_verify",
		"quint_test",
		"quint_audit",
		"quint_decide",
		"quint_calculate_r",
		"quint_audit_tree",
		"quint_show",
		"quint_status",
	}

	for _, tool := range tools {
		if _, ok := ToolRole[tool]; !ok {
			t.Errorf("Tool %q has no role assigned", tool)
		}
	}
}
