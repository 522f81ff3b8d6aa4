package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0n0x41d/quint-audit/errors"
)

func init() {
	pterm.DisableColor()
}

// run executes quint with args against root and returns stdout and stderr.
func run(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--root", root}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, root string, args ...string) string {
	t.Helper()
	out, _, err := run(t, root, args...)
	require.NoError(t, err, "quint %s", strings.Join(args, " "))
	return out
}

var createdID = regexp.MustCompile(`Hypothesis created: (\S+)`)

func proposeID(t *testing.T, root, title string) string {
	t.Helper()
	out := mustRun(t, root, "propose", "--title", title, "--kind", "system", "--content", "statement")
	m := createdID.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestInit(t *testing.T) {
	root := t.TempDir()
	out := mustRun(t, root, "init")

	assert.Contains(t, out, "Initialized quint")
	assert.FileExists(t, filepath.Join(root, ".quint", "quint.db"))
	assert.FileExists(t, filepath.Join(root, "quint.toml"))
	assert.DirExists(t, filepath.Join(root, ".quint", "decisions"))

	// A second init keeps the existing config.
	out = mustRun(t, root, "init")
	assert.NotContains(t, out, "Wrote")
}

func TestWorkflow(t *testing.T) {
	root := t.TempDir()
	mustRun(t, root, "init")

	winner := proposeID(t, root, "Use Redis for caching")
	loser := proposeID(t, root, "Use Memcached")

	out := mustRun(t, root, "verify", winner, "--verdict", "pass", "--checks", "TTL invariants hold")
	assert.Contains(t, out, "[OK] Verification recorded for: "+winner)
	assert.Contains(t, out, "New Layer: L1 (substantiated)")

	out = mustRun(t, root, "test", winner, "--type", "internal", "--verdict", "PASS", "--result", "p99 -40%")
	assert.Contains(t, out, "New Layer: L2 (promoted)")

	out = mustRun(t, root, "test", winner, "--type", "external", "--verdict", "PASS", "--result", "vendor docs")
	assert.Contains(t, out, "New Layer: L2 (refreshed)")

	out = mustRun(t, root, "calculate-r", winner)
	assert.Contains(t, out, "**R_eff = 0.75**")
	assert.Contains(t, out, "## Risk Factors")

	out = mustRun(t, root, "audit-tree", winner)
	assert.Contains(t, out, "AUDIT TREE: Use Redis for caching")

	out = mustRun(t, root, "audit", winner, "--risks", "single node")
	assert.Contains(t, out, "[OK] Audit recorded for: "+winner)

	out = mustRun(t, root, "decide", "--title", "Cache backend", "--winner", winner, "--reject", loser, "--rationale", "tested")
	assert.Contains(t, out, "DECISION RECORDED")
	assert.Contains(t, out, "now L3")

	matches, err := filepath.Glob(filepath.Join(root, ".quint", "decisions", "dec-*-cache-backend.md"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	out = mustRun(t, root, "status")
	assert.Contains(t, out, "Use Memcached")
	assert.Contains(t, out, "L3")

	out = mustRun(t, root, "show", winner)
	assert.Contains(t, out, "- Layer: L3")
	assert.Contains(t, out, "--selects--> "+winner)
}

func TestVerifyWarningGoesToStderr(t *testing.T) {
	root := t.TempDir()
	id := proposeID(t, root, "Warm standby")
	mustRun(t, root, "verify", id, "--verdict", "PASS")

	out, stderr, err := run(t, root, "verify", id, "--verdict", "FAIL")
	require.NoError(t, err)
	assert.Contains(t, out, "New Layer: L1 (already_verified)")
	assert.Contains(t, stderr, "already at layer L1")
}

func TestErrors(t *testing.T) {
	root := t.TempDir()
	id := proposeID(t, root, "Sharding")

	tests := []struct {
		name string
		args []string
		kind error
	}{
		{"test from L0", []string{"test", id, "--verdict", "PASS"}, errors.ErrIllegalTransition},
		{"bad verdict", []string{"verify", id, "--verdict", "MAYBE"}, errors.ErrInvalidArgument},
		{"bad test type", []string{"test", id, "--type", "manual", "--verdict", "PASS"}, errors.ErrInvalidArgument},
		{"bad kind", []string{"propose", "--title", "x", "--kind", "opinion"}, errors.ErrInvalidArgument},
		{"missing hypothesis", []string{"calculate-r", "nope"}, errors.ErrNotFound},
		{"missing winner", []string{"decide", "--title", "t", "--winner", "nope"}, errors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, root, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.Kind(err))
			assert.Empty(t, out)
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.WithHint(errors.Wrapf(errors.ErrNotFound, "hypothesis %q", "h1"), "List hypotheses with `quint status`")
	PrintError(&buf, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `hypothesis "h1": not found`)
	assert.Contains(t, lines[1], "hint: List hypotheses")
}

func TestConfigCommands(t *testing.T) {
	root := t.TempDir()

	out := mustRun(t, root, "config", "init")
	assert.Contains(t, out, "quint.toml")

	_, _, err := run(t, root, "config", "init")
	assert.Error(t, err)

	t.Setenv("QUINT_ASSURANCE_SELF_RELIABILITY", "0.8")
	out = mustRun(t, root, "config", "show")
	assert.Contains(t, out, "self_reliability = 0.8")
	assert.Contains(t, out, "bias_evidence_threshold = 2")
}

func TestConfigAffectsCalculus(t *testing.T) {
	root := t.TempDir()
	cfg := "[assurance]\nself_reliability = 0.6\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "quint.toml"), []byte(cfg), 0644))

	id := proposeID(t, root, "Lower ceiling")
	out := mustRun(t, root, "calculate-r", id)
	assert.Contains(t, out, "**R_eff = 0.60**")
}
