package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0n0x41d/quint-audit/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.95, cfg.Assurance.SelfReliability)
	assert.Equal(t, 2, cfg.Assurance.BiasEvidenceThreshold)
	assert.Equal(t, 0.90, cfg.Assurance.HighReliability)
	assert.Equal(t, 0.75, cfg.Assurance.MediumReliability)
	assert.Equal(t, 0.80, cfg.Assurance.WeakLinkThreshold)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("defaults resolved against root", func(t *testing.T) {
		root := t.TempDir()

		cfg, err := Load(root, "")
		require.NoError(t, err)

		assert.Equal(t, root, cfg.Root)
		assert.Equal(t, filepath.Join(root, ".quint", "quint.db"), cfg.DatabasePath())
		assert.Equal(t, filepath.Join(root, ".quint", "decisions"), cfg.DecisionsDir())
	})

	t.Run("project file overrides defaults", func(t *testing.T) {
		root := t.TempDir()
		content := "[assurance]\nself_reliability = 0.9\nbias_evidence_threshold = 3\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

		cfg, err := Load(root, "")
		require.NoError(t, err)

		assert.Equal(t, 0.9, cfg.Assurance.SelfReliability)
		assert.Equal(t, 3, cfg.Assurance.BiasEvidenceThreshold)
		assert.Equal(t, 0.75, cfg.Assurance.MediumReliability)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("QUINT_ASSURANCE_SELF_RELIABILITY", "0.85")

		cfg, err := Load(t.TempDir(), "")
		require.NoError(t, err)

		assert.Equal(t, 0.85, cfg.Assurance.SelfReliability)
	})

	t.Run("absolute database path kept", func(t *testing.T) {
		t.Setenv("QUINT_DATABASE_PATH", "/var/lib/quint/q.db")

		cfg, err := Load(t.TempDir(), "")
		require.NoError(t, err)

		assert.Equal(t, "/var/lib/quint/q.db", cfg.DatabasePath())
	})

	t.Run("invalid self reliability rejected", func(t *testing.T) {
		root := t.TempDir()
		content := "[assurance]\nself_reliability = 1.5\n"
		require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(content), 0644))

		_, err := Load(root, "")
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestWriteDefault(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, FileName)

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "self_reliability = 0.95")
	assert.NotContains(t, string(data), "root =")

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, 0.95, cfg.Assurance.SelfReliability)

	assert.Error(t, WriteDefault(path), "second write must not clobber the file")
}

func TestEncode(t *testing.T) {
	out, err := Encode(Default())
	require.NoError(t, err)
	assert.Contains(t, out, "[assurance]")
	assert.Contains(t, out, "bias_evidence_threshold = 2")
}
