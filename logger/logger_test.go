package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zap.AtomicLevel
		wantErr bool
	}{
		{"", zap.NewAtomicLevelAt(zap.WarnLevel), false},
		{"debug", zap.NewAtomicLevelAt(zap.DebugLevel), false},
		{"INFO", zap.NewAtomicLevelAt(zap.InfoLevel), false},
		{"error", zap.NewAtomicLevelAt(zap.ErrorLevel), false},
		{"loud", zap.NewAtomicLevelAt(zap.WarnLevel), true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Level(), got)
		})
	}
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, "warn", VerbosityLevel("warn", 0))
	assert.Equal(t, "info", VerbosityLevel("warn", 1))
	assert.Equal(t, "debug", VerbosityLevel("warn", 3))
}

func TestInitialize(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()

	require.NoError(t, Initialize(false, "info"))
	assert.False(t, JSONOutput)
	assert.NotNil(t, Named("store"))

	require.NoError(t, Initialize(true, "debug"))
	assert.True(t, JSONOutput)

	assert.Error(t, Initialize(false, "nonsense"))
}
