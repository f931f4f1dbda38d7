package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		opts    LoggerOptions
		level   zap.AtomicLevel
		wantErr bool
	}{
		{"development default", LoggerOptions{}, zap.NewAtomicLevelAt(zap.DebugLevel), false},
		{"production warn", LoggerOptions{Production: true, Level: "warn"}, zap.NewAtomicLevelAt(zap.WarnLevel), false},
		{"bad level", LoggerOptions{Level: "loud"}, zap.AtomicLevel{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level.Level()))
			assert.False(t, logger.Core().Enabled(tt.level.Level()-1))
		})
	}
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journeys.log")
	logger, err := NewLogger(LoggerOptions{Production: true, Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("journey saved", zap.String("journey_id", "j1"))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"journey saved"`)
	assert.Contains(t, string(raw), `"journey_id":"j1"`)
}
