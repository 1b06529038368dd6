package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level string
		want  zap.AtomicLevel
	}{
		{"debug", zap.NewAtomicLevelAt(zap.DebugLevel)},
		{"warn", zap.NewAtomicLevelAt(zap.WarnLevel)},
		{"bogus", zap.NewAtomicLevelAt(zap.InfoLevel)},
	}
	for _, tt := range tests {
		l, err := New(tt.level, "console")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(tt.want.Level()), tt.level)
		if tt.want.Level() > zap.DebugLevel {
			assert.False(t, l.Core().Enabled(tt.want.Level()-1), tt.level)
		}
	}
}
