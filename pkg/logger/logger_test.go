package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GlebRadaev/mealsection/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name          string
		config        *config.Config
		expectedError bool
	}{
		{
			name:   "Valid log level info",
			config: &config.Config{LogLvl: "info"},
		},
		{
			name:   "Valid log level error",
			config: &config.Config{LogLvl: "error"},
		},
		{
			name:   "Valid log level debug",
			config: &config.Config{LogLvl: "debug"},
		},
		{
			name:   "Valid log level warn",
			config: &config.Config{LogLvl: "warn"},
		},
		{
			name:          "Invalid log level",
			config:        &config.Config{LogLvl: "invalid"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.config)

			if tt.expectedError {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewAuditLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "paystack_webhook.log")

	audit, err := NewAuditLogger(path)
	require.NoError(t, err)
	audit.Info("paystack event", zap.String("body", `{"event":"charge.success"}`))
	require.NoError(t, audit.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "charge.success")

	nop, err := NewAuditLogger("")
	require.NoError(t, err)
	assert.NotNil(t, nop)
}
