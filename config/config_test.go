package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"GOEVENTS_LOG_LEVEL", "GOEVENTS_FOCUSIN", "GOEVENTS_SCRIPT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", Focusin: true}, cfg)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Config
		wantErr bool
	}{
		{
			name: "all set",
			env:  map[string]string{"GOEVENTS_LOG_LEVEL": "debug", "GOEVENTS_FOCUSIN": "false", "GOEVENTS_SCRIPT": "app.js"},
			want: Config{LogLevel: "debug", Focusin: false, Script: "app.js"},
		},
		{
			name:    "bad bool",
			env:     map[string]string{"GOEVENTS_FOCUSIN": "sometimes"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLevel(t *testing.T) {
	lvl, err := Config{LogLevel: "warn"}.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, lvl)

	lvl, err = Config{LogLevel: "loud"}.Level()
	assert.Error(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)
}
