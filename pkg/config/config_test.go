package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junzis/opensky-go/pkg/opensky"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeSettings(t, `[default]
username = testuser
password = testpass

[cache]
purge = 30 days
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "testuser", cfg.Username)
	assert.Equal(t, "testpass", cfg.Password)
	assert.Equal(t, "30 days", cfg.CachePurge)
	assert.True(t, cfg.HasCredentials())
}

func TestLoadFrom_EmptyValuesAreUnset(t *testing.T) {
	path := writeSettings(t, `[default]
username =
password =
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Empty(t, cfg.Username)
	assert.Empty(t, cfg.Password)
	assert.False(t, cfg.HasCredentials())

	_, err = cfg.RequireUsername()
	assert.Equal(t, opensky.KindConfig, opensky.KindOf(err))
}

func TestLoadFrom_Missing(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.Equal(t, opensky.KindConfig, opensky.KindOf(err))
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")

	cfg := &Config{Username: "alice", Password: "s3cret", CachePurge: "7 days"}
	require.NoError(t, cfg.SaveTo(path))

	back, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", back.Username)
	assert.Equal(t, "s3cret", back.Password)
	assert.Equal(t, "7 days", back.CachePurge)
}

func TestSaveTo_DefaultPurge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")
	require.NoError(t, (&Config{Username: "u"}).SaveTo(path))

	back, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "90 days", back.CachePurge)
}

func TestParsePurgeAge(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"90 days", 90 * 24 * time.Hour, false},
		{"1 day", 24 * time.Hour, false},
		{"12 hours", 12 * time.Hour, false},
		{"2 weeks", 14 * 24 * time.Hour, false},
		{"30 minutes", 30 * time.Minute, false},
		{"  90 DAYS  ", 90 * 24 * time.Hour, false},
		{"", 0, true},
		{"days", 0, true},
		{"ninety days", 0, true},
		{"-1 days", 0, true},
		{"3 fortnights", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePurgeAge(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
