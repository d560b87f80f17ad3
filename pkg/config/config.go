// Package config loads and saves the OpenSky credentials file.
//
// The file is a two-section key/value file named settings.conf under
// the platform config directory (~/.config/opensky on Linux), the same
// shape used by the other OpenSky client libraries:
//
//	[default]
//	username =
//	password =
//	client_id =
//	client_secret =
//
//	[cache]
//	purge = 90 days
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"

	"github.com/junzis/opensky-go/pkg/opensky"
)

// fileName is the settings file name inside the config directory.
const fileName = "settings.conf"

// dirName is the application subdirectory under the platform config root.
const dirName = "opensky"

// Config holds the Trino credentials and cache settings. Empty strings
// mean unset.
type Config struct {
	Username     string
	Password     string
	ClientID     string
	ClientSecret string

	// CachePurge is the free-text purge age from the [cache] section,
	// e.g. "90 days". Parse it with ParsePurgeAge.
	CachePurge string
}

// Dir returns the platform config directory for OpenSky.
func Dir() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", opensky.Wrap(opensky.KindConfig, "determine config directory", err)
	}
	return filepath.Join(root, dirName), nil
}

// Path returns the settings file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the settings file from the default location.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the settings file at path. Empty values are treated
// as unset.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, opensky.Errorf(opensky.KindConfig,
			"config file not found: %s (run `opensky config set` to create it)", path)
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, opensky.Wrap(opensky.KindConfig, "parse config file", err)
	}

	def := file.Section("default")
	return &Config{
		Username:     def.Key("username").String(),
		Password:     def.Key("password").String(),
		ClientID:     def.Key("client_id").String(),
		ClientSecret: def.Key("client_secret").String(),
		CachePurge:   file.Section("cache").Key("purge").String(),
	}, nil
}

// Save writes the settings file to the default location, creating the
// config directory when needed.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return opensky.Wrap(opensky.KindConfig, "create config directory", err)
	}
	return c.SaveTo(filepath.Join(dir, fileName))
}

// SaveTo writes the settings file at path.
func (c *Config) SaveTo(path string) error {
	file := ini.Empty()

	def := file.Section("default")
	def.Key("username").SetValue(c.Username)
	def.Key("password").SetValue(c.Password)
	def.Key("client_id").SetValue(c.ClientID)
	def.Key("client_secret").SetValue(c.ClientSecret)

	purge := c.CachePurge
	if purge == "" {
		purge = "90 days"
	}
	file.Section("cache").Key("purge").SetValue(purge)

	if err := file.SaveTo(path); err != nil {
		return opensky.Wrap(opensky.KindConfig, "write config file", err)
	}
	return nil
}

// HasCredentials reports whether username and password are both set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// RequireUsername returns the username or a config error.
func (c *Config) RequireUsername() (string, error) {
	if c.Username == "" {
		return "", opensky.E(opensky.KindConfig, "username not configured")
	}
	return c.Username, nil
}

// RequirePassword returns the password or a config error.
func (c *Config) RequirePassword() (string, error) {
	if c.Password == "" {
		return "", opensky.E(opensky.KindConfig, "password not configured")
	}
	return c.Password, nil
}

// ParsePurgeAge parses a free-text duration like "90 days", "12 hours"
// or "2 weeks" into a time.Duration.
func ParsePurgeAge(s string) (time.Duration, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(fields) != 2 {
		return 0, opensky.Errorf(opensky.KindInvalidParam,
			"invalid purge age %q: want \"<number> <unit>\"", s)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, opensky.Errorf(opensky.KindInvalidParam,
			"invalid purge age %q: bad count %q", s, fields[0])
	}

	var unit time.Duration
	switch strings.TrimSuffix(fields[1], "s") {
	case "minute":
		unit = time.Minute
	case "hour":
		unit = time.Hour
	case "day":
		unit = 24 * time.Hour
	case "week":
		unit = 7 * 24 * time.Hour
	default:
		return 0, opensky.Errorf(opensky.KindInvalidParam,
			"invalid purge age %q: unknown unit %q", s, fields[1])
	}

	return time.Duration(n) * unit, nil
}

// DefaultTemplate is the settings file created by `opensky config set`
// when none exists yet.
const DefaultTemplate = `[default]
username =
password =
client_id =
client_secret =

[cache]
purge = 90 days
`
