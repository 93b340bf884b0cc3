// Package config reads and writes the marquee.json project file used by
// the marquee CLI. The file is optional; every field has a default and
// command-line flags override it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ConfigFileName is the name of the project configuration file.
const ConfigFileName = "marquee.json"

// DefaultAddr is the address the server binds to when none is configured.
const DefaultAddr = ":8080"

// DefaultPublishOut is the default directory for static exports.
const DefaultPublishOut = "dist"

// ErrNotFound is returned when no marquee.json exists where one was
// expected.
var ErrNotFound = errors.New("config: no marquee.json found")

// Config is the marquee.json schema.
type Config struct {
	// Name is the site name shown in the header, footer, and title.
	Name string `json:"name,omitempty"`

	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr,omitempty"`

	// Dev enables development mode: relaxed origin checks, pretty
	// rendered HTML, and an uncached client script.
	Dev bool `json:"dev,omitempty"`

	// StyleSheets are stylesheet URLs linked from the page head.
	StyleSheets []string `json:"styleSheets,omitempty"`

	// Static configures static file serving.
	Static StaticConfig `json:"static,omitempty"`

	// Publish configures the publish command.
	Publish PublishConfig `json:"publish,omitempty"`

	// Session configures WebSocket session limits.
	Session SessionConfig `json:"session,omitempty"`

	// configPath is where the config was loaded from.
	configPath string
}

// StaticConfig configures static file serving.
type StaticConfig struct {
	// Dir is the directory containing static files.
	Dir string `json:"dir,omitempty"`

	// Prefix is the URL prefix static files are served under.
	Prefix string `json:"prefix,omitempty"`
}

// PublishConfig configures the publish command. Bucket, when set,
// takes precedence over Out; flags override both.
type PublishConfig struct {
	// Out is a local directory to export into.
	Out string `json:"out,omitempty"`

	// Bucket is an S3 bucket name to upload into.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region of the bucket.
	Region string `json:"region,omitempty"`
}

// SessionConfig carries session settings as duration strings, e.g.
// "30s". Parse them with Durations.
type SessionConfig struct {
	// ReadTimeout bounds a single WebSocket read.
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds a single WebSocket write.
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// IdleTimeout closes sessions with no client events.
	IdleTimeout string `json:"idleTimeout,omitempty"`

	// Heartbeat is the server ping interval.
	Heartbeat string `json:"heartbeat,omitempty"`

	// MaxSessions caps concurrent sessions. Zero means unlimited.
	MaxSessions int `json:"maxSessions,omitempty"`
}

// SessionDurations holds the parsed form of SessionConfig. Zero values
// mean "use the server default".
type SessionDurations struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Heartbeat    time.Duration
	MaxSessions  int
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Addr: DefaultAddr,
		Static: StaticConfig{
			Dir:    "public",
			Prefix: "/static/",
		},
		Publish: PublishConfig{
			Out: DefaultPublishOut,
		},
	}
}

// Load reads marquee.json from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNotFound, filepath.Dir(path))
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromWorkingDir walks up from the current working directory to the
// nearest marquee.json and loads it. Returns defaults rooted at the
// working directory when no config file exists anywhere above it.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if errors.Is(err, ErrNotFound) {
		cfg := New()
		cfg.configPath = filepath.Join(wd, ConfigFileName)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(root)
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config: no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from or saved to.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// StaticDir returns the absolute path to the static directory, resolved
// against the config file's directory. Empty when no directory is
// configured.
func (c *Config) StaticDir() string {
	if c.Static.Dir == "" {
		return ""
	}
	if filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// PublishOut returns the absolute path to the export directory.
func (c *Config) PublishOut() string {
	if filepath.IsAbs(c.Publish.Out) {
		return c.Publish.Out
	}
	return filepath.Join(c.Dir(), c.Publish.Out)
}

// Durations parses the session duration strings. Empty strings parse to
// zero, deferring to the server defaults.
func (c *Config) Durations() (SessionDurations, error) {
	var out SessionDurations
	var err error

	parse := func(name, value string) time.Duration {
		if value == "" || err != nil {
			return 0
		}
		d, perr := time.ParseDuration(value)
		if perr != nil {
			err = fmt.Errorf("config: session.%s: %w", name, perr)
			return 0
		}
		return d
	}

	out.ReadTimeout = parse("readTimeout", c.Session.ReadTimeout)
	out.WriteTimeout = parse("writeTimeout", c.Session.WriteTimeout)
	out.IdleTimeout = parse("idleTimeout", c.Session.IdleTimeout)
	out.Heartbeat = parse("heartbeat", c.Session.Heartbeat)
	out.MaxSessions = c.Session.MaxSessions
	return out, err
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = "/static/"
	}
	if c.Publish.Out == "" && c.Publish.Bucket == "" {
		c.Publish.Out = DefaultPublishOut
	}
}

// Exists reports whether a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up from startDir to the directory containing
// marquee.json. Returns ErrNotFound when no parent has one.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent", ErrNotFound, startDir)
		}
		dir = parent
	}
}
