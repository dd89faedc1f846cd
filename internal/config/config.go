package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smallie-dev/smallie/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "smallie.json"

	// DefaultPort is the default live server port.
	DefaultPort = 7070

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultNamespace prefixes every Prometheus metric.
	DefaultNamespace = "smallie"

	// DefaultSnapshotDir is where the file snapshot store writes.
	DefaultSnapshotDir = "snapshots"
)

// Config represents the complete smallie.json configuration.
type Config struct {
	// Name is the application name, used as the page title.
	Name string `json:"name,omitempty"`

	// Live contains live server configuration.
	Live LiveConfig `json:"live,omitempty"`

	// Snapshot contains snapshot store configuration.
	Snapshot SnapshotConfig `json:"snapshot,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LiveConfig contains live server settings.
type LiveConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout bounds reading a request (e.g., "10s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds writing a single WebSocket frame.
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`

	// AllowedOrigins lists the origins allowed to open a session.
	// Empty allows same-origin requests only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`

	// MaxSessions caps concurrent sessions. 0 means unlimited.
	MaxSessions int `json:"maxSessions,omitempty"`
}

// SnapshotConfig selects and configures the snapshot store.
type SnapshotConfig struct {
	// Driver is "file" or "s3".
	Driver string `json:"driver,omitempty"`

	// Dir is the output directory of the file driver.
	Dir string `json:"dir,omitempty"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint (MinIO, R2, ...).
	Endpoint string `json:"endpoint,omitempty"`

	// PathStyle forces path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled wraps every event dispatch in a span.
	Enabled bool `json:"enabled"`

	// TracerName is the instrumentation name passed to the tracer provider.
	TracerName string `json:"tracerName,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "smallie",
		Live: LiveConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     "10s",
			WriteTimeout:    "10s",
			ShutdownTimeout: "5s",
		},
		Snapshot: SnapshotConfig{
			Driver: "file",
			Dir:    DefaultSnapshotDir,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			Enabled:    true,
			TracerName: "github.com/smallie-dev/smallie",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for smallie.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No smallie.json found in " + filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse smallie.json: " + err.Error()).
			WithSuggestion("Check that smallie.json is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads smallie.json from dir. A missing file is not an error:
// the defaults are returned with found set to false.
func LoadOrDefault(dir string) (cfg *Config, found bool, err error) {
	cfg, err = Load(dir)
	if err == nil {
		return cfg, true, nil
	}
	if IsNotFound(err) {
		return New(), false, nil
	}
	return nil, false, err
}

// IsNotFound reports whether err is the missing-file error of Load.
func IsNotFound(err error) bool {
	e, ok := err.(*errors.Error)
	return ok && e.Code == "E121"
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
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

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "smallie"
	}

	// Live
	if c.Live.Host == "" {
		c.Live.Host = DefaultHost
	}
	if c.Live.ReadTimeout == "" {
		c.Live.ReadTimeout = "10s"
	}
	if c.Live.WriteTimeout == "" {
		c.Live.WriteTimeout = "10s"
	}
	if c.Live.ShutdownTimeout == "" {
		c.Live.ShutdownTimeout = "5s"
	}

	// Snapshot
	if c.Snapshot.Driver == "" {
		c.Snapshot.Driver = "file"
	}
	if c.Snapshot.Driver == "file" && c.Snapshot.Dir == "" {
		c.Snapshot.Dir = DefaultSnapshotDir
	}

	// Metrics and tracing
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "github.com/smallie-dev/smallie"
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Live.Port < 0 || c.Live.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Live.Port))
	}
	if c.Live.MaxSessions < 0 {
		return errors.Newf(errors.CategoryConfig, "live.maxSessions must not be negative")
	}

	for name, v := range map[string]string{
		"live.readTimeout":     c.Live.ReadTimeout,
		"live.writeTimeout":    c.Live.WriteTimeout,
		"live.shutdownTimeout": c.Live.ShutdownTimeout,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return errors.New("E123").
				WithDetail(name + ": " + err.Error()).
				Wrap(err)
		}
	}

	switch c.Snapshot.Driver {
	case "file":
		if c.Snapshot.Dir == "" {
			return errors.New("E142").WithDetail("snapshot.dir is required for the file driver")
		}
	case "s3":
		if c.Snapshot.Bucket == "" {
			return errors.New("E142").WithDetail("snapshot.bucket is required for the s3 driver")
		}
	default:
		return errors.New("E140").WithDetail("Unknown snapshot driver " + strconv.Quote(c.Snapshot.Driver))
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E124").WithDetail("Unknown log level " + strconv.Quote(c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E124").WithDetail("Unknown log format " + strconv.Quote(c.Log.Format))
	}
	return nil
}

// Address returns the host:port the live server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Live.Host, strconv.Itoa(c.Live.Port))
}

// URL returns the URL of the live server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// ReadTimeout returns live.readTimeout as a duration.
func (c *Config) ReadTimeout() time.Duration {
	return duration(c.Live.ReadTimeout, 10*time.Second)
}

// WriteTimeout returns live.writeTimeout as a duration.
func (c *Config) WriteTimeout() time.Duration {
	return duration(c.Live.WriteTimeout, 10*time.Second)
}

// ShutdownTimeout returns live.shutdownTimeout as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return duration(c.Live.ShutdownTimeout, 5*time.Second)
}

// SnapshotDir returns the file store directory, resolved against the config
// file's directory.
func (c *Config) SnapshotDir() string {
	path := c.Snapshot.Dir
	if path == "" {
		path = DefaultSnapshotDir
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func duration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing smallie.json, or an error if not found.
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
			return "", errors.New("E121").
				WithDetail("No smallie.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}
