package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem interface for file operations (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct .env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// envPrefix namespaces the library's environment variables, e.g.
// FPIPE_RESOLVER_MAX_DEPTH or FPIPE_LOGGING_LEVEL.
const envPrefix = "FPIPE"

// Load loads library settings. Precedence (low to high): defaults,
// config.yml, .env file, process environment.
func Load(opts ...LoaderOption) (Settings, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}

	if lc.ConfigFile == "" {
		lc.ConfigFile = findConfigFile(lc.FileSystem)
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findEnvFile(lc.FileSystem)
	}

	v := viper.New()

	// 1. Load YAML config first (base configuration)
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("loading config file %s: %w", lc.ConfigFile, err)
		}
	}

	// 2. Load .env file so its variables participate in env binding
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			return Settings{}, fmt.Errorf("loading env file %s: %w", lc.EnvFile, err)
		}
	}

	// 3. Enable automatic environment variable reading
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKnownKeys(v)

	// 4. Unmarshal into the settings struct
	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("unmarshaling settings: %w", err)
	}

	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// findConfigFile searches for config.yml in standard locations.
func findConfigFile(fs FileSystem) string {
	searchPaths := []string{
		"./config/config.yml",
		"./config.yml",
		"./fpipe.yml",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// findEnvFile searches for .env files in standard locations.
func findEnvFile(fs FileSystem) string {
	searchPaths := []string{
		".env.fpipe",
		".env",
	}
	for _, path := range searchPaths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindKnownKeys registers nested keys with viper so AutomaticEnv can see
// them even when they are absent from the config file.
func bindKnownKeys(v *viper.Viper) {
	keys := []string{
		"name",
		"logging.level",
		"logging.format",
		"logging.output",
		"logging.no_color",
		"logging.no_timestamp",
		"logging.caller",
		"resolver.max_depth",
	}
	for _, key := range keys {
		// BindEnv with a single key derives FPIPE_<KEY> via the replacer.
		_ = v.BindEnv(key)
	}
}
