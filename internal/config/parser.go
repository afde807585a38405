package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/carousel/internal/assets"
	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

const (
	defaultQuality      = 2
	defaultAssetTimeout = 30 * time.Second
	defaultAddr         = "127.0.0.1:8080"
)

// DefaultDataDir is ~/.carousel.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".carousel"), nil
}

// DefaultPath is ~/.carousel/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg := defaults(dir)
	resolve(cfg)
	return cfg, nil
}

func defaults(dataDir string) *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  dataDir,
		Store:    StoreConfig{Backend: "file"},
		Export:   ExportConfig{Quality: defaultQuality, AssetTimeout: Duration(defaultAssetTimeout)},
		Uploads:  UploadsConfig{MaxBytes: assets.MaxUploadBytes},
		Server:   ServerConfig{Addr: defaultAddr},
	}
}

// Load reads the configuration at path. An empty path means DefaultPath,
// which may be missing; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default()
		}
		return nil, carouselerrors.NewParseError(path, 0, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes and validates configuration bytes. Unset fields keep
// their defaults. path is used for errors.
func ParseConfig(path string, data []byte) (*Config, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}
	cfg := defaults(dir)

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, carouselerrors.NewParseError(path, extractLine(err), err)
	}

	resolve(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve expands ~ and derives paths that were left empty from DataDir.
func resolve(cfg *Config) {
	cfg.DataDir = expandHome(cfg.DataDir)
	if cfg.Store.Path == "" {
		switch cfg.Store.Backend {
		case "git":
			cfg.Store.Path = filepath.Join(cfg.DataDir, "repo")
		case "sqlite":
			cfg.Store.Path = filepath.Join(cfg.DataDir, "carousel.db")
		default:
			cfg.Store.Path = filepath.Join(cfg.DataDir, "documents")
		}
	}
	if cfg.Uploads.Dir == "" {
		cfg.Uploads.Dir = filepath.Join(cfg.DataDir, "uploads")
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Uploads.Dir = expandHome(cfg.Uploads.Dir)
	cfg.Translate.Glossary = expandHome(cfg.Translate.Glossary)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Env returns the value of the environment variable named by name, or "".
func Env(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
