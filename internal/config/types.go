package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the user configuration, normally ~/.carousel/config.yaml.
type Config struct {
	LogLevel  string          `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	DataDir   string          `yaml:"data_dir" validate:"required,local_path"`
	Store     StoreConfig     `yaml:"store"`
	Export    ExportConfig    `yaml:"export"`
	Uploads   UploadsConfig   `yaml:"uploads"`
	Server    ServerConfig    `yaml:"server"`
	Translate TranslateConfig `yaml:"translate"`
	Generate  GenerateConfig  `yaml:"generate"`
}

// StoreConfig selects the document store. Path is a directory for the file
// and git backends and a database file for sqlite.
type StoreConfig struct {
	Backend string `yaml:"backend" validate:"oneof=file git sqlite"`
	Path    string `yaml:"path" validate:"required,local_path"`
}

// ExportConfig holds the export defaults.
type ExportConfig struct {
	Quality float64 `yaml:"quality" validate:"min=1,max=4"`
	// AssetTimeout bounds image loading per slide. Zero means unbounded.
	AssetTimeout Duration `yaml:"asset_timeout" validate:"nonnegative"`
}

type UploadsConfig struct {
	MaxBytes int64  `yaml:"max_bytes" validate:"min=1"`
	Dir      string `yaml:"dir" validate:"required,local_path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"listen_addr"`
}

// TranslateConfig configures the translation service. A glossary is used
// when no endpoint is set.
type TranslateConfig struct {
	Glossary  string `yaml:"glossary" validate:"omitempty,local_path"`
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// GenerateConfig configures the generation service. The offline outline
// generator is used when no endpoint is set.
type GenerateConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Handle    string `yaml:"handle" validate:"max=60"`
}

// Duration is a time.Duration written as "30s" or "2m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q", node.Line, raw)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
