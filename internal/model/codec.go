package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	carouselerrors "github.com/alexisbeaulieu97/carousel/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Format is an on-disk document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serialises the carousel as indented JSON, the persistence wire format.
func Encode(c Carousel) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Decode parses a carousel from JSON or YAML. YAML documents are bridged
// through JSON so both encodings share one block decoder.
func Decode(data []byte, format Format) (Carousel, error) {
	if format == FormatYAML {
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return Carousel{}, err
		}
		bridged, err := json.Marshal(tree)
		if err != nil {
			return Carousel{}, fmt.Errorf("convert yaml document: %w", err)
		}
		data = bridged
	}

	var c Carousel
	if err := json.Unmarshal(data, &c); err != nil {
		return Carousel{}, err
	}
	return c, nil
}

// LoadFile reads a carousel document from disk.
func LoadFile(path string) (Carousel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Carousel{}, carouselerrors.NewParseError(path, 0, err)
	}

	c, err := Decode(data, FormatForPath(path))
	if err != nil {
		return Carousel{}, carouselerrors.NewParseError(path, extractLine(err), err)
	}
	return c, nil
}

// SaveFile writes the carousel to disk, encoded according to the extension.
func SaveFile(path string, c Carousel) error {
	var (
		data []byte
		err  error
	)
	if FormatForPath(path) == FormatYAML {
		data, err = encodeYAML(c)
	} else {
		data, err = Encode(c)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func encodeYAML(c Carousel) ([]byte, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow styles inherited from the JSON source.
func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
