package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFiles are the file names LoadProject looks for, in order.
var ProjectFiles = []string{"software_city.json", "software_city.yaml", "software_city.yml"}

// ErrNoProjectFile is returned when a project directory has no city document.
var ErrNoProjectFile = errors.New("no software city document found")

// Parse decodes a JSON or YAML city document.
func Parse(data []byte) (*CityData, error) {
	var d CityData
	if isJSON(data) {
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing city document: %w", err)
		}
		return &d, nil
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing city document: %w", err)
	}
	return &d, nil
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Load reads a city document from a JSON or YAML file.
func Load(path string) (*CityData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading city document: %w", err)
	}
	return Parse(data)
}

// FindProjectFile returns the path of the city document inside projectDir.
func FindProjectFile(projectDir string) (string, error) {
	for _, name := range ProjectFiles {
		p := filepath.Join(projectDir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", projectDir, ErrNoProjectFile)
}

// LoadProject loads the city document from a project directory, or from the
// file itself when path is not a directory.
func LoadProject(path string) (*CityData, error) {
	docPath, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	return Load(docPath)
}

// ResolvePath maps a project directory or document path to the document path.
func ResolvePath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading project: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	return FindProjectFile(path)
}
