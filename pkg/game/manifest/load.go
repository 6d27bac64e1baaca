package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultManifest is the room list of the stock ship.
//
//go:embed rooms.csv
var defaultManifest []byte

// Default returns the rows of the embedded stock manifest
func Default() ([]Row, error) {
	rows, err := ParseCSV(bytes.NewReader(defaultManifest))
	if err != nil {
		return nil, fmt.Errorf("embedded manifest: %w", err)
	}
	return rows, nil
}

// Load reads a manifest file, choosing the format from its extension:
// .yaml and .yml are YAML, anything else is CSV. An empty path loads the
// embedded stock manifest.
func Load(path string) ([]Row, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest %s: %w", path, err)
	}
	defer f.Close()

	var rows []Row
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		rows, err = ParseYAML(f)
	default:
		rows, err = ParseCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return rows, nil
}
