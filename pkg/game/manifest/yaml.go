package manifest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlManifest is the YAML form of a manifest:
//
//	rooms:
//	  - name: Bridge
//	    north: Teleporter 3
//	    item: None
type yamlManifest struct {
	Rooms []yamlRoom `yaml:"rooms"`
}

type yamlRoom struct {
	Name  string `yaml:"name"`
	North string `yaml:"north,omitempty"`
	South string `yaml:"south,omitempty"`
	East  string `yaml:"east,omitempty"`
	West  string `yaml:"west,omitempty"`
	Item  string `yaml:"item,omitempty"`
}

// ParseYAML reads a YAML manifest. Omitted links and items are None.
func ParseYAML(r io.Reader) ([]Row, error) {
	var doc yamlManifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyManifest
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	rows := make([]Row, 0, len(doc.Rooms))
	for i, room := range doc.Rooms {
		row, err := FromFields([]string{room.Name, room.North, room.South, room.East, room.West, room.Item}, i+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := CheckRows(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// MarshalYAML renders rows in the YAML manifest form
func MarshalYAML(rows []Row) ([]byte, error) {
	doc := yamlManifest{Rooms: make([]yamlRoom, 0, len(rows))}
	for _, r := range rows {
		doc.Rooms = append(doc.Rooms, yamlRoom{
			Name:  r.Name,
			North: dropNone(r.North),
			South: dropNone(r.South),
			East:  dropNone(r.East),
			West:  dropNone(r.West),
			Item:  dropNone(r.Item),
		})
	}
	return yaml.Marshal(doc)
}

func dropNone(s string) string {
	if s == "None" {
		return ""
	}
	return s
}
