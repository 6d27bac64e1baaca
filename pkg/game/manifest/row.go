// Package manifest reads the ship's room list. Each row names a room, the rooms
// it connects to in the four directions and the item it holds.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"spaceescape/pkg/engine/world"
)

var (
	// ErrMalformedRow is returned for a row that does not have the six fields
	ErrMalformedRow = errors.New("malformed manifest row")
	// ErrEmptyManifest is returned when a manifest has no room rows
	ErrEmptyManifest = errors.New("manifest has no rooms")
	// ErrDuplicateRoom is returned when two rows share a room name
	ErrDuplicateRoom = errors.New("duplicate room name")
)

// Fields is the number of columns in a manifest row
const Fields = 6

// Row is one manifest entry in file order: name, north, south, east, west, item.
type Row struct {
	Name  string
	North string
	South string
	East  string
	West  string
	Item  string

	// Line is the 1-based source line, 0 when unknown
	Line int
}

// StaticRow is a row as the static loader reads it: identity, links and item
type StaticRow struct {
	Name  string
	Item  string
	Links [4]string // indexed by world.Direction
}

// GenRow is a row as the procedural generator reads it: only name and item,
// connections are derived from placement
type GenRow struct {
	Name string
	Item string
}

// Static returns the static view of the row
func (r Row) Static() StaticRow {
	var s StaticRow
	s.Name = r.Name
	s.Item = r.Item
	s.Links[world.North] = r.North
	s.Links[world.South] = r.South
	s.Links[world.East] = r.East
	s.Links[world.West] = r.West
	return s
}

// Gen returns the procedural view of the row
func (r Row) Gen() GenRow {
	return GenRow{Name: r.Name, Item: r.Item}
}

// Matches reports whether the row's name contains keyword
func (r GenRow) Matches(keyword string) bool {
	return strings.Contains(r.Name, keyword)
}

// FromFields builds a row from raw columns. Missing optional columns are not
// allowed; blank link and item columns are read as None.
func FromFields(fields []string, line int) (Row, error) {
	if len(fields) < Fields {
		return Row{}, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedRow, line, len(fields), Fields)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	row := Row{
		Name:  fields[0],
		North: orNone(fields[1]),
		South: orNone(fields[2]),
		East:  orNone(fields[3]),
		West:  orNone(fields[4]),
		Item:  orNone(fields[5]),
		Line:  line,
	}
	if err := row.Validate(); err != nil {
		return Row{}, err
	}
	return row, nil
}

// Validate checks that the row names a real room
func (r Row) Validate() error {
	if world.IsNone(r.Name) {
		return fmt.Errorf("%w: line %d has no room name", ErrMalformedRow, r.Line)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return world.None
	}
	return s
}

// CheckRows fails on an empty row list or on a name used by more than one row.
// Links are resolved by name, so names must identify a single room.
func CheckRows(rows []Row) error {
	if len(rows) == 0 {
		return ErrEmptyManifest
	}
	seen := mapset.New[string]()
	for _, r := range rows {
		if seen.Has(r.Name) {
			return fmt.Errorf("%w: %q on line %d", ErrDuplicateRoom, r.Name, r.Line)
		}
		seen.Put(r.Name)
	}
	return nil
}
