package generator

import (
	"strings"

	"spaceescape/pkg/game/manifest"
)

// Theme is a named keyword group. A manifest row belongs to the first theme
// with a keyword contained in its name.
type Theme struct {
	Name     string
	Keywords []string
}

// GenericTheme collects the rows no theme claims
const GenericTheme = "Generic"

// DefaultThemes are the ship's room groups in matching order
var DefaultThemes = []Theme{
	{Name: "Engineering", Keywords: []string{"Engine"}},
	{Name: "Science", Keywords: []string{"Server", "Lab", "Laser"}},
	{Name: "Officer", Keywords: []string{"Officer", "Bridge", "Captain"}},
	{Name: "Crew", Keywords: []string{"Mess", "Crew", "Infirm"}},
	{Name: "Weapons", Keywords: []string{"Armor", "Gun", "Shield"}},
}

// Matches reports whether name contains one of the theme's keywords
func (t Theme) Matches(name string) bool {
	for _, kw := range t.Keywords {
		if containsKeyword(name, kw) {
			return true
		}
	}
	return false
}

type themeGroup struct {
	theme Theme
	rows  []manifest.GenRow
}

// groupByTheme splits rows into one group per theme, keeping theme order, and
// returns the unclaimed rows separately
func groupByTheme(rows []manifest.GenRow, themes []Theme) ([]themeGroup, []manifest.GenRow) {
	groups := make([]themeGroup, len(themes))
	for i, t := range themes {
		groups[i].theme = t
	}
	var generic []manifest.GenRow

rows:
	for _, row := range rows {
		for i := range groups {
			if groups[i].theme.Matches(row.Name) {
				groups[i].rows = append(groups[i].rows, row)
				continue rows
			}
		}
		generic = append(generic, row)
	}
	return groups, generic
}

func containsKeyword(name, keyword string) bool {
	return keyword != "" && strings.Contains(name, keyword)
}

// rowPool holds the rows not yet placed, in shuffled order
type rowPool struct {
	rows []manifest.GenRow
}

func newRowPool(rows []manifest.Row) *rowPool {
	p := &rowPool{rows: make([]manifest.GenRow, 0, len(rows))}
	for _, r := range rows {
		p.rows = append(p.rows, r.Gen())
	}
	return p
}

// find returns the index of the first row matching keyword, or -1
func (p *rowPool) find(keyword string) int {
	for i, r := range p.rows {
		if r.Matches(keyword) {
			return i
		}
	}
	return -1
}

// take removes and returns the row at i
func (p *rowPool) take(i int) manifest.GenRow {
	row := p.rows[i]
	p.rows = append(p.rows[:i], p.rows[i+1:]...)
	return row
}

// takeMatching removes and returns the first row matching keyword
func (p *rowPool) takeMatching(keyword string) (manifest.GenRow, bool) {
	i := p.find(keyword)
	if i < 0 {
		return manifest.GenRow{}, false
	}
	return p.take(i), true
}

// drain removes and returns every remaining row
func (p *rowPool) drain() []manifest.GenRow {
	rows := p.rows
	p.rows = nil
	return rows
}
