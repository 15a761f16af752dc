package sheet

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	enc "github.com/MrJamesThe3rd/agencyops/internal/encoding"
	"github.com/MrJamesThe3rd/agencyops/internal/forecast"
)

// Parser reads one kind of CSV sheet into a forecast snapshot.
// Rows before the header are ignored, so exports with a title block are accepted.
type Parser struct {
	profile Profile
}

func NewParser(p Profile) *Parser {
	return &Parser{profile: p}
}

func (p *Parser) Parse(r io.Reader) (forecast.Snapshot, error) {
	reader, err := enc.NewCSVReader(r)
	if err != nil {
		return forecast.Snapshot{}, err
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return forecast.Snapshot{}, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := detectHeader(p.profile, rows)
	if !ok {
		return forecast.Snapshot{}, fmt.Errorf("no %s header found: expected columns %s",
			p.profile.Name, strings.Join(requiredKeys(p.profile), ", "))
	}

	var snap forecast.Snapshot

	seen := make(map[string]int)

	for i, row := range rows[headerIdx+1:] {
		if blank(row) {
			continue
		}

		line := headerIdx + i + 2 // 1-based, skipping header

		rec := &record{
			sheet: p.profile.Name,
			line:  line,
			cells: cols.values(row),
			diags: &snap.Diagnostics,
		}
		rec.id = rec.identity(seen)

		p.profile.build(rec, &snap)
	}

	return snap, nil
}

// colIndex maps column keys to their index in the row.
type colIndex map[string]int

func (c colIndex) values(row []string) map[string]string {
	out := make(map[string]string, len(c))

	for key, idx := range c {
		if idx < len(row) {
			out[key] = strings.TrimSpace(row[idx])
		}
	}

	return out
}

// detectHeader scans rows for the first one that carries every required column of p.
func detectHeader(p Profile, rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		seen := make(map[string]int, len(row))

		for i, cell := range row {
			if name := normalizeHeader(cell); name != "" {
				if _, dup := seen[name]; !dup {
					seen[name] = i
				}
			}
		}

		cols := make(colIndex)

		for _, c := range p.Columns {
			for _, name := range c.names() {
				if idx, ok := seen[name]; ok {
					cols[c.Key] = idx
					break
				}
			}
		}

		if hasRequired(p, cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasRequired(p Profile, cols colIndex) bool {
	for _, c := range p.Columns {
		if _, ok := cols[c.Key]; c.Required && !ok {
			return false
		}
	}

	return true
}

func requiredKeys(p Profile) []string {
	var keys []string

	for _, c := range p.Columns {
		if c.Required {
			keys = append(keys, c.Key)
		}
	}

	return keys
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// sheetNamespace seeds the IDs of rows that carry none, so re-importing the same file
// yields the same record IDs.
var sheetNamespace = uuid.MustParse("5f0d3c1e-8a52-4c8e-9b7e-2f6a1d0c4b93")

// identity derives a row's ID from its id cell or, lacking one, from its contents. Identical
// rows are told apart by how many copies precede them, never by line number, so sorting a
// sheet keeps its IDs.
func (r *record) identity(seen map[string]int) uuid.UUID {
	if s := r.cells["id"]; s != "" {
		if id, err := uuid.Parse(s); err == nil {
			return id
		}

		return uuid.NewSHA1(sheetNamespace, []byte(r.sheet+":"+s))
	}

	keys := slices.Sorted(maps.Keys(r.cells))

	var b strings.Builder

	b.WriteString(r.sheet)

	for _, k := range keys {
		fmt.Fprintf(&b, "\x1f%s=%s", k, r.cells[k])
	}

	content := b.String()
	n := seen[content]
	seen[content]++

	return uuid.NewSHA1(sheetNamespace, fmt.Appendf(nil, "%s\x1e%d", content, n))
}
