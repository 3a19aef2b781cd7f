package tidy

import (
	"sort"
	"strings"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
)

// sortKey builds the composite sort key for an entry: one component
// per configured field, joined by single spaces. The id and type
// fields read the entry's own attributes; anything else reads the
// named property, normalized, or contributes an empty component.
func sortKey(e *bibtex.Entry, fields []string) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		switch field {
		case "id":
			parts[i] = strings.ToLower(e.ID)
		case "type":
			parts[i] = strings.ToLower(e.Type)
		default:
			if p, ok := e.Get(field); ok {
				parts[i] = normalizeKey(p.Value)
			}
		}
	}
	return strings.Join(parts, " ")
}

// orderEntries sorts entries ascending by composite key. The sort is
// stable: equal keys keep their input order. An empty field list
// means sort by citation key.
func orderEntries(entries []*bibtex.Entry, fields []string) []*bibtex.Entry {
	if len(fields) == 0 {
		fields = []string{"id"}
	}

	sorted := make([]*bibtex.Entry, len(entries))
	copy(sorted, entries)
	for _, e := range sorted {
		e.SortIndex = sortKey(e, fields)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortIndex < sorted[j].SortIndex
	})
	return sorted
}
