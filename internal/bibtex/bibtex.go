// Package bibtex defines the BibTeX document model and a parser for it.
package bibtex

// Brace identifies the delimiter style wrapping a field value.
type Brace int

const (
	// BraceCurly wraps the value in {curly braces}.
	BraceCurly Brace = iota
	// BraceQuote wraps the value in "double quotes".
	BraceQuote
	// BraceNone leaves the value bare (numbers, month macros, string refs).
	BraceNone
)

// Property is a single field value with its original delimiter style.
type Property struct {
	Value string
	Brace Brace
}

// Entry represents one bibliographic record (@type{id, field = value, ...}).
type Entry struct {
	Type string // lowercased entry type, e.g. "article"
	ID   string // citation key

	// Fields holds lowercased field names in source order; Properties maps
	// each name to its value. Insertion order is preserved for output.
	Fields     []string
	Properties map[string]Property

	// Comments are the raw comment lines immediately preceding the entry.
	Comments []string

	// Citations is the number of occurrences of ID in an external text
	// corpus. Populated during tidying when a corpus is supplied.
	Citations int

	// SortIndex is the composite sort key. Present only when sorting.
	SortIndex string
}

// Get returns the named property and whether it exists.
func (e *Entry) Get(field string) (Property, bool) {
	p, ok := e.Properties[field]
	return p, ok
}

// Set stores a property, appending the field name on first insertion so
// output order tracks insertion order.
func (e *Entry) Set(field string, p Property) {
	if e.Properties == nil {
		e.Properties = make(map[string]Property)
	}
	if _, exists := e.Properties[field]; !exists {
		e.Fields = append(e.Fields, field)
	}
	e.Properties[field] = p
}

// Delete removes a property if present.
func (e *Entry) Delete(field string) {
	if _, exists := e.Properties[field]; !exists {
		return
	}
	delete(e.Properties, field)
	for i, f := range e.Fields {
		if f == field {
			e.Fields = append(e.Fields[:i], e.Fields[i+1:]...)
			break
		}
	}
}

// Preamble is the document @preamble block, if any.
type Preamble struct {
	Value string
	Brace Brace
}

// Document is a parsed BibTeX file.
type Document struct {
	Preamble       *Preamble
	CommentsBefore []string // comments before the first entry not attached to it
	CommentsAfter  []string // comments after the last entry
	Entries        []*Entry
}
