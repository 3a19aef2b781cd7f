package tidy

import "strings"

// Options controls the tidying pipeline. The zero value gives the
// default behavior: no sorting, no merging, two-space indent, special
// character escaping on.
type Options struct {
	// Omit lists field names to drop from output.
	Omit []string

	// Curly forces curly-brace delimiters on all values.
	Curly bool

	// Numeric renders pure-number values and recognized months as bare
	// unquoted tokens.
	Numeric bool

	// Space is the number of spaces per indent level. Ignored when Tab
	// is set; zero means the default of 2.
	Space int

	// Tab indents with a tab character instead of spaces.
	Tab bool

	// Tex is an external text corpus scanned for citation-key
	// occurrences. Counts land on Entry.Citations.
	Tex string

	// Metadata appends a synthetic metadata field with citation and
	// container-frequency counts to each entry.
	Metadata bool

	// Sort enables entry sorting. With an empty SortFields it sorts by
	// citation key.
	Sort       bool
	SortFields []string

	// Merge enables duplicate detection and field back-filling.
	Merge bool

	// StripEnclosingBraces removes one redundant outer brace pair from
	// values wrapped in exactly one.
	StripEnclosingBraces bool

	// DropAllCaps title-cases values containing no lowercase letters.
	DropAllCaps bool

	// NoEscape disables the Unicode to LaTeX escape table, which is
	// applied by default.
	NoEscape bool

	// SortProperties reorders fields within each entry by canonical
	// priority.
	SortProperties bool
}

// indent returns the configured indentation unit.
func (o Options) indent() string {
	if o.Tab {
		return "\t"
	}
	n := o.Space
	if n <= 0 {
		n = 2
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// omitSet returns the omit list as a lookup set.
func (o Options) omitSet() map[string]bool {
	if len(o.Omit) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.Omit))
	for _, f := range o.Omit {
		set[strings.ToLower(f)] = true
	}
	return set
}
