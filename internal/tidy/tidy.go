// Package tidy implements the BibTeX tidying engine: duplicate
// detection and merging, entry sorting, field normalization, and
// deterministic serialization of a parsed document.
package tidy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
)

// Duplicate records one merged-away entry and the entry it was folded
// into. The duplicate is excluded from output but kept for auditing.
type Duplicate struct {
	Entry       *bibtex.Entry
	DuplicateOf *bibtex.Entry
}

// Result is the outcome of one tidy run.
type Result struct {
	// Bibtex is the serialized document.
	Bibtex string

	// Entries are the surviving entries in output order.
	Entries []*bibtex.Entry

	// Duplicates lists entries merged away, in detection order.
	Duplicates []Duplicate

	// Frequency of each raw booktitle, journal, and publisher value
	// across all input entries, duplicates included.
	Proceedings map[string]int
	Journals    map[string]int
	Publishers  map[string]int
}

// Tidy transforms a parsed document according to opts and serializes
// it. The document is modified in place: surviving entries may gain
// properties back-filled from merged duplicates, and Citations and
// SortIndex are populated when the corresponding options are set.
// Output is a pure function of (document, options).
func Tidy(doc *bibtex.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("tidy: nil document")
	}

	res := &Result{
		Proceedings: make(map[string]int),
		Journals:    make(map[string]int),
		Publishers:  make(map[string]int),
	}

	countContainers(doc.Entries, res)

	if opts.Tex != "" {
		for _, e := range doc.Entries {
			// strings.Count matches the empty string everywhere.
			if e.ID == "" {
				continue
			}
			e.Citations = strings.Count(opts.Tex, e.ID)
		}
	}

	entries := doc.Entries
	if opts.Merge {
		entries, res.Duplicates = mergeDuplicates(entries)
	}
	if opts.Sort {
		entries = orderEntries(entries, opts.SortFields)
	}
	res.Entries = entries

	res.Bibtex = assemble(doc, entries, opts, res)
	return res, nil
}

// countContainers tallies raw container-field values. Keys are the
// exact property values, case-sensitive.
func countContainers(entries []*bibtex.Entry, res *Result) {
	for _, e := range entries {
		if p, ok := e.Get("booktitle"); ok {
			res.Proceedings[p.Value]++
		}
		if p, ok := e.Get("journal"); ok {
			res.Journals[p.Value]++
		}
		if p, ok := e.Get("publisher"); ok {
			res.Publishers[p.Value]++
		}
	}
}

var nonWordRe = regexp.MustCompile(`\W`)

// normalizeKey strips non-word characters and lowercases, producing
// comparison keys for fingerprints and sort components.
func normalizeKey(s string) string {
	return strings.ToLower(nonWordRe.ReplaceAllString(s, ""))
}
