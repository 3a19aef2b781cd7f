package tidy

import (
	"regexp"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
)

// fingerprint is the per-entry duplicate-detection key. Empty string
// components with present=false never match.
type fingerprint struct {
	entry       *bibtex.Entry
	doi         string
	hasDOI      bool
	abstract    string
	hasAbstract bool
	authorTitle string
}

// surnameRe captures the first token preceding a comma, the word
// "and", the word "et", or end of string.
var surnameRe = regexp.MustCompile(`([^\s,]*)(,| and | et |$)`)

// firstAuthorSurname extracts the first author's surname from a raw
// author value. Values with no recognizable surname yield "".
func firstAuthorSurname(author string) string {
	m := surnameRe.FindStringSubmatch(author)
	if m == nil {
		return ""
	}
	return m[1]
}

func fingerprintEntry(e *bibtex.Entry) fingerprint {
	fp := fingerprint{entry: e}

	if p, ok := e.Get("doi"); ok {
		fp.doi = normalizeKey(p.Value)
		fp.hasDOI = true
	}
	if p, ok := e.Get("abstract"); ok {
		fp.abstract = truncate(normalizeKey(p.Value), 100)
		fp.hasAbstract = true
	}

	var surname, title string
	if p, ok := e.Get("author"); ok {
		surname = normalizeKey(firstAuthorSurname(p.Value))
	}
	if p, ok := e.Get("title"); ok {
		title = truncate(normalizeKey(p.Value), 50)
	}
	// Author-title matching is evaluated even when both parts are
	// absent, so two bare entries merge. Deliberately permissive.
	fp.authorTitle = surname + ":" + title

	return fp
}

// FingerprintKeys returns the normalized DOI and author-title
// components of an entry's duplicate fingerprint. The DOI is empty
// when the entry has none; the author-title component is always
// present (an entry with neither author nor title yields ":").
func FingerprintKeys(e *bibtex.Entry) (doi, authorTitle string) {
	fp := fingerprintEntry(e)
	return fp.doi, fp.authorTitle
}

// mergeDuplicates folds duplicate entries into their first-seen match
// and returns the surviving entries plus the merge records. A
// duplicate's properties are copied onto the survivor only where the
// survivor lacks them; on conflicts the survivor's value wins.
func mergeDuplicates(entries []*bibtex.Entry) ([]*bibtex.Entry, []Duplicate) {
	var (
		survivors  []*bibtex.Entry
		duplicates []Duplicate
		pool       []fingerprint
	)

	for _, e := range entries {
		fp := fingerprintEntry(e)

		var match *bibtex.Entry
		for _, seen := range pool {
			if fp.hasDOI && seen.hasDOI && fp.doi == seen.doi {
				match = seen.entry
				break
			}
			if fp.hasAbstract && seen.hasAbstract && fp.abstract == seen.abstract {
				match = seen.entry
				break
			}
			if fp.authorTitle == seen.authorTitle {
				match = seen.entry
				break
			}
		}

		if match == nil {
			pool = append(pool, fp)
			survivors = append(survivors, e)
			continue
		}

		duplicates = append(duplicates, Duplicate{Entry: e, DuplicateOf: match})
		for _, field := range e.Fields {
			if _, exists := match.Get(field); !exists {
				// Property is a value type, so this is a copy; the
				// survivor owns it outright.
				match.Set(field, e.Properties[field])
			}
		}
	}

	return survivors, duplicates
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
