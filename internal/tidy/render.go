package tidy

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/LeducH/bibtex-tidy/internal/bibtex"
)

// fieldNameWidth is the column the = sign is aligned to.
const fieldNameWidth = 14

// fieldOrder is the canonical field priority used by sortProperties.
// Fields not listed sort after all listed fields, keeping their
// relative order.
var fieldOrder = []string{
	"title", "shorttitle", "author", "year", "month", "day",
	"journal", "booktitle", "location", "on", "publisher", "address",
	"series", "volume", "number", "pages", "doi", "isbn", "issn",
	"url", "urldate", "copyright", "category", "note", "metadata",
}

var fieldRank = func() map[string]int {
	m := make(map[string]int, len(fieldOrder))
	for i, f := range fieldOrder {
		m[f] = i
	}
	return m
}()

var (
	newlineRunRe = regexp.MustCompile(`\s*\n\s*`)
	wordRe       = regexp.MustCompile(`\S+`)
	pageRangeRe  = regexp.MustCompile(`(\d)\s*-\s*(\d)`)
)

var monthAbbrevs = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true,
	"may": true, "jun": true, "jul": true, "aug": true,
	"sep": true, "oct": true, "nov": true, "dec": true,
}

// renderValue runs the value transformation steps in their fixed
// order and returns the delimited output token.
func renderValue(field string, p bibtex.Property, opts Options) string {
	v := newlineRunRe.ReplaceAllString(p.Value, " ")
	v = strings.TrimSpace(v)

	if opts.StripEnclosingBraces && whollyBraced(v) {
		v = v[1 : len(v)-1]
	}

	if opts.DropAllCaps && !strings.ContainsFunc(v, unicode.IsLower) {
		v = wordRe.ReplaceAllStringFunc(v, titleCaseWord)
	}

	if !opts.NoEscape {
		v = escapeValue(v)
	}

	if field == "pages" {
		v = normalizePageRange(v)
	}

	if opts.Numeric {
		if isAllDigits(v) {
			return canonicalNumber(v)
		}
		if field == "month" {
			if abbr, ok := monthToken(v); ok {
				return abbr
			}
		}
	}

	switch {
	case p.Brace == bibtex.BraceCurly || opts.Curly:
		return "{" + v + "}"
	case p.Brace == bibtex.BraceQuote:
		return "\"" + v + "\""
	default:
		return v
	}
}

// whollyBraced reports whether the entire value is wrapped in exactly
// one matching pair of braces.
func whollyBraced(v string) bool {
	if len(v) < 2 || v[0] != '{' || v[len(v)-1] != '}' {
		return false
	}
	depth := 0
	for i := 0; i < len(v)-1; i++ {
		switch v[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return false // outer pair closes early
			}
		}
	}
	return depth == 1
}

func titleCaseWord(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

// normalizePageRange rewrites the first digit-hyphen-digit range to
// use a double hyphen. Already-doubled ranges are left alone.
func normalizePageRange(v string) string {
	loc := pageRangeRe.FindStringSubmatchIndex(v)
	if loc == nil {
		return v
	}
	return v[:loc[0]] + v[loc[2]:loc[3]] + "--" + v[loc[4]:loc[5]] + v[loc[1]:]
}

func isAllDigits(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// canonicalNumber strips leading zeros from an all-digit value.
func canonicalNumber(v string) string {
	trimmed := strings.TrimLeft(v, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// monthToken recognizes values whose first three characters spell a
// month abbreviation and returns the bare lowercase token.
func monthToken(v string) (string, bool) {
	if len(v) < 3 {
		return "", false
	}
	abbr := strings.ToLower(v[:3])
	if monthAbbrevs[abbr] {
		return abbr, true
	}
	return "", false
}

// orderFields stable-sorts field names by canonical priority. Listed
// fields come first by list position; unlisted fields keep their
// relative order after them.
func orderFields(fields []string) []string {
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	rank := func(f string) int {
		if r, ok := fieldRank[f]; ok {
			return r
		}
		return len(fieldOrder)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})
	return sorted
}

// renderEntry serializes one entry: preceding comments, header,
// aligned fields, optional metadata summary.
func renderEntry(e *bibtex.Entry, opts Options, res *Result) string {
	omit := opts.omitSet()
	var fields []string
	for _, f := range e.Fields {
		if omit[f] {
			continue
		}
		// A metadata field parsed from earlier output is superseded by
		// the freshly computed summary below.
		if opts.Metadata && f == "metadata" {
			continue
		}
		fields = append(fields, f)
	}
	if opts.SortProperties {
		fields = orderFields(fields)
	}

	indent := opts.indent()
	var lines []string
	for _, f := range fields {
		lines = append(lines, fmt.Sprintf("%s%-*s= %s", indent, fieldNameWidth, f, renderValue(f, e.Properties[f], opts)))
	}
	if opts.Metadata {
		lines = append(lines, fmt.Sprintf("%s%-*s= %s", indent, fieldNameWidth, "metadata", metadataValue(e, res)))
	}

	var b strings.Builder
	for _, c := range e.Comments {
		b.WriteString(commentLine(c))
		b.WriteString("\n")
	}
	b.WriteString("@")
	b.WriteString(strings.ToLower(e.Type))
	b.WriteString("{")
	b.WriteString(e.ID)
	b.WriteString(",\n")
	if len(lines) > 0 {
		b.WriteString(strings.Join(lines, ",\n"))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// metadataValue builds the curly-braced usage summary for an entry.
// Container counts appear only for container fields the entry has.
func metadataValue(e *bibtex.Entry, res *Result) string {
	parts := []string{"citations: " + strconv.Itoa(e.Citations)}
	if p, ok := e.Get("booktitle"); ok {
		parts = append(parts, "bookcount: "+strconv.Itoa(res.Proceedings[p.Value]))
	}
	if p, ok := e.Get("journal"); ok {
		parts = append(parts, "journalcount: "+strconv.Itoa(res.Journals[p.Value]))
	}
	if p, ok := e.Get("publisher"); ok {
		parts = append(parts, "publishercount: "+strconv.Itoa(res.Publishers[p.Value]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// commentLine prefixes every line of a comment with %. Comments built
// by the parser are single lines already; multi-line strings on
// hand-built documents are split so no line re-emits as bare text.
func commentLine(c string) string {
	if c == "" {
		return "%"
	}
	lines := strings.Split(c, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			lines[i] = "%"
		} else {
			lines[i] = "% " + line
		}
	}
	return strings.Join(lines, "\n")
}

// assemble joins preamble, surrounding comments, and rendered entries
// into the final document text.
func assemble(doc *bibtex.Document, entries []*bibtex.Entry, opts Options, res *Result) string {
	var blocks []string
	for _, c := range doc.CommentsBefore {
		blocks = append(blocks, commentLine(c))
	}
	if doc.Preamble != nil {
		if doc.Preamble.Brace == bibtex.BraceQuote {
			blocks = append(blocks, "@preamble\""+doc.Preamble.Value+"\"")
		} else {
			blocks = append(blocks, "@preamble{"+doc.Preamble.Value+"}")
		}
	}
	for _, e := range entries {
		blocks = append(blocks, renderEntry(e, opts, res))
	}
	for _, c := range doc.CommentsAfter {
		blocks = append(blocks, commentLine(c))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n") + "\n"
}
