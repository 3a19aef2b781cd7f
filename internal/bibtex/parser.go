package bibtex

import (
	"fmt"
	"strings"
	"unicode"
)

// Parse parses BibTeX source text into a Document.
//
// Entry types and field names are lowercased. Value delimiters (curly,
// quoted, bare) are recorded on each Property so output can reproduce
// them. Text outside entries is kept as comments: lines before the
// preamble become CommentsBefore, comment runs directly above an entry
// attach to that entry, and anything after the last entry becomes
// CommentsAfter.
func Parse(src string) (*Document, error) {
	p := &parser{src: src}
	return p.parse()
}

type parser struct {
	src     string
	pos     int
	pending []string // comment lines awaiting an owner
}

func (p *parser) parse() (*Document, error) {
	doc := &Document{}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			break
		}

		if p.src[p.pos] != '@' {
			p.pending = append(p.pending, p.readCommentLine())
			continue
		}

		p.pos++ // consume '@'
		kind := strings.ToLower(p.readName())

		switch kind {
		case "preamble":
			pre, err := p.parsePreamble()
			if err != nil {
				return nil, err
			}
			doc.CommentsBefore = append(doc.CommentsBefore, p.pending...)
			p.pending = nil
			doc.Preamble = pre
		case "comment":
			body, err := p.parseBraced()
			if err != nil {
				return nil, fmt.Errorf("unterminated @comment block: %w", err)
			}
			// One comment string per line, so re-emission can prefix
			// each line individually.
			for _, line := range strings.Split(body, "\n") {
				p.pending = append(p.pending, strings.TrimSpace(line))
			}
		default:
			entry, err := p.parseEntry(kind)
			if err != nil {
				return nil, err
			}
			entry.Comments = p.pending
			p.pending = nil
			doc.Entries = append(doc.Entries, entry)
		}
	}

	if len(doc.Entries) == 0 && doc.Preamble == nil {
		doc.CommentsBefore = append(doc.CommentsBefore, p.pending...)
	} else {
		doc.CommentsAfter = append(doc.CommentsAfter, p.pending...)
	}
	return doc, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

// readCommentLine consumes the rest of the current line as a comment,
// dropping one leading '%' if present.
func (p *parser) readCommentLine() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.pos++
	}
	line := strings.TrimRight(p.src[start:p.pos], " \t\r")
	line = strings.TrimPrefix(line, "%")
	return strings.TrimSpace(line)
}

// readName consumes a run of letters, digits, and name punctuation.
func (p *parser) readName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '{' || c == '}' || c == '(' || c == ',' || c == '=' || c == '"' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parsePreamble() (*Preamble, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unterminated @preamble")
	}
	switch p.src[p.pos] {
	case '{':
		body, err := p.parseBraced()
		if err != nil {
			return nil, fmt.Errorf("unterminated @preamble: %w", err)
		}
		return &Preamble{Value: body, Brace: BraceCurly}, nil
	case '"':
		body, err := p.parseQuoted()
		if err != nil {
			return nil, fmt.Errorf("unterminated @preamble: %w", err)
		}
		return &Preamble{Value: body, Brace: BraceQuote}, nil
	default:
		return nil, fmt.Errorf("expected { or \" after @preamble, got %q", p.src[p.pos])
	}
}

func (p *parser) parseEntry(entryType string) (*Entry, error) {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return nil, fmt.Errorf("expected { after @%s", entryType)
	}
	p.pos++

	// Citation key runs up to the first comma or closing brace.
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, fmt.Errorf("unterminated entry @%s", entryType)
	}
	entry := &Entry{
		Type:       entryType,
		ID:         strings.TrimSpace(p.src[start:p.pos]),
		Properties: make(map[string]Property),
	}

	for {
		// Skip separators between fields.
		for p.pos < len(p.src) && (p.src[p.pos] == ',' || unicode.IsSpace(rune(p.src[p.pos]))) {
			p.pos++
		}
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated entry @%s{%s", entryType, entry.ID)
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return entry, nil
		}

		field := strings.ToLower(strings.TrimSpace(p.readName()))
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			return nil, fmt.Errorf("entry %s: expected = after field %q", entry.ID, field)
		}
		p.pos++
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, fmt.Errorf("unterminated entry @%s{%s", entryType, entry.ID)
		}

		prop, err := p.parseValue()
		if err != nil {
			return nil, fmt.Errorf("entry %s, field %s: %w", entry.ID, field, err)
		}
		entry.Set(field, prop)
	}
}

func (p *parser) parseValue() (Property, error) {
	switch p.src[p.pos] {
	case '{':
		body, err := p.parseBraced()
		if err != nil {
			return Property{}, err
		}
		return Property{Value: body, Brace: BraceCurly}, nil
	case '"':
		body, err := p.parseQuoted()
		if err != nil {
			return Property{}, err
		}
		return Property{Value: body, Brace: BraceQuote}, nil
	default:
		// Bare value: number, month macro, or string reference. Runs to
		// the next comma or entry-closing brace.
		start := p.pos
		for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != '}' {
			p.pos++
		}
		if p.pos >= len(p.src) {
			return Property{}, fmt.Errorf("unterminated value")
		}
		return Property{Value: strings.TrimSpace(p.src[start:p.pos]), Brace: BraceNone}, nil
	}
}

// parseBraced consumes a balanced {...} block starting at the current
// position and returns its inner text.
func (p *parser) parseBraced() (string, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '{' {
		return "", fmt.Errorf("expected {")
	}
	p.pos++
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := p.src[start:p.pos]
				p.pos++
				return body, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unbalanced braces")
}

// parseQuoted consumes a "..." value. Braces may nest inside the quotes
// and a quote inside braces does not terminate the value.
func (p *parser) parseQuoted() (string, error) {
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return "", fmt.Errorf("expected \"")
	}
	p.pos++
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				body := p.src[start:p.pos]
				p.pos++
				return body, nil
			}
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated quoted value")
}
