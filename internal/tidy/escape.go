package tidy

import "strings"

// escapes is the Unicode to LaTeX substitution table. Entries are
// applied in authored order, each globally across the value. Order
// matters: an earlier replacement must not produce text a later
// pattern matches.
var escapes = []struct{ from, to string }{
	// Dashes and typographic punctuation.
	{"—", "---"}, // em dash
	{"–", "--"},  // en dash
	{"…", `\ldots{}`},
	{"‘", "`"},
	{"’", "'"},
	{"“", "``"},
	{"”", "''"},
	{" ", "~"}, // no-break space

	// Uppercase accented latin.
	{"À", "{\\`A}"},
	{"Á", "{\\'A}"},
	{"Â", "{\\^A}"},
	{"Ã", "{\\~A}"},
	{"Ä", "{\\\"A}"},
	{"Å", "{\\AA}"},
	{"Æ", "{\\AE}"},
	{"Ç", "{\\c C}"},
	{"È", "{\\`E}"},
	{"É", "{\\'E}"},
	{"Ê", "{\\^E}"},
	{"Ë", "{\\\"E}"},
	{"Ì", "{\\`I}"},
	{"Í", "{\\'I}"},
	{"Î", "{\\^I}"},
	{"Ï", "{\\\"I}"},
	{"Ñ", "{\\~N}"},
	{"Ò", "{\\`O}"},
	{"Ó", "{\\'O}"},
	{"Ô", "{\\^O}"},
	{"Õ", "{\\~O}"},
	{"Ö", "{\\\"O}"},
	{"Ø", "{\\O}"},
	{"Œ", "{\\OE}"},
	{"Š", "{\\v S}"},
	{"Ù", "{\\`U}"},
	{"Ú", "{\\'U}"},
	{"Û", "{\\^U}"},
	{"Ü", "{\\\"U}"},
	{"Ý", "{\\'Y}"},
	{"Ž", "{\\v Z}"},

	// Lowercase accented latin.
	{"à", "{\\`a}"},
	{"á", "{\\'a}"},
	{"â", "{\\^a}"},
	{"ã", "{\\~a}"},
	{"ä", "{\\\"a}"},
	{"å", "{\\aa}"},
	{"æ", "{\\ae}"},
	{"ç", "{\\c c}"},
	{"è", "{\\`e}"},
	{"é", "{\\'e}"},
	{"ê", "{\\^e}"},
	{"ë", "{\\\"e}"},
	{"ì", "{\\`i}"},
	{"í", "{\\'i}"},
	{"î", "{\\^i}"},
	{"ï", "{\\\"i}"},
	{"ñ", "{\\~n}"},
	{"ò", "{\\`o}"},
	{"ó", "{\\'o}"},
	{"ô", "{\\^o}"},
	{"õ", "{\\~o}"},
	{"ö", "{\\\"o}"},
	{"ø", "{\\o}"},
	{"œ", "{\\oe}"},
	{"š", "{\\v s}"},
	{"ù", "{\\`u}"},
	{"ú", "{\\'u}"},
	{"û", "{\\^u}"},
	{"ü", "{\\\"u}"},
	{"ý", "{\\'y}"},
	{"ÿ", "{\\\"y}"},
	{"ž", "{\\v z}"},
	{"ß", "{\\ss}"},

	// Common eastern European letters.
	{"Ć", "{\\'C}"},
	{"ć", "{\\'c}"},
	{"Č", "{\\v C}"},
	{"č", "{\\v c}"},
	{"Ł", "{\\L}"},
	{"ł", "{\\l}"},
	{"Ń", "{\\'N}"},
	{"ń", "{\\'n}"},
	{"Ś", "{\\'S}"},
	{"ś", "{\\'s}"},
	{"ę", "{\\k e}"},
	{"ą", "{\\k a}"},
}

// escapeValue applies the substitution table. Strings containing no
// table characters are returned unchanged.
func escapeValue(s string) string {
	for _, e := range escapes {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	return s
}
