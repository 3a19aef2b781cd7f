package tidy

import (
	"testing"
)

func TestTidy_MergeByDOI(t *testing.T) {
	src := `@article{a, doi = {10.1234/x}, title = {First}}
@article{b, doi = {10.1234/X}, year = {2020}}`

	res, err := Tidy(mustParse(t, src), Options{Merge: true})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}

	if len(res.Entries) != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", len(res.Entries))
	}
	survivor := res.Entries[0]
	if survivor.ID != "a" {
		t.Errorf("expected survivor a, got %s", survivor.ID)
	}

	// Union of both property sets
	if _, ok := survivor.Get("title"); !ok {
		t.Error("survivor should keep its title")
	}
	if p, ok := survivor.Get("year"); !ok || p.Value != "2020" {
		t.Error("survivor should gain year from the duplicate")
	}

	if len(res.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate record, got %d", len(res.Duplicates))
	}
	d := res.Duplicates[0]
	if d.Entry.ID != "b" || d.DuplicateOf.ID != "a" {
		t.Errorf("expected b merged into a, got %s into %s", d.Entry.ID, d.DuplicateOf.ID)
	}
}

func TestTidy_MergeNonOverwrite(t *testing.T) {
	src := `@article{a, doi = {10.1/x}, title = {Kept}}
@article{b, doi = {10.1/x}, title = {Discarded}}`

	res, err := Tidy(mustParse(t, src), Options{Merge: true})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}
	p, _ := res.Entries[0].Get("title")
	if p.Value != "Kept" {
		t.Errorf("first entry's value should win, got %q", p.Value)
	}
}

func TestTidy_MergeByTitleWithoutAuthors(t *testing.T) {
	src := "@article{a, title = {Foo}}\n@article{b, title = {Foo}}"

	res, err := Tidy(mustParse(t, src), Options{Merge: true})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}

	if len(res.Entries) != 1 || res.Entries[0].ID != "a" {
		t.Fatalf("expected only entry a to survive, got %d entries", len(res.Entries))
	}
	if len(res.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(res.Duplicates))
	}
	if res.Duplicates[0].Entry.ID != "b" || res.Duplicates[0].DuplicateOf.ID != "a" {
		t.Errorf("expected record {b, duplicateOf: a}")
	}
}

func TestTidy_MergeByAbstract(t *testing.T) {
	src := `@article{a, title = {One}, abstract = {Shared abstract text.}}
@article{b, title = {Two}, abstract = {Shared   abstract -- text!}}`

	res, err := Tidy(mustParse(t, src), Options{Merge: true})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("normalized abstracts should match, got %d entries", len(res.Entries))
	}
}

func TestTidy_MergeEmptyEntries(t *testing.T) {
	// Entries with neither author nor title share the ":" fingerprint
	// and merge. Deliberately permissive.
	src := "@misc{a, year = {2020}}\n@misc{b, note = {n}}"

	res, err := Tidy(mustParse(t, src), Options{Merge: true})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}
	if len(res.Entries) != 1 {
		t.Errorf("expected empty-fingerprint entries to merge, got %d", len(res.Entries))
	}
}

func TestTidy_NoMergeWhenDisabled(t *testing.T) {
	src := "@article{a, title = {Foo}}\n@article{b, title = {Foo}}"
	res, err := Tidy(mustParse(t, src), Options{})
	if err != nil {
		t.Fatalf("Tidy() error: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Errorf("expected both entries without merge, got %d", len(res.Entries))
	}
}

func TestFirstAuthorSurname(t *testing.T) {
	cases := []struct {
		author string
		want   string
	}{
		{"Smith, John", "Smith"},
		{"John Smith and Jane Doe", "Smith"},
		{"Lee et al", "Lee"},
		{"Madonna", "Madonna"},
		{"van der Berg, Jan", "Berg"},
		{"", ""},
	}
	for _, c := range cases {
		if got := firstAuthorSurname(c.author); got != c.want {
			t.Errorf("firstAuthorSurname(%q) = %q, want %q", c.author, got, c.want)
		}
	}
}

func TestFingerprintKeys(t *testing.T) {
	doc := mustParse(t, `@article{a, doi = {10.1234/ABC-d}, author = {Smith, John}, title = {A Long Title}}`)
	doi, authorTitle := FingerprintKeys(doc.Entries[0])
	if doi != "101234abcd" {
		t.Errorf("unexpected doi fingerprint: %q", doi)
	}
	if authorTitle != "smith:alongtitle" {
		t.Errorf("unexpected author-title fingerprint: %q", authorTitle)
	}
}
