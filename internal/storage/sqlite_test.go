package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndCount(t *testing.T) {
	db := openTestDB(t)

	rows := []IndexedEntry{
		{Key: "a", DOI: "101234x", File: "one.bib"},
		{Key: "b", File: "one.bib"},
	}
	for _, r := range rows {
		if err := db.Insert(r); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
}

func TestCollisions_ByKey(t *testing.T) {
	db := openTestDB(t)

	db.Insert(IndexedEntry{Key: "shared", File: "one.bib"})
	db.Insert(IndexedEntry{Key: "shared", File: "two.bib"})
	db.Insert(IndexedEntry{Key: "unique", File: "two.bib"})

	collisions, err := db.Collisions()
	if err != nil {
		t.Fatalf("Collisions() error: %v", err)
	}

	if len(collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d", len(collisions))
	}
	c := collisions[0]
	if c.Type != "key" || c.Value != "shared" {
		t.Errorf("unexpected collision: %+v", c)
	}
	if len(c.Entries) != 2 {
		t.Errorf("expected 2 colliding entries, got %d", len(c.Entries))
	}
	if c.Entries[0].File != "one.bib" || c.Entries[1].File != "two.bib" {
		t.Errorf("entries should keep insertion order: %+v", c.Entries)
	}
}

func TestCollisions_ByDOIAcrossFiles(t *testing.T) {
	db := openTestDB(t)

	db.Insert(IndexedEntry{Key: "a", DOI: "101234x", File: "one.bib"})
	db.Insert(IndexedEntry{Key: "b", DOI: "101234x", File: "two.bib"})

	collisions, err := db.Collisions()
	if err != nil {
		t.Fatalf("Collisions() error: %v", err)
	}

	if len(collisions) != 1 {
		t.Fatalf("expected 1 collision, got %d", len(collisions))
	}
	if collisions[0].Type != "doi" || collisions[0].Value != "101234x" {
		t.Errorf("unexpected collision: %+v", collisions[0])
	}
}

func TestCollisions_EmptyValuesNeverCollide(t *testing.T) {
	db := openTestDB(t)

	// Many entries without DOI or fingerprint must not be reported.
	db.Insert(IndexedEntry{Key: "a", File: "one.bib"})
	db.Insert(IndexedEntry{Key: "b", File: "one.bib"})
	db.Insert(IndexedEntry{Key: "c", File: "two.bib"})

	collisions, err := db.Collisions()
	if err != nil {
		t.Fatalf("Collisions() error: %v", err)
	}
	if len(collisions) != 0 {
		t.Errorf("expected no collisions, got %+v", collisions)
	}
}

func TestOpen_InMemory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error: %v", err)
	}
	defer db.Close()

	if err := db.Insert(IndexedEntry{Key: "a", File: "x.bib"}); err != nil {
		t.Errorf("Insert() error: %v", err)
	}
}
