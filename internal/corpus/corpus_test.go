package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_PlainFiles(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "paper.tex")
	two := filepath.Join(dir, "notes.txt")
	os.WriteFile(one, []byte(`\cite{Smith2020}`), 0644)
	os.WriteFile(two, []byte("see Smith2020"), 0644)

	text, err := Load([]string{one, two})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if strings.Count(text, "Smith2020") != 2 {
		t.Errorf("expected both occurrences in corpus, got %q", text)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "absent.tex")})
	if err == nil {
		t.Fatal("expected an error for a missing corpus file")
	}
	if !strings.Contains(err.Error(), "absent.tex") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	text, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty corpus, got %q", text)
	}
}

func TestLoad_BadPDF(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "broken.pdf")
	os.WriteFile(bad, []byte("not a pdf"), 0644)

	if _, err := Load([]string{bad}); err == nil {
		t.Fatal("expected an error for an invalid PDF")
	}
}
