package clippings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSplit_GroupsByTitle(t *testing.T) {
	input := `Book One (Author A)
- Your Highlight on page 1 | Location 10-12 | Added on Tuesday, April 15, 2025 10:16:21 PM

passage from book one
==========
Book Two: A Story? (Author B)
- Your Highlight on page 5 | Location 50-52 | Added on Tuesday, April 15, 2025 10:20:21 PM

passage from book two
==========
Book One (Author A)
- Your Highlight on page 2 | Location 20-22 | Added on Tuesday, April 15, 2025 10:25:21 PM

second passage from book one
==========
`

	dir := t.TempDir()
	src := filepath.Join(dir, "My Clippings.txt")
	if err := os.WriteFile(src, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(dir, "clippings")
	counts, err := Split(src, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 output files, got %d", len(counts))
	}

	one := filepath.Join(dest, "Book One (Author A).txt")
	if counts[one] != 2 {
		t.Errorf("expected 2 records for book one, got %d", counts[one])
	}

	// Invalid filename characters must be removed from the title.
	two := filepath.Join(dest, "Book Two A Story (Author B).txt")
	if counts[two] != 1 {
		t.Errorf("expected sanitized filename with 1 record, got %v", counts)
	}

	// The split files must round-trip through the parser.
	raw, err := os.ReadFile(one)
	if err != nil {
		t.Fatal(err)
	}
	clips, _, err := NewParser().Parse(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("re-parsing split file: %v", err)
	}
	if len(clips) != 2 {
		t.Fatalf("expected 2 clippings after round-trip, got %d", len(clips))
	}
}

func TestCount_Preview(t *testing.T) {
	input := `Book
- Your Highlight on page 1 | Location 5-6 | Added on Tuesday, April 15, 2025 10:16:21 PM

passage
==========
Book
- Your Highlight on page 2 | Location 9-12 | Added on Tuesday, April 15, 2025 10:18:21 PM

another passage
==========
`

	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := Count(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}

func TestParseFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := ParseFile(path)
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
