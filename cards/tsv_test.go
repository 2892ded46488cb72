package cards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMakeTSV(t *testing.T) {
	expected := "front\tback\tarchived\nhi\thello\t1\nyo\they\t1\n"

	header := []string{"front", "back", "archived"}
	records := []Record{
		{"archived": "1", "back": "hello", "front": "hi"},
		{"front": "yo", "archived": "1", "back": "hey"},
	}

	var f strings.Builder
	if err := MakeTSV(&f, header, records); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

func TestMakeTSVWithHeaderOnly(t *testing.T) {
	expected := "front\tback\tarchived\n"

	var f strings.Builder
	if err := MakeTSV(&f, []string{"front", "back", "archived"}, nil); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

func TestMakeTSVWithoutHeaders(t *testing.T) {
	var f strings.Builder

	if err := MakeTSV(&f, []string{}, nil); err == nil {
		t.Fatalf("Expected error return for missing headers, got %v", err)
	}
}

func TestMakeTSVWithEmbeddedTabs(t *testing.T) {
	expected := "front\tback\tarchived\n\"to\tbe\"\t\"line 1\nline 2\"\t1\n"

	records := []Record{
		{"front": "to\tbe", "back": "line 1\nline 2", "archived": "1"},
	}

	var f strings.Builder
	if err := MakeTSV(&f, []string{"front", "back", "archived"}, records); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

// Leading whitespace and a lone \. are quoted so that the values survive a round trip
// through a CSV reader unchanged.
func TestMakeTSVWithLeadingSpace(t *testing.T) {
	expected := "front\tarchived\n\" hi\"\t1\n\"\\.\"\t1\nhi \t1\n"

	records := []Record{
		{"front": " hi", "archived": "1"},
		{"front": `\.`, "archived": "1"},
		{"front": "hi ", "archived": "1"},
	}

	var f strings.Builder
	if err := MakeTSV(&f, []string{"front", "archived"}, records); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}

func TestFileWrite(t *testing.T) {
	expected := "front\tback\tarchived\nhi\thello\t1\n"

	path := filepath.Join(t.TempDir(), "output", "cards.tsv")
	sink := File{Path: path}

	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		t.Fatalf("%v", err)
	} else if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatalf("%v", err)
	}

	if err := sink.Write([]string{"front", "back", "archived"}, []Record{{"front": "hi", "back": "hello", "archived": "1"}}); err != nil {
		t.Fatalf("Unexpected error writing TSV file (%v)", err)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Error reading TSV file (%v)", err)
	}

	if string(bytes) != expected {
		t.Errorf("Incorrect TSV file\n   expected: %q\n   got:      %q\n", expected, string(bytes))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("%v", err)
	} else if len(entries) != 1 {
		t.Errorf("Expected only the TSV file in the output directory, got %v", entries)
	}
}

func TestFileWriteWithInvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "output")

	if err := os.WriteFile(blocker, []byte{}, 0644); err != nil {
		t.Fatalf("%v", err)
	}

	sink := File{Path: filepath.Join(blocker, "cards.tsv")}
	if err := sink.Write([]string{"archived"}, nil); err == nil {
		t.Errorf("Expected error writing to invalid path, got %v", err)
	}
}
