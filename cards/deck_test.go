package cards

import (
	"errors"
	"reflect"
	"testing"
)

func TestLoad(t *testing.T) {
	expected := Deck{
		Header: []string{"front", "back", "archived"},
		Records: []Record{
			{"front": "hi", "back": "hello", "archived": "0"},
			{"front": "bye", "back": "goodbye", "archived": "1"},
			{"front": "yo", "back": "hey", "archived": ""},
		},
	}

	rows := [][]string{
		{"front", "back", "archived"},
		{"hi", "hello", "0"},
		{"bye", "goodbye", "1"},
		{"yo", "hey", ""},
	}

	deck, err := Load(rows)
	if err != nil {
		t.Fatalf("Unexpected error returned from Load (%v)", err)
	}

	if !reflect.DeepEqual(*deck, expected) {
		t.Errorf("Incorrect deck\n   expected: %v\n   got:      %v\n", expected, *deck)
	}

	if column := deck.Column(); column != 3 {
		t.Errorf("Incorrect 'archived' column - expected:%v, got:%v", 3, column)
	}
}

func TestLoadWithHeaderOnly(t *testing.T) {
	deck, err := Load([][]string{{"archived", "front", "back"}})
	if err != nil {
		t.Fatalf("Unexpected error returned from Load (%v)", err)
	}

	if len(deck.Records) != 0 {
		t.Errorf("Expected no records, got %v", deck.Records)
	}

	if column := deck.Column(); column != 1 {
		t.Errorf("Incorrect 'archived' column - expected:%v, got:%v", 1, column)
	}
}

func TestLoadWithEmptySheet(t *testing.T) {
	if _, err := Load([][]string{}); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for empty sheet, got %v", err)
	}
}

func TestLoadWithoutHeaders(t *testing.T) {
	if _, err := Load([][]string{{}}); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for missing headers, got %v", err)
	}
}

func TestLoadWithBlankColumnName(t *testing.T) {
	rows := [][]string{
		{"front", "", "back", "archived"},
		{"hi", "note", "hello", "0"},
	}

	expected := []Record{
		{"front": "hi", "": "note", "back": "hello", "archived": "0"},
	}

	deck, err := Load(rows)
	if err != nil {
		t.Fatalf("Unexpected error loading worksheet with an unnamed column (%v)", err)
	}

	if !reflect.DeepEqual(deck.Records, expected) {
		t.Errorf("Incorrect records\n   expected: %v\n   got:      %v\n", expected, deck.Records)
	}

	if column := deck.Column(); column != 4 {
		t.Errorf("Incorrect 'archived' column - expected:%v, got:%v", 4, column)
	}
}

func TestLoadWithMultipleBlankColumnNames(t *testing.T) {
	rows := [][]string{
		{"front", "", "", "archived"},
		{"hi", "note", "hello", "0"},
	}

	if _, err := Load(rows); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for more than one unnamed column, got %v", err)
	}
}

func TestLoadWithDuplicatedColumn(t *testing.T) {
	rows := [][]string{
		{"front", "back", "front", "archived"},
		{"hi", "hello", "hi", "0"},
	}

	if _, err := Load(rows); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for duplicated column, got %v", err)
	}
}

func TestLoadWithMissingArchivedColumn(t *testing.T) {
	rows := [][]string{
		{"front", "back", "Archived"},
		{"hi", "hello", "0"},
	}

	if _, err := Load(rows); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for missing 'archived' column, got %v", err)
	}
}

func TestLoadWithShortRow(t *testing.T) {
	rows := [][]string{
		{"front", "back", "archived"},
		{"hi", "hello", "0"},
		{"bye", "goodbye"},
	}

	_, err := Load(rows)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Expected schema mismatch error for short row, got %v", err)
	}

	var mismatch *SchemaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Expected SchemaMismatchError, got %T", err)
	}

	expected := SchemaMismatchError{Row: 3, Headers: 3, Values: 2}
	if *mismatch != expected {
		t.Errorf("Incorrect schema mismatch error\n   expected: %+v\n   got:      %+v", expected, *mismatch)
	}
}

func TestLoadWithLongRow(t *testing.T) {
	rows := [][]string{
		{"front", "back", "archived"},
		{"hi", "hello", "0", "extra"},
	}

	var mismatch *SchemaMismatchError
	if _, err := Load(rows); !errors.As(err, &mismatch) {
		t.Fatalf("Expected SchemaMismatchError for long row, got %v", err)
	} else if mismatch.Row != 2 || mismatch.Values != 4 {
		t.Errorf("Incorrect schema mismatch error %+v", *mismatch)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		record   Record
		expected Status
	}{
		{Record{"archived": ""}, Pending},
		{Record{"archived": "0"}, Pending},
		{Record{"front": "hi"}, Pending},
		{Record{"archived": "1"}, Archived},
		{Record{"archived": "2"}, Archived},
		{Record{"archived": "true"}, Archived},
		{Record{"archived": "false"}, Archived},
		{Record{"archived": " "}, Archived},
		{Record{"archived": "00"}, Archived},
		{Record{"archived": "0.0"}, Archived},
		{Record{"Archived": "1"}, Pending},
	}

	for _, test := range tests {
		if status := Classify(test.record); status != test.expected {
			t.Errorf("Incorrect classification for %v - expected:%v, got:%v", test.record, test.expected, status)
		}
	}
}

func TestSelect(t *testing.T) {
	records := []Record{
		{"front": "hi", "back": "hello", "archived": "0"},
		{"front": "bye", "back": "goodbye", "archived": "1"},
		{"front": "yo", "back": "hey", "archived": ""},
	}

	expected := []Record{
		{"front": "hi", "back": "hello", "archived": "1"},
		{"front": "yo", "back": "hey", "archived": "1"},
	}

	batch, positions := Select(records, true)

	if !reflect.DeepEqual(batch, expected) {
		t.Errorf("Incorrect batch\n   expected: %v\n   got:      %v\n", expected, batch)
	}

	if !reflect.DeepEqual(positions, []int{2, 4}) {
		t.Errorf("Incorrect positions - expected:%v, got:%v", []int{2, 4}, positions)
	}

	if records[0]["archived"] != "0" || records[2]["archived"] != "" {
		t.Errorf("Select modified the source records %v", records)
	}
}

func TestSelectWithoutArchive(t *testing.T) {
	records := []Record{
		{"front": "hi", "back": "hello", "archived": "0"},
		{"front": "bye", "back": "goodbye", "archived": "1"},
		{"front": "yo", "back": "hey", "archived": ""},
	}

	expected := []Record{
		{"front": "hi", "back": "hello", "archived": "0"},
		{"front": "yo", "back": "hey", "archived": ""},
	}

	batch, positions := Select(records, false)

	if !reflect.DeepEqual(batch, expected) {
		t.Errorf("Incorrect batch\n   expected: %v\n   got:      %v\n", expected, batch)
	}

	if !reflect.DeepEqual(positions, []int{2, 4}) {
		t.Errorf("Incorrect positions - expected:%v, got:%v", []int{2, 4}, positions)
	}
}

func TestSelectPreservesOrder(t *testing.T) {
	records := []Record{}
	expected := []string{}
	pending := 0

	for i := 0; i < 50; i++ {
		archived := []string{"", "0", "1", "x", "0"}[i%5]
		front := string(rune('a' + i%26))
		records = append(records, Record{"front": front, "archived": archived})

		if archived == "" || archived == "0" {
			expected = append(expected, front)
			pending++
		}
	}

	batch, positions := Select(records, true)

	if len(batch) != pending || len(positions) != pending {
		t.Fatalf("Incorrect counts - expected:%v, got batch:%v positions:%v", pending, len(batch), len(positions))
	}

	for i, record := range batch {
		if record["front"] != expected[i] {
			t.Errorf("Incorrect record %v - expected:%v, got:%v", i, expected[i], record["front"])
		}

		if i > 0 && positions[i] <= positions[i-1] {
			t.Errorf("Positions out of order %v", positions)
		}
	}
}

func TestSelectWithNoPendingRecords(t *testing.T) {
	records := []Record{
		{"front": "hi", "archived": "1"},
		{"front": "yo", "archived": "1"},
	}

	batch, positions := Select(records, true)

	if len(batch) != 0 || len(positions) != 0 {
		t.Errorf("Expected empty batch, got %v %v", batch, positions)
	}
}
