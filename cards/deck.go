package cards

import (
	"fmt"
	"strings"
)

// ARCHIVED is the worksheet column that records whether a card has already been exported.
const ARCHIVED = "archived"

type Status int

const (
	Pending Status = iota
	Archived
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Archived:
		return "archived"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Record is a single worksheet row keyed by column name.
type Record map[string]string

type Deck struct {
	Header  []string
	Records []Record
}

// Load builds a Deck from the rows of a worksheet, the first of which is the header row. Every
// data row must have exactly one value per column.
func Load(rows [][]string) (*Deck, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty sheet", ErrSchemaMismatch)
	}

	// ... header
	header := rows[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: missing/invalid header row", ErrSchemaMismatch)
	}

	// An unnamed column is keyed by its (blank) name, so two unnamed columns are duplicates.
	index := map[string]int{}
	for i, h := range header {
		if _, ok := index[h]; ok {
			if strings.TrimSpace(h) == "" {
				return nil, fmt.Errorf("%w: more than one unnamed column (column %d)", ErrSchemaMismatch, i+1)
			}

			return nil, fmt.Errorf("%w: duplicate column name '%s'", ErrSchemaMismatch, h)
		}

		index[h] = i
	}

	if _, ok := index[ARCHIVED]; !ok {
		return nil, fmt.Errorf("%w: missing '%s' column", ErrSchemaMismatch, ARCHIVED)
	}

	// ... records
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, &SchemaMismatchError{
				Row:     i + 2,
				Headers: len(header),
				Values:  len(row),
			}
		}

		record := make(Record, len(header))
		for j, h := range header {
			record[h] = row[j]
		}

		records = append(records, record)
	}

	return &Deck{
		Header:  append([]string{}, header...),
		Records: records,
	}, nil
}

// Column returns the 1-based worksheet column of the 'archived' field.
func (d Deck) Column() int {
	for i, h := range d.Header {
		if h == ARCHIVED {
			return i + 1
		}
	}

	return 0
}

// Classify is Pending for a record with an absent, empty or "0" 'archived' field and Archived
// for anything else.
func Classify(record Record) Status {
	v, ok := record[ARCHIVED]

	switch {
	case !ok:
		return Pending
	case v == "" || v == "0":
		return Pending
	default:
		return Archived
	}
}

// Select returns copies of the pending records, in worksheet order, along with their 1-based
// worksheet row positions. With archive set the copies are marked as archived.
func Select(records []Record, archive bool) ([]Record, []int) {
	batch := []Record{}
	positions := []int{}

	for i, record := range records {
		if Classify(record) != Pending {
			continue
		}

		card := make(Record, len(record))
		for k, v := range record {
			card[k] = v
		}

		if archive {
			card[ARCHIVED] = "1"
		}

		batch = append(batch, card)
		positions = append(positions, i+2)
	}

	return batch, positions
}
