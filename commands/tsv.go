package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// sheetToTSV writes the worksheet values as is, padding short rows to the header width.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) error {
	if len(data.Values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	if len(data.Values[0]) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, record := range rows(data.Values) {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func readTSV(f io.Reader) ([][]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	return records, nil
}

// tsvToSheet returns the TSV header and data as value ranges for the header row and the rows
// below it in an area like 'Words!A1:K'.
func tsvToSheet(f io.Reader, area string) (*sheets.ValueRange, *sheets.ValueRange, error) {
	match := regexp.MustCompile(`^(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?$`).FindStringSubmatch(area)
	if len(match) < 5 {
		return nil, nil, fmt.Errorf("invalid spreadsheet range '%s'", area)
	}

	name := match[1]
	left := match[2]
	top, _ := strconv.Atoi(match[3])
	right := match[4]

	records, err := readTSV(f)
	if err != nil {
		return nil, nil, err
	}

	header := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s%v", name, left, top, right, top),
		Values: [][]any{values(records[0])},
	}

	data := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!%s%v:%s", name, left, top+1, right),
		Values: [][]any{},
	}

	for _, record := range records[1:] {
		data.Values = append(data.Values, values(record))
	}

	return &header, &data, nil
}

// tsvToRecords maps the TSV data rows onto the worksheet header by column name. Worksheet
// columns that are not in the TSV (typically 'archived') are left empty and the TSV columns
// that are not in the worksheet are returned as unmatched.
func tsvToRecords(f io.Reader, header []string) (*sheets.ValueRange, []string, error) {
	records, err := readTSV(f)
	if err != nil {
		return nil, nil, err
	}

	index := map[string]int{}
	for i, h := range records[0] {
		if _, ok := index[h]; ok {
			return nil, nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[h] = i
	}

	matched := 0
	columns := map[string]bool{}
	for _, h := range header {
		columns[h] = true
		if _, ok := index[h]; ok {
			matched++
		}
	}

	if matched == 0 {
		return nil, nil, fmt.Errorf("none of the TSV columns match the worksheet header")
	}

	unmatched := []string{}
	for _, h := range records[0] {
		if !columns[h] {
			unmatched = append(unmatched, h)
		}
	}

	data := sheets.ValueRange{
		Values: [][]any{},
	}

	for _, record := range records[1:] {
		row := make([]any, len(header))
		for i, h := range header {
			if j, ok := index[h]; ok {
				row[i] = strings.TrimSpace(record[j])
			} else {
				row[i] = ""
			}
		}

		data.Values = append(data.Values, row)
	}

	return &data, unmatched, nil
}

// unique drops the rows with a first column value that is already in the worksheet (or
// earlier in the rows being added) and returns the number of rows dropped.
func unique(data *sheets.ValueRange, worksheet [][]string) int {
	key := func(v any) string {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}

	words := map[string]bool{}
	if len(worksheet) > 0 {
		for _, row := range worksheet[1:] {
			if len(row) > 0 && key(row[0]) != "" {
				words[key(row[0])] = true
			}
		}
	}

	list := [][]any{}
	skipped := 0
	for _, row := range data.Values {
		if len(row) > 0 && key(row[0]) != "" {
			if words[key(row[0])] {
				skipped++
				continue
			}

			words[key(row[0])] = true
		}

		list = append(list, row)
	}

	data.Values = list

	return skipped
}

func values(record []string) []any {
	row := make([]any, len(record))
	for i, v := range record {
		row[i] = v
	}

	return row
}
