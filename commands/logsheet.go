package commands

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/anki-tools/anki-sheets/cards"
)

var logColumns = map[string]int{
	"timestamp": 0,
	"worksheet": 1,
	"total":     2,
	"exported":  3,
	"archived":  4,
	"file":      5,
}

func updateLogSheet(google *sheets.Service, spreadsheet string, logRange string, worksheet string, file string, summary *cards.Summary, ctx context.Context) error {
	response, err := google.Spreadsheets.Values.Get(spreadsheet, logRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log sheet (%v)", err)
	}

	index := logColumns
	if len(response.Values) > 0 {
		index = logIndex(response.Values[0])
	}

	row := logRow(index, time.Now(), worksheet, file, summary)
	rows := sheets.ValueRange{
		Values: [][]any{row},
	}

	if _, err := google.Spreadsheets.Values.Append(spreadsheet, logRange, &rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", err)
	}

	return nil
}

// logIndex maps the log sheet column headers to columns. Unrecognised columns are left blank.
func logIndex(header []any) map[string]int {
	index := map[string]int{}

	for i, v := range header {
		k := normalise(fmt.Sprintf("%v", v))
		if _, ok := logColumns[k]; ok {
			index[k] = i
		}
	}

	return index
}

func logRow(index map[string]int, timestamp time.Time, worksheet string, file string, summary *cards.Summary) []any {
	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	row := make([]any, columns)
	for i := range row {
		row[i] = ""
	}

	archived := 0
	if summary.WrittenBack {
		archived = len(summary.Positions)
	}

	values := map[string]any{
		"timestamp": timestamp.Format("2006-01-02 15:04:05"),
		"worksheet": worksheet,
		"total":     summary.Total,
		"exported":  summary.Pending,
		"archived":  archived,
		"file":      file,
	}

	for k, v := range values {
		if ix, ok := index[k]; ok {
			row[ix] = v
		}
	}

	return row
}
