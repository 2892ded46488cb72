package commands

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/anki-tools/anki-sheets/cards"
)

// worksheet is a cards.Source backed by a Google Sheets worksheet.
type worksheet struct {
	google      *sheets.Service
	spreadsheet string
	name        string
}

func (w *worksheet) Rows(ctx context.Context) ([][]string, error) {
	response, err := w.google.Spreadsheets.Values.Get(w.spreadsheet, quote(w.name)).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if len(response.Values) == 0 {
		return nil, fmt.Errorf("no data in worksheet '%s'", w.name)
	}

	return rows(response.Values), nil
}

// Update writes all the cells with a single batch request. The values are USER_ENTERED so that
// an 'archived' 1 is stored as a number, like a value typed into the worksheet.
func (w *worksheet) Update(ctx context.Context, cells []cards.Cell) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             cellRanges(w.name, cells),
	}

	if _, err := w.google.Spreadsheets.Values.BatchUpdate(w.spreadsheet, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

// rows converts the worksheet values to strings. The Sheets API omits trailing empty cells so
// short rows are padded to the width of the header row.
func rows(values [][]any) [][]string {
	list := make([][]string, 0, len(values))
	width := 0

	if len(values) > 0 {
		width = len(values[0])
	}

	for _, row := range values {
		record := make([]string, max(width, len(row)))
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		list = append(list, record)
	}

	return list
}

func cellRanges(name string, cells []cards.Cell) []*sheets.ValueRange {
	ranges := make([]*sheets.ValueRange, 0, len(cells))

	for _, cell := range cells {
		ranges = append(ranges, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", quote(name), column(cell.Column), cell.Row),
			Values: [][]any{{cell.Value}},
		})
	}

	return ranges
}
