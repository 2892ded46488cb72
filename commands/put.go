package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/anki-tools/anki-sheets/cards"
)

var PutCmd = Put{
	command: command{
		config:      DEFAULT_CONFIG,
		workdir:     "",
		credentials: "",
		tokens:      "",
		url:         "",
		debug:       false,
	},

	area:           "",
	file:           "",
	append:         false,
	skipDuplicates: false,
}

type Put struct {
	command
	area           string
	file           string
	append         bool
	skipDuplicates bool
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a TSV file to a Google Sheets worksheet, either replacing the contents of the range")
	fmt.Println("  or (with --append) adding the TSV data rows after the last row of the worksheet. Appended")
	fmt.Println("  rows are matched to the worksheet columns by header name, leaving unmatched columns (e.g.")
	fmt.Println("  'archived') empty.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    anki-sheets --debug put --credentials "credentials.json" \`)
	fmt.Println(`                            --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                            --range "anki-en!A1:K" \`)
	fmt.Println(`                            --file "words.tsv"`)
	fmt.Println()
	fmt.Println(`    anki-sheets put --append --skip-duplicates --range "anki-en" --file "new-words.tsv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'anki-en!A1:K'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")
	flagset.BoolVar(&cmd.append, "append", cmd.append, "Appends the TSV data rows to the worksheet, matching columns by header name")
	flagset.BoolVar(&cmd.skipDuplicates, "skip-duplicates", cmd.skipDuplicates, "Skips appended rows with a first column value that is already in the worksheet")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	config, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	cmd.merge(config)

	spreadsheetId, err := cmd.validate()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("%w: --range is a required option", cards.ErrConfiguration)
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("%w: --file is a required option", cards.ErrConfiguration)
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s  append:%v", spreadsheetId, cmd.area, cmd.append)
	}

	// ... authorise
	tokens := cmd.tokens
	if tokens == "" {
		tokens = tokensFile(cmd.workdir, cmd.credentials)
	}

	client, err := authorize(cmd.credentials, tokens, SHEETS)
	if err != nil {
		return err
	}

	ctx := context.Background()

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("%w: unable to create new Sheets client (%v)", cards.ErrAuthentication, err)
	}

	spreadsheet, err := getSpreadsheet(google, spreadsheetId, ctx)
	if err != nil {
		return err
	}

	if _, err := getSheet(spreadsheet, cmd.area); err != nil {
		return err
	}

	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	if cmd.append {
		return cmd.appendRows(google, spreadsheet.SpreadsheetId, f, ctx)
	}

	header, data, err := tsvToSheet(f, cmd.area)
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             []*sheets.ValueRange{header, data},
	}

	if _, err := google.Spreadsheets.Values.BatchUpdate(spreadsheet.SpreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrRemoteWrite, err)
	}

	infof("Uploaded TSV file %v to Google Sheets %v", cmd.file, cmd.area)

	return nil
}

// appendRows adds the TSV data rows after the last row of the worksheet, with the TSV columns
// rearranged to match the worksheet header.
func (cmd *Put) appendRows(google *sheets.Service, spreadsheet string, f io.Reader, ctx context.Context) error {
	sheet := worksheet{
		google:      google,
		spreadsheet: spreadsheet,
		name:        sheetName(cmd.area),
	}

	existing, err := sheet.Rows(ctx)
	if err != nil {
		return err
	} else if len(existing[0]) == 0 {
		return fmt.Errorf("missing/invalid header row in worksheet '%s'", sheet.name)
	}

	rows, unmatched, err := tsvToRecords(f, existing[0])
	if err != nil {
		return fmt.Errorf("invalid TSV file (%v)", err)
	}

	if len(unmatched) > 0 {
		warnf("TSV columns %q not in worksheet '%s' - ignored", unmatched, sheet.name)
	}

	if cmd.skipDuplicates {
		if skipped := unique(rows, existing); skipped > 0 {
			infof("Skipped %d rows already in worksheet '%s'", skipped, sheet.name)
		}
	}

	if len(rows.Values) == 0 {
		infof("No rows to append from TSV file %v", cmd.file)
		return nil
	}

	if _, err := google.Spreadsheets.Values.Append(spreadsheet, quote(sheet.name), rows).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrRemoteWrite, err)
	}

	infof("Appended %d rows from TSV file %v to worksheet '%s'", len(rows.Values), cmd.file, sheet.name)

	return nil
}
