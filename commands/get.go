package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/anki-tools/anki-sheets/cards"
)

var GetCmd = Get{
	command: command{
		config:      DEFAULT_CONFIG,
		workdir:     "",
		credentials: "",
		tokens:      "",
		url:         "",
		debug:       false,
	},

	area: "",
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Downloads a Google Sheets worksheet to a TSV file, including archived rows"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --range <range> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --range <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    anki-sheets --debug get --credentials "credentials.json" \`)
	fmt.Println(`                            --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                            --range "anki-en" \`)
	fmt.Println(`                            --file "backup.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'anki-en' or 'anki-en!A1:K'. Defaults to the configured worksheet")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	config, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	cmd.merge(config)

	spreadsheet, err := cmd.validate()
	if err != nil {
		return err
	}

	area := strings.TrimSpace(cmd.area)
	if area == "" && config.Worksheet != "" {
		area = quote(config.Worksheet)
	}

	if area == "" {
		return fmt.Errorf("%w: --range is a required option", cards.ErrConfiguration)
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("%w: --file is a required option", cards.ErrConfiguration)
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", spreadsheet, area)
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

	response, err := google.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	if len(response.Values) == 0 {
		return fmt.Errorf("no data in spreadsheet/range")
	}

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrSinkWrite, err)
	}

	tmp, err := os.CreateTemp(dir, ".get-*.tsv")
	if err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrSinkWrite, err)
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := sheetToTSV(tmp, response); err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrSinkWrite, err)
	}

	tmp.Close()

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return fmt.Errorf("%w (%w)", cards.ErrSinkWrite, err)
	}

	infof("Retrieved worksheet %s to file %s", area, cmd.file)

	return nil
}
