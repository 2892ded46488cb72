package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/anki-tools/anki-sheets/cards"
)

var ExportCmd = Export{
	command: command{
		config:      DEFAULT_CONFIG,
		workdir:     "",
		credentials: "",
		tokens:      "",
		url:         "",
		debug:       false,
	},

	worksheet: "",
	file:      "",
	archive:   false,
	noarchive: false,
	dryrun:    false,
	logRange:  "",
	ifChanged: false,
}

type Export struct {
	command
	worksheet string
	file      string
	archive   bool
	noarchive bool
	dryrun    bool
	logRange  string
	ifChanged bool
}

func (cmd *Export) Name() string {
	return "export"
}

func (cmd *Export) Description() string {
	return "Exports the unarchived cards in a Google Sheets worksheet to a TSV file for import into Anki"
}

func (cmd *Export) Usage() string {
	return "--credentials <file> --url <url> --worksheet <name> --file <file>"
}

func (cmd *Export) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] export [options] --url <URL> --worksheet <name> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Writes the rows of a Google Sheets worksheet with an empty or '0' 'archived' column to a TSV")
	fmt.Println("  file and then sets the 'archived' column of the exported rows to '1'.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    anki-sheets --debug export --credentials "credentials.json" \`)
	fmt.Println(`                               --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                               --worksheet "anki-en" \`)
	fmt.Println(`                               --file "output/cards.tsv"`)
	fmt.Println()
	fmt.Println(`    anki-sheets export --config "config/config.json" --no-archive`)
	fmt.Println()
}

func (cmd *Export) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("export")

	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet name e.g. 'anki-en'")
	flagset.StringVar(&cmd.file, "file", cmd.file, fmt.Sprintf("TSV file name. Defaults to '%s'", DEFAULT_OUTPUT))
	flagset.BoolVar(&cmd.archive, "archive", cmd.archive, "Marks the exported rows as archived in the worksheet (default unless disabled in the configuration)")
	flagset.BoolVar(&cmd.noarchive, "no-archive", cmd.noarchive, "Exports the unarchived rows without marking them as archived")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Writes the TSV file without updating the worksheet")
	flagset.StringVar(&cmd.logRange, "log-range", cmd.logRange, "Spreadsheet range for an export summary e.g. 'Log!A1:F'")
	flagset.BoolVar(&cmd.ifChanged, "if-changed", cmd.ifChanged, "Skips the export if the spreadsheet is unchanged since the last export")

	return flagset
}

func (cmd *Export) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	// ... check parameters
	config, err := loadConfig(cmd.config)
	if err != nil {
		return err
	}

	cmd.merge(config)
	cmd.configure(config)

	spreadsheet, err := cmd.validate()
	if err != nil {
		return err
	}

	if strings.TrimSpace(cmd.worksheet) == "" {
		return fmt.Errorf("%w: --worksheet (or 'google_sheet_name') is a required option", cards.ErrConfiguration)
	}

	if cmd.archive && cmd.noarchive {
		return fmt.Errorf("%w: --archive and --no-archive are mutually exclusive", cards.ErrConfiguration)
	}

	if cmd.logRange != "" && sheetName(cmd.logRange) == "" {
		return fmt.Errorf("%w: invalid --log-range '%s' - expected something like 'Log!A1:F'", cards.ErrConfiguration, cmd.logRange)
	}

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  worksheet:%s  file:%s  archive:%v", spreadsheet, cmd.worksheet, cmd.file, cmd.archive)
	}

	// ... authorise
	tokens := cmd.tokens
	if tokens == "" {
		tokens = tokensFile(cmd.workdir, cmd.credentials)
	}

	scopes := []string{SHEETS}
	if cmd.ifChanged {
		scopes = append(scopes, DRIVE)
	}

	client, err := authorize(cmd.credentials, tokens, scopes...)
	if err != nil {
		return err
	}

	ctx := context.Background()

	google, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("%w: unable to create new Sheets client (%v)", cards.ErrAuthentication, err)
	}

	var gdrive *drive.Service
	if cmd.ifChanged {
		if gdrive, err = drive.NewService(ctx, option.WithHTTPClient(client)); err != nil {
			return fmt.Errorf("%w: unable to create new Drive client (%v)", cards.ErrAuthentication, err)
		}

		if changed, err := cmd.changed(gdrive, spreadsheet, ctx); err != nil {
			return err
		} else if !changed {
			infof("Spreadsheet %s unchanged since last export", spreadsheet)
			return nil
		}
	}

	// ... export
	source := worksheet{
		google:      google,
		spreadsheet: spreadsheet,
		name:        cmd.worksheet,
	}

	sink := cards.File{
		Path: cmd.file,
	}

	reconciler := cards.NewReconciler(&source, sink, cards.Options{
		ArchiveOnExport: cmd.archive,
		DryRun:          cmd.dryrun,
	})

	summary, err := reconciler.Run(ctx)
	if summary != nil {
		cmd.report(summary)
	}

	if err != nil {
		return err
	}

	infof("Exported %d cards to %s", summary.Pending, cmd.file)

	if summary.WrittenBack {
		infof("Marked %d rows as archived in worksheet '%s'", len(summary.Positions), cmd.worksheet)
	} else if cmd.archive && cmd.dryrun && summary.Pending > 0 {
		infof("Dry run - %d rows not marked as archived", len(summary.Positions))
	}

	if cmd.logRange != "" {
		if err := updateLogSheet(google, spreadsheet, cmd.logRange, cmd.worksheet, cmd.file, summary, ctx); err != nil {
			return err
		}
	}

	if cmd.ifChanged {
		if err := cmd.saveRevision(gdrive, spreadsheet, ctx); err != nil {
			warnf("%v", err)
		}
	}

	return nil
}

// configure fills in the export specific options not set on the command line.
func (cmd *Export) configure(config *Config) {
	if strings.TrimSpace(cmd.worksheet) == "" {
		cmd.worksheet = config.Worksheet
	}

	if strings.TrimSpace(cmd.file) == "" {
		cmd.file = config.Output
	}

	if strings.TrimSpace(cmd.file) == "" {
		cmd.file = DEFAULT_OUTPUT
	}

	if strings.TrimSpace(cmd.logRange) == "" {
		cmd.logRange = config.LogRange
	}

	if !cmd.archive && !cmd.noarchive {
		cmd.archive = config.ArchiveOnExport
	}
}

func (cmd *Export) report(summary *cards.Summary) {
	if cmd.debug {
		for i, record := range summary.Exported {
			values := []string{}
			for _, h := range summary.Header {
				values = append(values, fmt.Sprintf("%s:%q", h, record[h]))
			}

			debugf("row %-4d %s", summary.Positions[i], strings.Join(values, "  "))
		}
	}

	infof("Total rows: %d  pending: %d  archived: %d", summary.Total, summary.Pending, summary.Archived)
}
