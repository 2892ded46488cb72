package commands

import (
	"context"
	"flag"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const APP = "anki-sheets"

type Options struct {
	Debug   bool
	LogFile string
}

type version struct {
	revision string
	modified time.Time
}

// command holds the options common to every command that talks to Google Sheets.
type command struct {
	config      string
	workdir     string
	credentials string
	tokens      string
	url         string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, "Configuration file path")
	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, revisions, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Path for the OAuth2 tokens file. Defaults to <workdir>/<credentials>.tokens")
	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet URL")

	return flagset
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("    --debug         Displays internal information for diagnosing errors")
}

// spreadsheetID extracts the spreadsheet ID from a Google Sheets URL. A bare ID is returned as is.
func spreadsheetID(url string) (string, error) {
	url = strings.TrimSpace(url)

	if match := regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/([^/]+?)(?:/.*)?$`).FindStringSubmatch(url); len(match) > 1 {
		return match[1], nil
	}

	if regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

func getSpreadsheet(google *sheets.Service, id string, ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

func getSheet(spreadsheet *sheets.Spreadsheet, area string) (*sheets.Sheet, error) {
	name := sheetName(area)
	for _, sheet := range spreadsheet.Sheets {
		if normalise(sheet.Properties.Title) == normalise(name) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet for '%s'", area)
}

func getVersion(gdrive *drive.Service, fileId string, ctx context.Context) (*version, error) {
	page := ""
	latest := version{
		revision: "",
		modified: time.Time{},
	}

	for {
		call := gdrive.Revisions.List(fileId).Fields("nextPageToken", "revisions(id,modifiedTime)").Context(ctx)
		if page != "" {
			call.PageToken(page)
		}

		revisions, err := call.Do()
		if err != nil {
			return nil, err
		}

		for _, revision := range revisions.Revisions {
			datetime, err := time.Parse(time.RFC3339Nano, revision.ModifiedTime)
			if err != nil {
				return nil, err
			}

			if latest.modified.Before(datetime) {
				latest.revision = revision.Id
				latest.modified = datetime
			}
		}

		if page = revisions.NextPageToken; page == "" {
			break
		}
	}

	if latest.modified.IsZero() {
		return nil, fmt.Errorf("unable to identify latest revision for file ID %s", fileId)
	}

	return &latest, nil
}

// sheetName returns the worksheet name from an A1 range e.g. 'Words!A1:K' or 'Words'.
func sheetName(area string) string {
	name := strings.TrimSpace(area)
	if match := regexp.MustCompile(`^(.+?)!.*$`).FindStringSubmatch(name); len(match) > 1 {
		name = match[1]
	}

	if len(name) > 1 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		name = strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}

	return name
}

// quote returns a worksheet name in the form used by A1 notation.
func quote(name string) string {
	if regexp.MustCompile(`^[a-zA-Z0-9_]+$`).MatchString(name) {
		return name
	}

	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// column returns the A1 name of a 1-based column number.
func column(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}

	return name
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
