package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/drive/v3"
)

func (cmd *Export) revisionFile(spreadsheet string) string {
	return filepath.Join(cmd.workdir, fmt.Sprintf("%s.revision", spreadsheet))
}

// changed compares the latest Google Drive revision of the spreadsheet with the revision
// recorded after the last export.
func (cmd *Export) changed(gdrive *drive.Service, spreadsheet string, ctx context.Context) (bool, error) {
	latest, err := getVersion(gdrive, spreadsheet, ctx)
	if err != nil {
		return false, fmt.Errorf("unable to retrieve spreadsheet revision (%w)", err)
	}

	last, err := loadRevision(cmd.revisionFile(spreadsheet))
	if err != nil {
		if cmd.debug {
			debugf("no previous revision (%v)", err)
		}

		return true, nil
	}

	if cmd.debug {
		debugf("Spreadsheet revision - latest:%s (%s)  last:%s", latest.revision, latest.modified.Format("2006-01-02 15:04:05"), last)
	}

	return latest.revision != last, nil
}

// saveRevision records the spreadsheet revision after the export (and write-back) has completed.
func (cmd *Export) saveRevision(gdrive *drive.Service, spreadsheet string, ctx context.Context) error {
	latest, err := getVersion(gdrive, spreadsheet, ctx)
	if err != nil {
		return fmt.Errorf("unable to retrieve spreadsheet revision (%w)", err)
	}

	return storeRevision(cmd.revisionFile(spreadsheet), latest.revision)
}

func loadRevision(file string) (string, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	revision := strings.TrimSpace(string(bytes))
	if revision == "" {
		return "", fmt.Errorf("empty revision file %s", file)
	}

	return revision, nil
}

func storeRevision(file string, revision string) error {
	if err := os.MkdirAll(filepath.Dir(file), 0770); err != nil {
		return err
	}

	return os.WriteFile(file, []byte(revision+"\n"), 0660)
}
