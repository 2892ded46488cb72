package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MakeTSV writes the header and records as tab separated values, with the record values in
// header order. Values that contain tabs, quotes or line breaks are quoted.
func MakeTSV(f io.Writer, header []string, records []Record) error {
	if len(header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, record := range records {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = record[h]
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// File is a Sink that replaces a TSV file on disk.
type File struct {
	Path string
}

func (f File) Write(header []string, records []Record) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cards-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := MakeTSV(tmp, header, records); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), f.Path)
}
