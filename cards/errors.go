package cards

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrAuthentication = errors.New("authentication error")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrSinkWrite      = errors.New("error writing TSV file")
	ErrRemoteWrite    = errors.New("error updating worksheet")
)

// SchemaMismatchError is returned by Load for a data row that does not have exactly one value
// per header column. Row is the 1-based position of the row in the worksheet.
type SchemaMismatchError struct {
	Row     int
	Headers int
	Values  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("row %d has %d values, expected %d", e.Row, e.Values, e.Headers)
}

func (e *SchemaMismatchError) Is(err error) bool {
	return err == ErrSchemaMismatch
}
