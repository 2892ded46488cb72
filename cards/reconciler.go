package cards

import (
	"context"
	"fmt"
)

// Source is the worksheet the cards are exported from.
type Source interface {
	Rows(ctx context.Context) ([][]string, error)
	Update(ctx context.Context, cells []Cell) error
}

// Sink receives the exported cards.
type Sink interface {
	Write(header []string, records []Record) error
}

// Cell addresses a single worksheet cell by 1-based row and column.
type Cell struct {
	Row    int
	Column int
	Value  string
}

type Options struct {
	ArchiveOnExport bool
	DryRun          bool
}

type Summary struct {
	Header      []string
	Exported    []Record
	Positions   []int
	Total       int
	Pending     int
	Archived    int
	WrittenBack bool
}

type Reconciler struct {
	source  Source
	sink    Sink
	options Options
}

func NewReconciler(source Source, sink Sink, options Options) *Reconciler {
	return &Reconciler{
		source:  source,
		sink:    sink,
		options: options,
	}
}

// Run exports the pending records to the sink and, in archive mode, marks them as archived in
// the source. The run stops at the first error: anything already written to the sink stays
// written.
func (r *Reconciler) Run(ctx context.Context) (*Summary, error) {
	rows, err := r.source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	deck, err := Load(rows)
	if err != nil {
		return nil, err
	}

	batch, positions := Select(deck.Records, r.options.ArchiveOnExport)

	summary := Summary{
		Header:    deck.Header,
		Exported:  batch,
		Positions: positions,
		Total:     len(deck.Records),
		Pending:   len(batch),
		Archived:  len(deck.Records) - len(batch),
	}

	if err := r.sink.Write(deck.Header, batch); err != nil {
		return &summary, fmt.Errorf("%w (%w)", ErrSinkWrite, err)
	}

	if !r.options.ArchiveOnExport || r.options.DryRun {
		return &summary, nil
	}

	if err := WriteBack(ctx, r.source, positions, deck.Column()); err != nil {
		return &summary, err
	}

	summary.WrittenBack = len(positions) > 0

	return &summary, nil
}

// WriteBack sets the 'archived' column of each listed row to "1" with a single update. Nothing
// is sent if there are no rows.
func WriteBack(ctx context.Context, source Source, positions []int, column int) error {
	if len(positions) == 0 {
		return nil
	}

	if column < 1 {
		return fmt.Errorf("%w (invalid '%s' column %d)", ErrRemoteWrite, ARCHIVED, column)
	}

	cells := make([]Cell, 0, len(positions))
	for _, row := range positions {
		cells = append(cells, Cell{
			Row:    row,
			Column: column,
			Value:  "1",
		})
	}

	if err := source.Update(ctx, cells); err != nil {
		return fmt.Errorf("%w (%w)", ErrRemoteWrite, err)
	}

	return nil
}
