package console

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/okian/bikeshare/internal/domain/model"
)

// idColumn names the unnamed leading column in raw data pages.
const idColumn = "id"

// pager walks a table in fixed-size pages.
type pager struct {
	table *model.Table
	size  int
	next  int
}

func newPager(table *model.Table, size int) *pager {
	return &pager{table: table, size: size}
}

// done reports whether every row has been shown.
func (p *pager) done() bool { return p.next >= p.table.Len() }

// page returns the next page as a data frame, or false when no row is left.
func (p *pager) page() (dataframe.DataFrame, int, bool) {
	if p.done() {
		return dataframe.DataFrame{}, 0, false
	}
	from := p.next
	rows := p.table.Slice(from, from+p.size)
	p.next = from + len(rows)
	return frame(p.table.Schema(), rows), from, true
}

// WriteRows writes the first n rows of table as one raw data page. It writes
// nothing when table is empty or n is not positive.
func WriteRows(w io.Writer, table *model.Table, n int) error {
	if n <= 0 {
		return nil
	}
	df, offset, ok := newPager(table, n).page()
	if !ok {
		return nil
	}
	return printFrame(w, df, offset)
}

// frame builds a string-typed data frame of rows with the source columns
// followed by month, day_of_week and hour.
func frame(schema model.Schema, rows []model.Trip) dataframe.DataFrame {
	cols := schema.DisplayColumns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c
		if c == model.ColumnID {
			header[i] = idColumn
		}
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = row.Value(c)
		}
		records = append(records, rec)
	}

	return dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.NaNValues(nil),
	)
}

// printFrame writes df with its row positions, starting at offset, in
// aligned columns.
func printFrame(w io.Writer, df dataframe.DataFrame, offset int) error {
	if df.Err != nil {
		return fmt.Errorf("build raw data page: %w", df.Err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, rec := range df.Records() {
		label := ""
		if i > 0 {
			label = strconv.Itoa(offset + i - 1)
		}
		fmt.Fprint(tw, label)
		for _, v := range rec {
			fmt.Fprint(tw, "\t", v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
