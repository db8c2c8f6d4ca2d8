package table

// Table is an ordered collection of rows. A nil Table means no data is held;
// an empty non-nil Table is a held dataset with zero rows.
type Table []Row

// Len returns the number of rows in the table.
func (t Table) Len() int {
	return len(t)
}

// Tail returns the last n rows by position, or every row if the table is shorter.
// A non-positive n yields an empty table.
func (t Table) Tail(n int) Table {
	if n <= 0 {
		return Table{}
	}
	if n >= len(t) {
		return t
	}
	return t[len(t)-n:]
}

// Filter returns the rows for which keep reports true, preserving order.
func (t Table) Filter(keep func(Row) bool) Table {
	out := make(Table, 0, len(t))
	for _, row := range t {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Snapshot is a complete replacement for one named dataset.
type Snapshot struct {
	Dataset string `json:"dataset"`
	Rows    Table  `json:"rows"`
}
