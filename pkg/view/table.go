package view

// Cell is one rendered table cell. Image, when set, is shown as a thumbnail
// instead of Text; Muted cells render placeholders such as "N/A".
type Cell struct {
	Text  string
	Image string
	Muted bool
}

type TableHeader struct {
	Label string
	// SortURL is empty for columns that cannot be sorted.
	SortURL string
	// Arrow is "▲" or "▼" on the active sort column.
	Arrow string
}

type TableRow struct {
	ID    string
	Cells []Cell
	// RowURL is the row-click target, if any.
	RowURL    string
	EditURL   string
	DeleteURL string
}

type FilterControl struct {
	Key      string
	Label    string
	Options  []string
	Selected string
}

type Table struct {
	BasePath string
	Search   string
	Filters  []FilterControl
	Headers  []TableHeader
	Rows     []TableRow
	// Empty is shown when Rows is empty.
	Empty string
	// Hidden carries the sort state through the search form.
	Hidden map[string]string
}
