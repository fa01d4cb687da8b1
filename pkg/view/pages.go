package view

type NavItem struct {
	Label  string
	URL    string
	Active bool
}

// Layout is embedded by every page.
type Layout struct {
	Title string
	Nav   []NavItem
	Flash *Flash
}

// Choice is one button of a picker dialog.
type Choice struct {
	Label string
	URL   string
}

// Picker asks for one choice before a form can open, e.g. the promotion
// type.
type Picker struct {
	Title     string
	Choices   []Choice
	CancelURL string
}

// ListPage is the table page shared by every entity kind.
type ListPage struct {
	Layout

	Heading  string
	AddURL   string
	AddLabel string
	// Error is shown above the table when the list could not be loaded.
	Error string
	Table Table

	Modal   *Form
	Confirm *ConfirmDelete
	Picker  *Picker
}

type ErrorPage struct {
	Layout

	Status    int
	Message   string
	RequestID string
}
