package view

type FormOption struct {
	Value    string
	Label    string
	Selected bool
}

type FormField struct {
	Key      string
	Label    string
	Input    string
	Required bool
	Multiple bool
	Value    string
	Checked  bool
	Options  []FormOption
	Error    string
	// Previews are inline data URLs of files picked in this submission.
	Previews []string
	// Current is the stored image URL shown in edit mode.
	Current string
}

type Form struct {
	Title     string
	Action    string
	CancelURL string
	Submit    string
	Multipart bool
	// Hidden inputs carried with the form.
	Hidden map[string]string
	Fields []FormField
	// Error is a message not tied to one field.
	Error string
}

// ConfirmDelete is the delete confirmation dialog.
type ConfirmDelete struct {
	Title     string
	Message   string
	Action    string
	CancelURL string
}
