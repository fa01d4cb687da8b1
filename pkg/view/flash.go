package view

// FlashKind is the alert style a message is shown with after a redirect.
type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

func (k FlashKind) Valid() bool {
	switch k {
	case FlashInfo, FlashSuccess, FlashWarning, FlashError:
		return true
	}
	return false
}

// Flash is the one-shot outcome of an admin action. Page is the list or
// detail path the action redirected to; a flash with a Page waits for that
// page and is not spent on anything else the browser loads first.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
	Page    string    `json:"page,omitempty"`
}

// For reports whether the flash belongs on path.
func (f Flash) For(path string) bool {
	return f.Page == "" || f.Page == path
}
