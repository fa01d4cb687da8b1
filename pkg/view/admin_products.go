package view

type AdminCategoryChoice struct {
	ID      string
	Name    string
	Checked bool
}

// AdminAssignCategories is the category picker reached by clicking a
// product row.
type AdminAssignCategories struct {
	Layout

	ProductID   string
	ProductName string
	Image       string
	Categories  []AdminCategoryChoice
	Action      string
	CancelURL   string
	Error       string
}
