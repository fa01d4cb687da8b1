package view

type Alert struct {
	Message string
	Kind    FlashKind
}

type StatCard struct {
	Label  string
	Value  string
	Change string
	// Up is true for a non-negative change.
	Up bool
}

type RecentOrderRow struct {
	ID       string
	ShortID  string
	Customer string
	Date     string
	Total    string
	Status   string
	URL      string
}

type TopProductRow struct {
	Name    string
	Sales   string
	Revenue string
}

// Bar is one bar of a chart; Height is a percentage of the tallest bar.
type Bar struct {
	Label  string
	Value  string
	Height int
}

type Chart struct {
	Title string
	Bars  []Bar
}

// QuickAction is a shortcut link in the dashboard header.
type QuickAction struct {
	Label string
	URL   string
}

// DashboardPage holds one error per panel; a failed panel shows its error
// while the others render normally.
type DashboardPage struct {
	Layout

	QuickActions []QuickAction

	Alerts    []Alert
	AlertsErr string

	Stats    []StatCard
	StatsErr string

	RecentOrders    []RecentOrderRow
	RecentOrdersErr string

	TopProducts    []TopProductRow
	TopProductsErr string

	Charts   []Chart
	ChartErr string
}
