package view

type AdminOrderItem struct {
	ProductName string
	Qty         int
	Unit        string
	Line        string
}

// AdminOrderDetail is the order page reached by clicking an order row.
type AdminOrderDetail struct {
	Layout

	ID              string
	ShortID         string
	Status          string
	CustomerName    string
	ShippingAddress string
	CreatedAt       string
	Total           string

	Items []AdminOrderItem
	// ItemsError replaces the items table when they failed to load.
	ItemsError string
	BackURL    string
}
