package dashboard

import "github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"

type Notification struct {
	Message string `json:"Message"`
	// Type is success, error or warning.
	Type string `json:"Type"`
}

type RecentOrder struct {
	ID       string        `json:"ID"`
	Customer string        `json:"Customer"`
	Date     nullable.Time `json:"Date"`
	Total    string        `json:"Total"`
	Status   string        `json:"Status"`
}

type Stats struct {
	TotalSales        float64 `json:"TotalSales"`
	OrdersThisMonth   float64 `json:"OrdersThisMonth"`
	NewSubscribers    float64 `json:"NewSubscribers"`
	NewCustomers      float64 `json:"NewCustomers"`
	SalesChange       float64 `json:"SalesChange"`
	OrdersChange      float64 `json:"OrdersChange"`
	SubscribersChange float64 `json:"SubscribersChange"`
	CustomersChange   float64 `json:"CustomersChange"`
}

type ProductSales struct {
	Name    string  `json:"Name"`
	Sales   float64 `json:"Sales"`
	Revenue string  `json:"Revenue"`
}

type MonthlySales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

type MonthlyOrders struct {
	Month  string  `json:"month"`
	Orders float64 `json:"orders"`
}

type ProductRevenue struct {
	ProductName string  `json:"productName"`
	Revenue     float64 `json:"revenue"`
}

type SalesChart struct {
	SalesLast6Months  []MonthlySales   `json:"salesLast6Months"`
	OrdersLast6Months []MonthlyOrders  `json:"ordersLast6Months"`
	RevenuePerProduct []ProductRevenue `json:"revenuePerProduct"`
}
