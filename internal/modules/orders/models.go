package orders

import (
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

const (
	StatusPending   = "pending"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// EditableStatuses are the statuses an admin can set from the edit form.
var EditableStatuses = []string{StatusPending, StatusShipped, StatusDelivered}

// FilterStatuses are offered by the list filter.
var FilterStatuses = []string{StatusPending, StatusShipped, StatusDelivered, StatusCancelled}

type Order struct {
	ID              string        `json:"ID"`
	UserID          string        `json:"UserID"`
	CustomerName    string        `json:"CustomerName"`
	TotalAmount     string        `json:"TotalAmount"`
	Status          string        `json:"Status"`
	ShippingAddress string        `json:"ShippingAddress"`
	CreatedAt       nullable.Time `json:"CreatedAt"`
	UpdatedAt       nullable.Time `json:"UpdatedAt"`
}

func (o Order) RecordID() string    { return o.ID }
func (o Order) DisplayName() string { return o.CustomerName }

// Item is one line of GET /api/order-items/{orderId}.
type Item struct {
	ID          string        `json:"ID"`
	OrderID     string        `json:"OrderID"`
	ProductID   string        `json:"ProductID"`
	Quantity    int32         `json:"Quantity"`
	PriceAtTime string        `json:"PriceAtTime"`
	CreatedAt   nullable.Time `json:"CreatedAt"`
	ProductName string        `json:"ProductName"`
}

type updateBody struct {
	Status string `json:"status"`
}
