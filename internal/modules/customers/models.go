package customers

import (
	"strings"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

// Customer is a row of GET /api/users. Password is never displayed.
type Customer struct {
	ID           string          `json:"ID"`
	Email        nullable.String `json:"Email"`
	FirstName    nullable.String `json:"FirstName"`
	LastName     nullable.String `json:"LastName"`
	Password     nullable.String `json:"Password"`
	Address      nullable.String `json:"Address"`
	Phone        nullable.String `json:"Phone"`
	CreatedAt    nullable.Time   `json:"CreatedAt"`
	IsSubscribed nullable.Bool   `json:"IsSubscribed"`

	// OrderCount is filled in by the console, not the API.
	OrderCount int `json:"orderCount"`
}

func (c Customer) RecordID() string { return c.ID }

// DisplayName is "First Last" with absent parts dropped.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName.OrZero() + " " + c.LastName.OrZero())
}

// OrderBucket groups OrderCount into the list filter options.
func (c Customer) OrderBucket() string {
	switch {
	case c.OrderCount <= 0:
		return "0"
	case c.OrderCount <= 2:
		return "1-2"
	default:
		return "3+"
	}
}

var OrderBuckets = []string{"0", "1-2", "3+"}

// AttachOrderCounts sets OrderCount from counts keyed by customer ID.
func AttachOrderCounts(items []Customer, counts map[string]int) {
	for i := range items {
		items[i].OrderCount = counts[items[i].ID]
	}
}
