package promotions

import (
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

type DiscountType string

const (
	Percentage DiscountType = "percentage"
	Fixed      DiscountType = "fixed"
	Bundle     DiscountType = "bundle"
)

func DiscountTypes() []DiscountType { return []DiscountType{Percentage, Fixed, Bundle} }

func ParseDiscountType(s string) (DiscountType, bool) {
	for _, t := range DiscountTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Promotion uses the API's camelCase shape; discount columns are plain
// strings or null.
type Promotion struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	DiscountPercentage nullable.String `json:"discountPercentage"`
	DiscountAmount     nullable.String `json:"discountAmount"`
	BundlePrice        nullable.String `json:"bundlePrice"`
	ProductID          nullable.String `json:"productId"`
	CategoryID         nullable.String `json:"categoryId"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          nullable.Time   `json:"createdAt"`
	UpdatedAt          nullable.Time   `json:"updatedAt"`
	ProductName        nullable.String `json:"productName"`
	CategoryName       nullable.String `json:"categoryName"`
}

func (p Promotion) RecordID() string    { return p.ID }
func (p Promotion) DisplayName() string { return p.Name }

// Type infers the discount type from the first non-empty discount column.
func (p Promotion) Type() DiscountType {
	switch {
	case p.DiscountPercentage.OrZero() != "":
		return Percentage
	case p.DiscountAmount.OrZero() != "":
		return Fixed
	default:
		return Bundle
	}
}

// Discount renders the discount column, e.g. "20.00%", "$10.00" or
// "Bundle: $50.00".
func (p Promotion) Discount() string {
	switch {
	case p.DiscountPercentage.OrZero() != "":
		return p.DiscountPercentage.Val + "%"
	case p.DiscountAmount.OrZero() != "":
		return "$" + p.DiscountAmount.Val
	case p.BundlePrice.OrZero() != "":
		return "Bundle: $" + p.BundlePrice.Val
	default:
		return nullable.NA
	}
}

// Status is "Active" when enabled and inside its window, "Inactive" when
// enabled outside it and "Expired" when disabled.
func (p Promotion) Status(now time.Time) string {
	switch {
	case p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate):
		return "Active"
	case p.IsActive:
		return "Inactive"
	default:
		return "Expired"
	}
}

// Input is the snake_case body of POST/PUT /api/promotions. Exactly one
// discount column is set.
type Input struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	DiscountPercentage *string `json:"discount_percentage"`
	DiscountAmount     *string `json:"discount_amount"`
	BundlePrice        *string `json:"bundle_price"`
	ProductID          *string `json:"product_id"`
	CategoryID         *string `json:"category_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	IsActive           bool    `json:"is_active"`
}
