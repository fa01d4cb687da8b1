package products

import (
	"strings"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

const (
	UnnamedProduct = "Unnamed Product"
	Uncategorized  = "Uncategorized"
)

// Product is the row returned by GET /api/products.
type Product struct {
	ID            string          `json:"ID"`
	CategoryID    string          `json:"CategoryID"`
	Name          string          `json:"Name"`
	Description   nullable.String `json:"Description"`
	BasePrice     string          `json:"BasePrice"`
	CurrentPrice  string          `json:"CurrentPrice"`
	ImageUrl      nullable.String `json:"ImageUrl"`
	CreatedAt     nullable.Time   `json:"CreatedAt"`
	UpdatedAt     nullable.Time   `json:"UpdatedAt"`
	CategoryName  string          `json:"CategoryName"`
	Stock         nullable.Int32  `json:"Stock"`
	ReservedStock nullable.Int32  `json:"ReservedStock"`
	TotalCount    int64           `json:"TotalCount"`
	Weight        nullable.String `json:"Weight"`
}

func (p Product) RecordID() string    { return p.ID }
func (p Product) DisplayName() string { return p.Name }

// normalize fills the page-level defaults for a freshly fetched row.
func (p Product) normalize() Product {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = UnnamedProduct
	}
	if strings.TrimSpace(p.CategoryName) == "" {
		p.CategoryName = Uncategorized
	}
	return p
}

// CreateInput is sent as multipart with one "image" part per file.
type CreateInput struct {
	Name         string
	BasePrice    string
	CurrentPrice string
	Description  string
	Stock        int32
	Weight       string
	Images       []Image
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UpdateInput is the JSON body of PUT /api/products/{id}.
type UpdateInput struct {
	Name         string `json:"name"`
	BasePrice    string `json:"basePrice"`
	CurrentPrice string `json:"currentPrice"`
	Description  string `json:"description"`
	Stock        int32  `json:"stock"`
	Weight       string `json:"weight"`
	ImageURL     string `json:"imageUrl"`
}

type assignCategoriesBody struct {
	CategoryIDs []string `json:"categoryIDs"`
}
