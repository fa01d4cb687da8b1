package formview

import (
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

// ProductDraft is the flat, editable product. StockInput is the raw text
// buffer; Stock is its reconciled value.
type ProductDraft struct {
	Name         string `form:"Name" validate:"required"`
	BasePrice    string `form:"BasePrice" validate:"price"`
	CurrentPrice string `form:"CurrentPrice" validate:"price"`
	Description  string `form:"Description" validate:"required"`
	Weight       string `form:"Weight" validate:"required"`
	StockInput   string `form:"Stock"`
	Stock        int32  `form:"-"`
	ImageUrl     string `form:"ImageUrl"`

	Images []Upload `form:"-" upload:"Images"`
	// Replacement is an optional new image uploaded in edit mode.
	Replacement *Upload `form:"-" upload:"ImageFile"`
}

var productMessages = validation.Messages{
	"Name":               "Name is required",
	"BasePrice.price":    "Invalid price format",
	"CurrentPrice.price": "Invalid price format",
	"Description":        "Description is required",
	"Weight":             "Weight is required",
}

var ProductSpec = Spec[ProductDraft]{
	Kind:     entity.Product,
	Fields:   productFields,
	Validate: validateProduct,
}

func productFields(m Mode) []Field {
	fields := []Field{
		{Key: "Name", Label: "Name", Input: InputText, Required: true},
		{Key: "BasePrice", Label: "Base Price ($)", Input: InputText, Required: true},
		{Key: "CurrentPrice", Label: "Current Price ($)", Input: InputText, Required: true},
		{Key: "Description", Label: "Description", Input: InputTextarea, Required: true},
		{Key: "Weight", Label: "Weight", Input: InputText, Required: true},
	}
	if m == Edit {
		fields = append(fields,
			Field{Key: "ImageUrl", Label: "Image URL", Input: InputText, Required: true},
			Field{Key: "ImageFile", Label: "Replace Image (optional)", Input: InputFile},
		)
	} else {
		fields = append(fields, Field{Key: "Images", Label: "Product Images", Input: InputFile, Required: true, Multiple: true})
	}
	return append(fields, Field{Key: "Stock", Label: "Stock", Input: InputNumber, Required: true})
}

// NewProductDraft gives the create defaults.
func NewProductDraft() ProductDraft {
	return ProductDraft{StockInput: "0"}
}

// EditProductDraft normalizes p for editing.
func EditProductDraft(p products.Product) ProductDraft {
	stock := NewStockBuffer(p.Stock.OrZero())
	return ProductDraft{
		Name:         p.Name,
		BasePrice:    p.BasePrice,
		CurrentPrice: p.CurrentPrice,
		Description:  p.Description.OrZero(),
		Weight:       p.Weight.OrZero(),
		StockInput:   stock.Raw,
		Stock:        stock.Model,
		ImageUrl:     p.ImageUrl.OrZero(),
	}
}

// Blur reconciles the stock buffer.
func (d *ProductDraft) Blur() {
	b := StockBuffer{Raw: d.StockInput, Model: d.Stock}
	b.Blur()
	d.StockInput, d.Stock = b.Raw, b.Model
}

func validateProduct(m Mode, d *ProductDraft) Errors {
	errs := Errors(validation.Struct(d, productMessages))
	if d.Stock < 0 {
		errs["Stock"] = "Stock cannot be negative"
	}

	switch m {
	case Create:
		if len(d.Images) == 0 {
			errs["Images"] = "At least one image is required"
		} else {
			for _, img := range d.Images {
				if !img.IsImage() {
					errs["Images"] = "All files must be images"
					break
				}
			}
		}
	case Edit:
		if d.Replacement != nil {
			if !d.Replacement.IsImage() {
				errs["ImageFile"] = "File must be an image"
			}
			break
		}
		if d.ImageUrl == "" {
			errs["ImageUrl"] = "Image URL is required"
		} else if !validation.IsURL(d.ImageUrl) {
			errs["ImageUrl"] = "Invalid URL format"
		}
	}
	return errs
}

// CreateInput shapes a validated create draft for the API.
func (d ProductDraft) CreateInput() products.CreateInput {
	in := products.CreateInput{
		Name:         d.Name,
		BasePrice:    d.BasePrice,
		CurrentPrice: d.CurrentPrice,
		Description:  d.Description,
		Stock:        d.Stock,
		Weight:       d.Weight,
	}
	for _, img := range d.Images {
		in.Images = append(in.Images, products.Image{Filename: img.Filename, ContentType: img.ContentType, Data: img.Data})
	}
	return in
}

// Apply denormalizes the draft over the original record. Untouched nullable
// fields keep their original validity.
func (d ProductDraft) Apply(orig products.Product) products.Product {
	p := orig
	p.Name = d.Name
	p.BasePrice = d.BasePrice
	p.CurrentPrice = d.CurrentPrice
	p.Description = nullable.Rewrap(orig.Description, d.Description)
	p.Weight = nullable.Rewrap(orig.Weight, d.Weight)
	p.Stock = nullable.Rewrap(orig.Stock, d.Stock)
	p.ImageUrl = nullable.Rewrap(orig.ImageUrl, d.ImageUrl)
	return p
}

// ProductUpdateInput is the JSON body for an edited product.
func ProductUpdateInput(p products.Product) products.UpdateInput {
	return products.UpdateInput{
		Name:         p.Name,
		BasePrice:    p.BasePrice,
		CurrentPrice: p.CurrentPrice,
		Description:  p.Description.OrZero(),
		Stock:        p.Stock.OrZero(),
		Weight:       p.Weight.OrZero(),
		ImageURL:     p.ImageUrl.OrZero(),
	}
}
