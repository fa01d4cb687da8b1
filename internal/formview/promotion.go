package formview

import (
	"strings"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

type PromotionDraft struct {
	Type               string `form:"type"`
	Name               string `form:"name" validate:"required"`
	Description        string `form:"description" validate:"required"`
	DiscountPercentage string `form:"discountPercentage"`
	DiscountAmount     string `form:"discountAmount"`
	BundlePrice        string `form:"bundlePrice"`
	ProductID          string `form:"productId"`
	CategoryID         string `form:"categoryId"`
	StartDate          string `form:"startDate" validate:"required"`
	EndDate            string `form:"endDate" validate:"required"`
	IsActive           string `form:"isActive"`
}

var promotionMessages = validation.Messages{
	"name":        "Name is required",
	"description": "Description is required",
	"startDate":   "Start date is required",
	"endDate":     "End date is required",
}

// discountKey is the form key of the discount column for t.
func discountKey(t promotions.DiscountType) string {
	switch t {
	case promotions.Fixed:
		return "discountAmount"
	case promotions.Bundle:
		return "bundlePrice"
	default:
		return "discountPercentage"
	}
}

func PromotionSpec(t promotions.DiscountType) Spec[PromotionDraft] {
	discount := Field{Key: discountKey(t), Label: "Discount Percentage (%)", Input: InputText, Required: true}
	switch t {
	case promotions.Fixed:
		discount.Label = "Discount Amount ($)"
	case promotions.Bundle:
		discount.Label = "Bundle Price ($)"
	}
	return Spec[PromotionDraft]{
		Kind: entity.Promotion,
		Fields: func(Mode) []Field {
			return []Field{
				{Key: "name", Label: "Promotion Code", Input: InputText, Required: true},
				{Key: "description", Label: "Description", Input: InputTextarea, Required: true},
				discount,
				{Key: "productId", Label: "Product ID", Input: InputText},
				{Key: "categoryId", Label: "Category ID", Input: InputText},
				{Key: "startDate", Label: "Start Date", Input: InputDate, Required: true},
				{Key: "endDate", Label: "End Date", Input: InputDate, Required: true},
				{Key: "isActive", Label: "Active", Input: InputSelect, Options: []Option{
					{Value: "true", Label: "True"},
					{Value: "false", Label: "False"},
				}},
			}
		},
		Validate: validatePromotion,
	}
}

func NewPromotionDraft(t promotions.DiscountType) PromotionDraft {
	return PromotionDraft{Type: string(t), IsActive: "true"}
}

func EditPromotionDraft(p promotions.Promotion) PromotionDraft {
	return PromotionDraft{
		Type:               string(p.Type()),
		Name:               p.Name,
		Description:        p.Description,
		DiscountPercentage: p.DiscountPercentage.OrZero(),
		DiscountAmount:     p.DiscountAmount.OrZero(),
		BundlePrice:        p.BundlePrice.OrZero(),
		ProductID:          p.ProductID.OrZero(),
		CategoryID:         p.CategoryID.OrZero(),
		StartDate:          formatDate(p.StartDate),
		EndDate:            formatDate(p.EndDate),
		IsActive:           boolText(p.IsActive),
	}
}

func (d *PromotionDraft) Blur() {
	d.DiscountPercentage = strings.TrimSpace(d.DiscountPercentage)
	d.DiscountAmount = strings.TrimSpace(d.DiscountAmount)
	d.BundlePrice = strings.TrimSpace(d.BundlePrice)
	d.StartDate = strings.TrimSpace(d.StartDate)
	d.EndDate = strings.TrimSpace(d.EndDate)
}

func validatePromotion(_ Mode, d *PromotionDraft) Errors {
	errs := Errors(validation.Struct(d, promotionMessages))

	t, ok := promotions.ParseDiscountType(d.Type)
	if !ok {
		errs["_"] = "Unknown promotion type."
		return errs
	}
	key := discountKey(t)

	set := map[string]string{
		"discountPercentage": d.DiscountPercentage,
		"discountAmount":     d.DiscountAmount,
		"bundlePrice":        d.BundlePrice,
	}
	for k, v := range set {
		if k != key && v != "" {
			errs[key] = "Only one discount type may be set"
		}
	}
	switch v := set[key]; {
	case v == "":
		errs[key] = "Discount is required"
	case !validation.IsPrice(v):
		errs[key] = "Invalid price format"
	}

	start, startErr := time.Parse(nullable.DateLayout, d.StartDate)
	if d.StartDate != "" && startErr != nil {
		errs["startDate"] = "Use the YYYY-MM-DD format"
	}
	end, endErr := time.Parse(nullable.DateLayout, d.EndDate)
	switch {
	case d.EndDate == "":
	case endErr != nil:
		errs["endDate"] = "Use the YYYY-MM-DD format"
	case startErr == nil && end.Before(start):
		errs["endDate"] = "End date must not be before the start date"
	}

	if d.IsActive != "" && d.IsActive != "true" && d.IsActive != "false" {
		errs["isActive"] = "Choose true or false"
	}
	return errs
}

// Input shapes the snake_case payload. Only the discount column of the
// draft's type is sent; the others are null.
func (d PromotionDraft) Input() promotions.Input {
	t, _ := promotions.ParseDiscountType(d.Type)
	in := promotions.Input{
		Name:        d.Name,
		Description: d.Description,
		ProductID:   optional(d.ProductID),
		CategoryID:  optional(d.CategoryID),
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive != "false",
	}
	switch t {
	case promotions.Fixed:
		in.DiscountAmount = optional(d.DiscountAmount)
	case promotions.Bundle:
		in.BundlePrice = optional(d.BundlePrice)
	default:
		in.DiscountPercentage = optional(d.DiscountPercentage)
	}
	return in
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(nullable.DateLayout)
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
