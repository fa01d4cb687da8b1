package formview

import (
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/shared/slug"
)

type CategoryDraft struct {
	Name             string `form:"Name" validate:"required"`
	Slug             string `form:"Slug" validate:"required"`
	IsGenderSpecific bool   `form:"IsGenderSpecific"`
	Description      string `form:"Description" validate:"required"`
	ParentID         string `form:"parentID"`

	ImageFile *Upload `form:"-" upload:"ImageFile"`
}

var categoryMessages = validation.Messages{
	"Name":        "Name is required",
	"Slug":        "Slug is required",
	"Description": "Description is required",
}

// CategorySpec needs the parent options, which depend on the loaded list.
func CategorySpec(parents []categories.Category) Spec[CategoryDraft] {
	opts := []Option{{Value: "", Label: "None"}}
	for _, c := range parents {
		name := c.Name
		if name == "" {
			name = entity.StrategyFor(entity.Category).Fallback
		}
		opts = append(opts, Option{Value: c.ID, Label: name})
	}
	return Spec[CategoryDraft]{
		Kind: entity.Category,
		Fields: func(m Mode) []Field {
			image := Field{Key: "ImageFile", Label: "Category Image", Input: InputFile, Required: true}
			if m == Edit {
				image = Field{Key: "ImageFile", Label: "Update Image (optional)", Input: InputFile}
			}
			return []Field{
				{Key: "Name", Label: "Name", Input: InputText, Required: true},
				{Key: "Slug", Label: "Slug", Input: InputText, Required: true},
				{Key: "IsGenderSpecific", Label: "Gender Specific", Input: InputCheckbox},
				{Key: "Description", Label: "Description", Input: InputTextarea, Required: true},
				{Key: "parentID", Label: "Parent Category", Input: InputSelect, Options: opts},
				image,
			}
		},
		Validate: validateCategory,
	}
}

func EditCategoryDraft(c categories.Category) CategoryDraft {
	return CategoryDraft{
		Name:             c.Name,
		Slug:             c.Slug,
		IsGenderSpecific: c.IsGenderSpecific.OrZero(),
		Description:      c.Description.OrZero(),
		ParentID:         c.ParentID.OrZero(),
	}
}

// Blur normalizes a typed slug; an empty slug stays empty so the required
// check still fires.
func (d *CategoryDraft) Blur() {
	if d.Slug != "" {
		d.Slug = slug.Make(d.Slug)
	}
}

func validateCategory(m Mode, d *CategoryDraft) Errors {
	errs := Errors(validation.Struct(d, categoryMessages))
	switch {
	case d.ImageFile == nil:
		if m == Create {
			errs["ImageFile"] = "Image is required"
		}
	case !d.ImageFile.IsImage():
		errs["ImageFile"] = "File must be an image"
	case d.ImageFile.Size == 0 && m == Create:
		errs["ImageFile"] = "Image is required"
	}
	return errs
}

// Apply denormalizes the draft over orig (the zero Category on create).
func (d CategoryDraft) Apply(orig categories.Category) categories.Category {
	c := orig
	c.Name = d.Name
	c.Slug = d.Slug
	c.IsGenderSpecific = nullable.Rewrap(orig.IsGenderSpecific, d.IsGenderSpecific)
	c.Description = nullable.Rewrap(orig.Description, d.Description)
	c.ParentID = nullable.Rewrap(orig.ParentID, d.ParentID)
	return c
}

// CategoryInput shapes a denormalized category and the optional new image
// for the API.
func CategoryInput(c categories.Category, img *Upload) categories.Input {
	in := categories.Input{
		Name:             c.Name,
		Slug:             c.Slug,
		IsGenderSpecific: c.IsGenderSpecific.OrZero(),
		Description:      c.Description.OrZero(),
		ParentID:         c.ParentID,
	}
	if img != nil {
		in.Image = &categories.Image{Filename: img.Filename, ContentType: img.ContentType, Data: img.Data}
	}
	return in
}
