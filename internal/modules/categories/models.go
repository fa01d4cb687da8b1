package categories

import (
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

// Category is the row returned by GET /api/categories.
type Category struct {
	ID               string          `json:"ID"`
	Name             string          `json:"Name"`
	Slug             string          `json:"Slug"`
	ParentID         nullable.String `json:"parentID"`
	IsGenderSpecific nullable.Bool   `json:"IsGenderSpecific"`
	ParentName       nullable.String `json:"ParentName"`
	ParentSlug       nullable.String `json:"ParentSlug"`
	Description      nullable.String `json:"Description"`
	ImageUrl         nullable.String `json:"ImageUrl"`
	CreatedAt        nullable.Time   `json:"CreatedAt"`
	UpdatedAt        nullable.Time   `json:"UpdatedAt"`
	ProductCount     int64           `json:"productCount,omitempty"`
}

func (c Category) RecordID() string    { return c.ID }
func (c Category) DisplayName() string { return c.Name }

// Input is the multipart body shared by create and update. Image is optional
// on update.
type Input struct {
	Name             string
	Slug             string
	IsGenderSpecific bool
	Description      string
	ParentID         nullable.String
	Image            *Image
}

type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
