package categories

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
)

const basePath = "/api/categories"

type Repo struct{ api apiclient.API }

func NewRepo(api apiclient.API) *Repo { return &Repo{api: api} }

func (r *Repo) List(ctx context.Context) ([]Category, error) {
	var items []Category
	if err := r.api.Get(ctx, "categories.list", basePath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) Create(ctx context.Context, in Input) error {
	return r.api.SendMultipart(ctx, "categories.create", http.MethodPost, basePath, in.multipart(), nil)
}

func (r *Repo) Update(ctx context.Context, id string, in Input) error {
	return r.api.SendMultipart(ctx, "categories.update", http.MethodPut, apiclient.PathID(basePath, id), in.multipart(), nil)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "categories.delete", apiclient.PathID(basePath, id))
}

func (in Input) multipart() apiclient.Multipart {
	form := apiclient.Multipart{
		Fields: []apiclient.FormField{
			{Name: "name", Value: in.Name},
			{Name: "slug", Value: in.Slug},
			{Name: "isGenderSpecific", Value: strconv.FormatBool(in.IsGenderSpecific)},
			{Name: "description", Value: in.Description},
		},
	}
	if parent, ok := in.ParentID.Get(); ok && parent != "" {
		form.Fields = append(form.Fields, apiclient.FormField{Name: "parentID", Value: parent})
	}
	if in.Image != nil {
		form.Files = append(form.Files, apiclient.File{
			Field:       "image",
			Filename:    in.Image.Filename,
			ContentType: in.Image.ContentType,
			Data:        in.Image.Data,
		})
	}
	return form
}
