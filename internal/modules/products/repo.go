package products

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
)

const basePath = "/api/products"

// Repo maps product operations onto the shop API.
type Repo struct{ api apiclient.API }

func NewRepo(api apiclient.API) *Repo { return &Repo{api: api} }

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	var items []Product
	if err := r.api.Get(ctx, "products.list", basePath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) Create(ctx context.Context, in CreateInput) error {
	form := apiclient.Multipart{
		Fields: []apiclient.FormField{
			{Name: "name", Value: in.Name},
			{Name: "basePrice", Value: in.BasePrice},
			{Name: "currentPrice", Value: in.CurrentPrice},
			{Name: "description", Value: in.Description},
			{Name: "stock", Value: strconv.FormatInt(int64(in.Stock), 10)},
			{Name: "weight", Value: in.Weight},
		},
	}
	for _, img := range in.Images {
		form.Files = append(form.Files, apiclient.File{
			Field:       "image",
			Filename:    img.Filename,
			ContentType: img.ContentType,
			Data:        img.Data,
		})
	}
	return r.api.SendMultipart(ctx, "products.create", http.MethodPost, basePath, form, nil)
}

func (r *Repo) Update(ctx context.Context, id string, in UpdateInput) error {
	return r.api.Send(ctx, "products.update", http.MethodPut, apiclient.PathID(basePath, id), in, nil)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "products.delete", apiclient.PathID(basePath, id))
}

func (r *Repo) AssignCategories(ctx context.Context, productID string, categoryIDs []string) error {
	if categoryIDs == nil {
		categoryIDs = []string{}
	}
	return r.api.Send(ctx, "products.assign_categories", http.MethodPost,
		apiclient.PathID(basePath+"/categories", productID),
		assignCategoriesBody{CategoryIDs: categoryIDs}, nil)
}
