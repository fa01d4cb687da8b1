package orders

import (
	"context"
	"net/http"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
)

const (
	basePath  = "/api/orders"
	itemsPath = "/api/order-items"
)

type Repo struct{ api apiclient.API }

func NewRepo(api apiclient.API) *Repo { return &Repo{api: api} }

func (r *Repo) List(ctx context.Context) ([]Order, error) {
	var items []Order
	if err := r.api.Get(ctx, "orders.list", basePath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) Items(ctx context.Context, orderID string) ([]Item, error) {
	var items []Item
	if err := r.api.Get(ctx, "orders.items", apiclient.PathID(itemsPath, orderID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Repo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.api.Send(ctx, "orders.update", http.MethodPut, apiclient.PathID(basePath, id), updateBody{Status: status}, nil)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	return r.api.Delete(ctx, "orders.delete", apiclient.PathID(basePath, id))
}
