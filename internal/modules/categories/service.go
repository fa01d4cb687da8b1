package categories

import (
	"context"
	"errors"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
)

var ErrNotFound = errors.New("category not found")

var (
	listKey        = cache.Key("list", string(entity.Category))
	productListKey = cache.Key("list", string(entity.Product))
)

type Service struct {
	repo  *Repo
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo: NewRepo(api), cache: c, ttl: ttl}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	items, err := cache.Load(ctx, s.cache, listKey, s.ttl, s.repo.List)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Category{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (Category, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Category{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

// Parents lists the categories selectable as parent of id; a category is
// never its own parent.
func Parents(items []Category, id string) []Category {
	out := make([]Category, 0, len(items))
	for _, c := range items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (s *Service) Create(ctx context.Context, in Input) error {
	if err := s.repo.Create(ctx, in); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

// Update also drops the product list, whose rows embed the category name.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey, productListKey)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey, productListKey)
	return nil
}
