package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
)

var ErrNotFound = errors.New("product not found")

var (
	listKey         = cache.Key("list", string(entity.Product))
	categoryListKey = cache.Key("list", string(entity.Category))
)

type Service struct {
	repo  *Repo
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo: NewRepo(api), cache: c, ttl: ttl}
}

// List returns every product with page defaults applied. A null body is an
// empty catalog.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	items, err := cache.Load(ctx, s.cache, listKey, s.ttl, s.repo.List)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(items))
	for _, p := range items {
		out = append(out, p.normalize())
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// CategoryNames lists the distinct category names in first-seen order.
func CategoryNames(items []Product) []string {
	seen := make(map[string]struct{}, len(items))
	var out []string
	for _, p := range items {
		name := strings.TrimSpace(p.CategoryName)
		if name == "" {
			name = Uncategorized
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func (s *Service) Create(ctx context.Context, in CreateInput) error {
	if err := s.repo.Create(ctx, in); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	if err := s.repo.Update(ctx, id, in); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

// AssignCategories replaces the product's category links. Category rows
// carry product counts, so both lists are dropped.
func (s *Service) AssignCategories(ctx context.Context, productID string, categoryIDs []string) error {
	if err := s.repo.AssignCategories(ctx, productID, categoryIDs); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey, categoryListKey)
	return nil
}
