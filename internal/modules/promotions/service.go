package promotions

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
)

var ErrNotFound = errors.New("promotion not found")

var listKey = cache.Key("list", string(entity.Promotion))

const basePath = "/api/promotions"

type Service struct {
	api   apiclient.API
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{api: api, cache: c, ttl: ttl}
}

func (s *Service) List(ctx context.Context) ([]Promotion, error) {
	items, err := cache.Load(ctx, s.cache, listKey, s.ttl, func(ctx context.Context) ([]Promotion, error) {
		var out []Promotion
		if err := s.api.Get(ctx, "promotions.list", basePath, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Promotion{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (Promotion, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Promotion{}, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, nil
		}
	}
	return Promotion{}, ErrNotFound
}

func (s *Service) Create(ctx context.Context, in Input) error {
	if err := s.api.Send(ctx, "promotions.create", http.MethodPost, basePath, in, nil); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := s.api.Send(ctx, "promotions.update", http.MethodPut, apiclient.PathID(basePath, id), in, nil); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "promotions.delete", apiclient.PathID(basePath, id)); err != nil {
		return err
	}
	cache.Invalidate(ctx, s.cache, listKey)
	return nil
}
