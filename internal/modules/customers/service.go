package customers

import (
	"context"
	"errors"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrReadOnly is returned by writes; the shop API exposes no customer
	// mutation endpoints.
	ErrReadOnly = errors.New("customer records are read-only")
)

var listKey = cache.Key("list", string(entity.Customer))

const basePath = "/api/users"

type Service struct {
	api   apiclient.API
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{api: api, cache: c, ttl: ttl}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	items, err := cache.Load(ctx, s.cache, listKey, s.ttl, func(ctx context.Context) ([]Customer, error) {
		var out []Customer
		if err := s.api.Get(ctx, "customers.list", basePath, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Customer{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (Customer, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Customer{}, err
	}
	for _, c := range items {
		if c.ID == id {
			return c, nil
		}
	}
	return Customer{}, ErrNotFound
}

// Input is a validated create or edit form.
type Input struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

func (s *Service) Save(ctx context.Context, id string, in Input) error {
	return ErrReadOnly
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return ErrReadOnly
}
