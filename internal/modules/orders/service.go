package orders

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/cache"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/dashboard"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
)

var listKey = cache.Key("list", string(entity.Order))

type Service struct {
	repo  *Repo
	cache cache.Cache
	ttl   time.Duration
}

func NewService(api apiclient.API, c cache.Cache, ttl time.Duration) *Service {
	return &Service{repo: NewRepo(api), cache: c, ttl: ttl}
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	items, err := cache.Load(ctx, s.cache, listKey, s.ttl, s.repo.List)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Order{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	items, err := s.List(ctx)
	if err != nil {
		return Order{}, err
	}
	for _, o := range items {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

// Items bypasses the cache.
func (s *Service) Items(ctx context.Context, orderID string) ([]Item, error) {
	items, err := s.repo.Items(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	cache.Invalidate(ctx, s.cache, append([]string{listKey}, dashboard.OrderKeys...)...)
}

func ValidStatus(status string) bool {
	for _, st := range EditableStatuses {
		if st == status {
			return true
		}
	}
	return false
}

// SortByCreated orders by creation time; rows without a timestamp sort last
// in either direction.
func SortByCreated(items []Order, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i].CreatedAt.Get()
		b, bok := items[j].CreatedAt.Get()
		switch {
		case !aok || !bok:
			return aok && !bok
		case desc:
			return a.After(b)
		default:
			return a.Before(b)
		}
	})
}
