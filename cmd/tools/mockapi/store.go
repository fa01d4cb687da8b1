package main

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/customers"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

type image struct {
	contentType string
	data        []byte
}

// store is the in-memory shop. Slices keep insertion order so listings are
// stable between calls.
type store struct {
	mu sync.RWMutex

	products   []products.Product
	categories []categories.Category
	orders     []orders.Order
	items      []orders.Item
	customers  []customers.Customer
	promotions []promotions.Promotion
	images     map[string]image
}

func newStore() *store {
	return &store{images: map[string]image{}}
}

func indexOf[T interface{ RecordID() string }](items []T, id string) int {
	for i, it := range items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func remove[T interface{ RecordID() string }](items []T, id string) ([]T, bool) {
	i := indexOf(items, id)
	if i < 0 {
		return items, false
	}
	return append(items[:i], items[i+1:]...), true
}

func (s *store) putImage(contentType string, data []byte) string {
	name := uuid.NewString()
	s.images[name] = image{contentType: contentType, data: data}
	return name
}

// listCategories fills in the product counts and parent names the real
// backend joins in.
func (s *store) listCategories() []categories.Category {
	counts := map[string]int64{}
	for _, p := range s.products {
		if p.CategoryID != "" {
			counts[p.CategoryID]++
		}
	}
	out := make([]categories.Category, len(s.categories))
	for i, c := range s.categories {
		c.ProductCount = counts[c.ID]
		if parent, ok := c.ParentID.Get(); ok {
			if j := indexOf(s.categories, parent); j >= 0 {
				c.ParentName = nullable.Of(s.categories[j].Name)
				c.ParentSlug = nullable.Of(s.categories[j].Slug)
			}
		}
		out[i] = c
	}
	return out
}

func (s *store) listPromotions() []promotions.Promotion {
	out := make([]promotions.Promotion, len(s.promotions))
	for i, p := range s.promotions {
		if id, ok := p.ProductID.Get(); ok {
			if j := indexOf(s.products, id); j >= 0 {
				p.ProductName = nullable.Of(s.products[j].Name)
			}
		}
		if id, ok := p.CategoryID.Get(); ok {
			if j := indexOf(s.categories, id); j >= 0 {
				p.CategoryName = nullable.Of(s.categories[j].Name)
			}
		}
		out[i] = p
	}
	return out
}

func (s *store) orderItems(orderID string) []orders.Item {
	out := []orders.Item{}
	for _, it := range s.items {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out
}

// newestOrders is every order, latest first.
func (s *store) newestOrders() []orders.Order {
	out := append([]orders.Order(nil), s.orders...)
	orders.SortByCreated(out, true)
	return out
}

func seed(now time.Time) *store {
	s := newStore()
	day := 24 * time.Hour
	at := func(d time.Duration) nullable.Time { return nullable.Of(now.Add(-d).UTC()) }

	boots := categories.Category{
		ID: uuid.NewString(), Name: "Boots", Slug: "boots",
		IsGenderSpecific: nullable.Of(false),
		Description:      nullable.Of("Work and western boots"),
		CreatedAt:        at(90 * day),
	}
	kids := categories.Category{
		ID: uuid.NewString(), Name: "Kids Boots", Slug: "kids-boots",
		ParentID:         nullable.Of(boots.ID),
		IsGenderSpecific: nullable.Of(false),
		Description:      nullable.Of("Boots for kids"),
		CreatedAt:        at(60 * day),
	}
	hats := categories.Category{
		ID: uuid.NewString(), Name: "Hats", Slug: "hats",
		IsGenderSpecific: nullable.Of(true),
		CreatedAt:        at(30 * day),
	}
	s.categories = []categories.Category{boots, kids, hats}

	product := func(name, base, current string, stock int32, cat categories.Category, age time.Duration) products.Product {
		return products.Product{
			ID: uuid.NewString(), Name: name,
			BasePrice: base, CurrentPrice: current,
			Description:  nullable.Of(name + " in full grain leather"),
			Stock:        nullable.Of(stock),
			Weight:       nullable.Of("1.2"),
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			CreatedAt:    at(age),
		}
	}
	ranch := product("Ranch Boot", "189.99", "159.99", 24, boots, 80*day)
	trail := product("Trail Boot", "149.00", "149.00", 0, boots, 40*day)
	mini := product("Mini Roper", "89.50", "79.50", 12, kids, 20*day)
	s.products = []products.Product{ranch, trail, mini}
	// a legacy row with nulls everywhere
	s.products = append(s.products, products.Product{
		ID: uuid.NewString(), Name: "Sample Hat", BasePrice: "35", CurrentPrice: "35",
	})

	alice := customers.Customer{
		ID: uuid.NewString(), FirstName: nullable.Of("Alice"), LastName: nullable.Of("Smith"),
		Email: nullable.Of("alice@example.com"), Phone: nullable.Of("555-0101"),
		IsSubscribed: nullable.Of(true), CreatedAt: at(100 * day),
	}
	bob := customers.Customer{
		ID: uuid.NewString(), FirstName: nullable.Of("Bob"), LastName: nullable.Of("Jones"),
		Email: nullable.Of("bob@example.com"), CreatedAt: at(10 * day),
	}
	carol := customers.Customer{
		ID: uuid.NewString(), FirstName: nullable.Of("Carol"),
		Email: nullable.Of("carol@example.com"), Phone: nullable.Of("555-0199"),
		CreatedAt: at(5 * day),
	}
	s.customers = []customers.Customer{alice, bob, carol}

	order := func(c customers.Customer, status string, age time.Duration, lines ...orders.Item) {
		o := orders.Order{
			ID: uuid.NewString(), UserID: c.ID, CustomerName: c.DisplayName(),
			Status: status, ShippingAddress: "12 Main St, Springfield",
			CreatedAt: at(age),
		}
		var total float64
		for _, it := range lines {
			it.ID = uuid.NewString()
			it.OrderID = o.ID
			it.CreatedAt = o.CreatedAt
			total += parsePrice(it.PriceAtTime) * float64(it.Quantity)
			s.items = append(s.items, it)
		}
		o.TotalAmount = formatPrice(total)
		s.orders = append(s.orders, o)
	}
	line := func(p products.Product, qty int32) orders.Item {
		return orders.Item{ProductID: p.ID, ProductName: p.Name, Quantity: qty, PriceAtTime: p.CurrentPrice}
	}
	order(alice, orders.StatusDelivered, 70*day, line(ranch, 1))
	order(alice, orders.StatusShipped, 12*day, line(trail, 1), line(mini, 2))
	order(alice, orders.StatusPending, 2*day, line(mini, 1))
	order(bob, orders.StatusCancelled, 6*day, line(ranch, 2))
	// checkout rows occasionally land without a timestamp
	s.orders = append(s.orders, orders.Order{
		ID: uuid.NewString(), UserID: bob.ID, CustomerName: bob.DisplayName(),
		Status: orders.StatusPending, TotalAmount: "0.00",
	})

	s.promotions = []promotions.Promotion{
		{
			ID: uuid.NewString(), Name: "SPRING20", Description: "20% off boots for spring",
			DiscountPercentage: nullable.Of("20.00"), CategoryID: nullable.Of(boots.ID),
			StartDate: now.Add(-10 * day).UTC(), EndDate: now.Add(20 * day).UTC(),
			IsActive: true, CreatedAt: at(10 * day),
		},
		{
			ID: uuid.NewString(), Name: "FLASH10", Description: "$10 off the Trail Boot",
			DiscountAmount: nullable.Of("10.00"), ProductID: nullable.Of(trail.ID),
			StartDate: now.Add(-30 * day).UTC(), EndDate: now.Add(-25 * day).UTC(),
			IsActive: false, CreatedAt: at(30 * day),
		},
		{
			ID: uuid.NewString(), Name: "BUNDLE50", Description: "Two kids ropers for $50",
			BundlePrice: nullable.Of("50.00"), ProductID: nullable.Of(mini.ID),
			StartDate: now.Add(-1 * day).UTC(), EndDate: now.Add(60 * day).UTC(),
			IsActive: true, CreatedAt: at(1 * day),
		},
	}
	return s
}

// topSellers ranks products by units sold over non-cancelled orders.
func (s *store) topSellers(limit int) []productTotal {
	cancelled := map[string]bool{}
	for _, o := range s.orders {
		if o.Status == orders.StatusCancelled {
			cancelled[o.ID] = true
		}
	}
	byName := map[string]*productTotal{}
	var names []string
	for _, it := range s.items {
		if cancelled[it.OrderID] {
			continue
		}
		t, ok := byName[it.ProductName]
		if !ok {
			t = &productTotal{name: it.ProductName}
			byName[it.ProductName] = t
			names = append(names, it.ProductName)
		}
		t.units += float64(it.Quantity)
		t.revenue += parsePrice(it.PriceAtTime) * float64(it.Quantity)
	}
	out := make([]productTotal, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].units > out[j].units })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

type productTotal struct {
	name    string
	units   float64
	revenue float64
}
