package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/dashboard"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

const maxUpload = 10 << 20

type api struct {
	store  *store
	logger *slog.Logger
	now    func() time.Time
}

func (a *api) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		replyJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/images/{name}", a.getImage).Methods(http.MethodGet)

	s := r.PathPrefix("/api").Subrouter()
	s.HandleFunc("/categories", a.listCategories).Methods(http.MethodGet)
	s.HandleFunc("/categories", a.createCategory).Methods(http.MethodPost)
	s.HandleFunc("/categories/{id}", a.updateCategory).Methods(http.MethodPut)
	s.HandleFunc("/categories/{id}", a.deleteCategory).Methods(http.MethodDelete)

	s.HandleFunc("/products", a.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products", a.createProduct).Methods(http.MethodPost)
	s.HandleFunc("/products/categories/{id}", a.assignCategories).Methods(http.MethodPost)
	s.HandleFunc("/products/{id}", a.updateProduct).Methods(http.MethodPut)
	s.HandleFunc("/products/{id}", a.deleteProduct).Methods(http.MethodDelete)

	s.HandleFunc("/orders", a.listOrders).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}", a.updateOrder).Methods(http.MethodPut)
	s.HandleFunc("/orders/{id}", a.deleteOrder).Methods(http.MethodDelete)
	s.HandleFunc("/order-items/{id}", a.listOrderItems).Methods(http.MethodGet)

	s.HandleFunc("/users", a.listCustomers).Methods(http.MethodGet)

	s.HandleFunc("/promotions", a.listPromotions).Methods(http.MethodGet)
	s.HandleFunc("/promotions", a.createPromotion).Methods(http.MethodPost)
	s.HandleFunc("/promotions/{id}", a.updatePromotion).Methods(http.MethodPut)
	s.HandleFunc("/promotions/{id}", a.deletePromotion).Methods(http.MethodDelete)

	d := s.PathPrefix("/dashboard").Subrouter()
	d.HandleFunc("/alerts", a.alerts).Methods(http.MethodGet)
	d.HandleFunc("/recent-orders", a.recentOrders).Methods(http.MethodGet)
	d.HandleFunc("/stats", a.stats).Methods(http.MethodGet)
	d.HandleFunc("/top-products", a.topProducts).Methods(http.MethodGet)
	d.HandleFunc("/sales-chart", a.salesChart).Methods(http.MethodGet)

	r.Use(a.logRequests)
	return r
}

func (a *api) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.logger.Info("mock_request", "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
	})
}

func replyJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func replyError(w http.ResponseWriter, status int, msg string) {
	replyJSON(w, status, map[string]string{"error": msg})
}

func noContent(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) }

func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUpload))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	return nil
}

func parsePrice(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func formatPrice(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }

func validPrice(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && f >= 0
}

// imageURL is an absolute link back to this server, so the console can show
// the upload without sharing a host.
func imageURL(r *http.Request, name string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/images/" + name
}

func (a *api) getImage(w http.ResponseWriter, r *http.Request) {
	a.store.mu.RLock()
	img, ok := a.store.images[mux.Vars(r)["name"]]
	a.store.mu.RUnlock()
	if !ok {
		replyError(w, http.StatusNotFound, "image not found")
		return
	}
	w.Header().Set("Content-Type", img.contentType)
	_, _ = w.Write(img.data)
}

// storeUploads keeps every file part named field; the caller holds the lock.
func (a *api) storeUploads(r *http.Request, field string) ([]string, error) {
	var urls []string
	if r.MultipartForm == nil {
		return nil, nil
	}
	for _, fh := range r.MultipartForm.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		ct := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "image/") {
			return nil, fmt.Errorf("%s is not an image", fh.Filename)
		}
		urls = append(urls, imageURL(r, a.store.putImage(ct, data)))
	}
	return urls, nil
}

// categories

func (a *api) listCategories(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	replyJSON(w, http.StatusOK, a.store.listCategories())
}

func (a *api) categoryFromForm(r *http.Request, c *categories.Category) error {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return fmt.Errorf("invalid multipart body: %w", err)
	}
	name := strings.TrimSpace(r.FormValue("name"))
	slug := strings.TrimSpace(r.FormValue("slug"))
	if name == "" || slug == "" {
		return fmt.Errorf("name and slug are required")
	}
	c.Name = name
	c.Slug = slug
	c.Description = nullable.Of(r.FormValue("description"))
	c.IsGenderSpecific = nullable.Of(r.FormValue("isGenderSpecific") == "true")
	if parent := r.FormValue("parentID"); parent != "" {
		if parent == c.ID {
			return fmt.Errorf("a category cannot be its own parent")
		}
		c.ParentID = nullable.Of(parent)
	} else {
		c.ParentID = nullable.String{}
	}
	return nil
}

func (a *api) createCategory(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	c := categories.Category{ID: uuid.NewString(), CreatedAt: nullable.Of(a.now().UTC())}
	if err := a.categoryFromForm(r, &c); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	urls, err := a.storeUploads(r, "image")
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		replyError(w, http.StatusBadRequest, "image is required")
		return
	}
	c.ImageUrl = nullable.Of(urls[0])
	c.UpdatedAt = c.CreatedAt
	a.store.categories = append(a.store.categories, c)
	replyJSON(w, http.StatusCreated, c)
}

func (a *api) updateCategory(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	i := indexOf(a.store.categories, mux.Vars(r)["id"])
	if i < 0 {
		replyError(w, http.StatusNotFound, "category not found")
		return
	}
	c := a.store.categories[i]
	if err := a.categoryFromForm(r, &c); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	urls, err := a.storeUploads(r, "image")
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) > 0 {
		c.ImageUrl = nullable.Of(urls[0])
	}
	c.UpdatedAt = nullable.Of(a.now().UTC())
	a.store.categories[i] = c
	replyJSON(w, http.StatusOK, c)
}

func (a *api) deleteCategory(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	id := mux.Vars(r)["id"]
	var ok bool
	if a.store.categories, ok = remove(a.store.categories, id); !ok {
		replyError(w, http.StatusNotFound, "category not found")
		return
	}
	for i, p := range a.store.products {
		if p.CategoryID == id {
			a.store.products[i].CategoryID, a.store.products[i].CategoryName = "", ""
		}
	}
	noContent(w)
}

// products

func (a *api) listProducts(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	replyJSON(w, http.StatusOK, a.store.products)
}

func (a *api) createProduct(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		replyError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	base, current := r.FormValue("basePrice"), r.FormValue("currentPrice")
	if name == "" || !validPrice(base) || !validPrice(current) {
		replyError(w, http.StatusBadRequest, "name and valid prices are required")
		return
	}
	stock, err := strconv.ParseInt(r.FormValue("stock"), 10, 32)
	if err != nil || stock < 0 {
		replyError(w, http.StatusBadRequest, "stock must be a non-negative integer")
		return
	}
	urls, err := a.storeUploads(r, "image")
	if err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(urls) == 0 {
		replyError(w, http.StatusBadRequest, "at least one image is required")
		return
	}

	now := nullable.Of(a.now().UTC())
	p := products.Product{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  nullable.Of(r.FormValue("description")),
		BasePrice:    base,
		CurrentPrice: current,
		ImageUrl:     nullable.Of(urls[0]),
		Stock:        nullable.Of(int32(stock)),
		Weight:       nullable.Of(r.FormValue("weight")),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	a.store.products = append(a.store.products, p)
	replyJSON(w, http.StatusCreated, p)
}

func (a *api) updateProduct(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	i := indexOf(a.store.products, mux.Vars(r)["id"])
	if i < 0 {
		replyError(w, http.StatusNotFound, "product not found")
		return
	}
	var in products.UpdateInput
	if err := decodeJSON(r, &in); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" || !validPrice(in.BasePrice) || !validPrice(in.CurrentPrice) || in.Stock < 0 {
		replyError(w, http.StatusUnprocessableEntity, "invalid product")
		return
	}
	p := a.store.products[i]
	p.Name = in.Name
	p.BasePrice, p.CurrentPrice = in.BasePrice, in.CurrentPrice
	p.Description = nullable.Of(in.Description)
	p.Stock = nullable.Of(in.Stock)
	p.Weight = nullable.Of(in.Weight)
	if in.ImageURL != "" {
		p.ImageUrl = nullable.Of(in.ImageURL)
	}
	p.UpdatedAt = nullable.Of(a.now().UTC())
	a.store.products[i] = p
	replyJSON(w, http.StatusOK, p)
}

func (a *api) deleteProduct(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var ok bool
	if a.store.products, ok = remove(a.store.products, mux.Vars(r)["id"]); !ok {
		replyError(w, http.StatusNotFound, "product not found")
		return
	}
	noContent(w)
}

// assignCategories keeps the first known category; a product row carries
// one category.
func (a *api) assignCategories(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	i := indexOf(a.store.products, mux.Vars(r)["id"])
	if i < 0 {
		replyError(w, http.StatusNotFound, "product not found")
		return
	}
	var body struct {
		CategoryIDs []string `json:"categoryIDs"`
	}
	if err := decodeJSON(r, &body); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := &a.store.products[i]
	p.CategoryID, p.CategoryName = "", ""
	for _, id := range body.CategoryIDs {
		if j := indexOf(a.store.categories, id); j >= 0 {
			p.CategoryID, p.CategoryName = id, a.store.categories[j].Name
			break
		}
	}
	noContent(w)
}

// orders

func (a *api) listOrders(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	replyJSON(w, http.StatusOK, a.store.orders)
}

func (a *api) listOrderItems(w http.ResponseWriter, r *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	id := mux.Vars(r)["id"]
	if indexOf(a.store.orders, id) < 0 {
		replyError(w, http.StatusNotFound, "order not found")
		return
	}
	replyJSON(w, http.StatusOK, a.store.orderItems(id))
}

func (a *api) updateOrder(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	i := indexOf(a.store.orders, mux.Vars(r)["id"])
	if i < 0 {
		replyError(w, http.StatusNotFound, "order not found")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !orders.ValidStatus(body.Status) {
		replyError(w, http.StatusUnprocessableEntity, "invalid status")
		return
	}
	a.store.orders[i].Status = body.Status
	a.store.orders[i].UpdatedAt = nullable.Of(a.now().UTC())
	replyJSON(w, http.StatusOK, a.store.orders[i])
}

func (a *api) deleteOrder(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	id := mux.Vars(r)["id"]
	var ok bool
	if a.store.orders, ok = remove(a.store.orders, id); !ok {
		replyError(w, http.StatusNotFound, "order not found")
		return
	}
	kept := a.store.items[:0]
	for _, it := range a.store.items {
		if it.OrderID != id {
			kept = append(kept, it)
		}
	}
	a.store.items = kept
	noContent(w)
}

func (a *api) listCustomers(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	replyJSON(w, http.StatusOK, a.store.customers)
}

// promotions

func (a *api) listPromotions(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	replyJSON(w, http.StatusOK, a.store.listPromotions())
}

func promotionFromInput(in promotions.Input, p *promotions.Promotion) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	set := 0
	for _, v := range []*string{in.DiscountPercentage, in.DiscountAmount, in.BundlePrice} {
		if v != nil {
			if !validPrice(*v) {
				return fmt.Errorf("invalid discount %q", *v)
			}
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one discount must be set")
	}
	start, err := time.Parse(nullable.DateLayout, in.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date")
	}
	end, err := time.Parse(nullable.DateLayout, in.EndDate)
	if err != nil || end.Before(start) {
		return fmt.Errorf("invalid end_date")
	}

	opt := func(v *string) nullable.String {
		if v == nil {
			return nullable.String{}
		}
		return nullable.Of(*v)
	}
	p.Name = in.Name
	p.Description = in.Description
	p.DiscountPercentage = opt(in.DiscountPercentage)
	p.DiscountAmount = opt(in.DiscountAmount)
	p.BundlePrice = opt(in.BundlePrice)
	p.ProductID = opt(in.ProductID)
	p.CategoryID = opt(in.CategoryID)
	p.StartDate = start
	// the promotion runs through its whole last day
	p.EndDate = end.Add(24*time.Hour - time.Second)
	p.IsActive = in.IsActive
	return nil
}

func (a *api) createPromotion(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var in promotions.Input
	if err := decodeJSON(r, &in); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := nullable.Of(a.now().UTC())
	p := promotions.Promotion{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
	if err := promotionFromInput(in, &p); err != nil {
		replyError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	a.store.promotions = append(a.store.promotions, p)
	replyJSON(w, http.StatusCreated, p)
}

func (a *api) updatePromotion(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	i := indexOf(a.store.promotions, mux.Vars(r)["id"])
	if i < 0 {
		replyError(w, http.StatusNotFound, "promotion not found")
		return
	}
	var in promotions.Input
	if err := decodeJSON(r, &in); err != nil {
		replyError(w, http.StatusBadRequest, err.Error())
		return
	}
	p := a.store.promotions[i]
	if err := promotionFromInput(in, &p); err != nil {
		replyError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p.UpdatedAt = nullable.Of(a.now().UTC())
	a.store.promotions[i] = p
	replyJSON(w, http.StatusOK, p)
}

func (a *api) deletePromotion(w http.ResponseWriter, r *http.Request) {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()

	var ok bool
	if a.store.promotions, ok = remove(a.store.promotions, mux.Vars(r)["id"]); !ok {
		replyError(w, http.StatusNotFound, "promotion not found")
		return
	}
	noContent(w)
}

// dashboard

func (a *api) alerts(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	out := []dashboard.Notification{}
	for _, p := range a.store.products {
		if stock, ok := p.Stock.Get(); ok && stock == 0 {
			out = append(out, dashboard.Notification{Message: p.Name + " is out of stock", Type: "warning"})
		}
	}
	pending := 0
	for _, o := range a.store.orders {
		if o.Status == orders.StatusPending {
			pending++
		}
	}
	if pending > 0 {
		out = append(out, dashboard.Notification{Message: fmt.Sprintf("%d orders awaiting shipment", pending), Type: "success"})
	}
	replyJSON(w, http.StatusOK, out)
}

func (a *api) recentOrders(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	out := []dashboard.RecentOrder{}
	for _, o := range a.store.newestOrders() {
		if len(out) == 5 {
			break
		}
		out = append(out, dashboard.RecentOrder{
			ID: o.ID, Customer: o.CustomerName, Date: o.CreatedAt, Total: o.TotalAmount, Status: o.Status,
		})
	}
	replyJSON(w, http.StatusOK, out)
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func change(cur, prev float64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}
		return 100
	}
	return math.Round((cur-prev)/prev*1000) / 10
}

func (a *api) stats(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	this := monthStart(a.now().UTC())
	last := this.AddDate(0, -1, 0)
	var st dashboard.Stats
	var prevSales, prevOrders, prevCustomers, prevSubs float64
	for _, o := range a.store.orders {
		t, ok := o.CreatedAt.Get()
		if !ok || o.Status == orders.StatusCancelled {
			continue
		}
		st.TotalSales += parsePrice(o.TotalAmount)
		switch {
		case !t.Before(this):
			st.OrdersThisMonth++
		case !t.Before(last):
			prevOrders++
			prevSales += parsePrice(o.TotalAmount)
		}
	}
	for _, c := range a.store.customers {
		t, ok := c.CreatedAt.Get()
		if !ok {
			continue
		}
		sub := c.IsSubscribed.OrZero()
		switch {
		case !t.Before(this):
			st.NewCustomers++
			if sub {
				st.NewSubscribers++
			}
		case !t.Before(last):
			prevCustomers++
			if sub {
				prevSubs++
			}
		}
	}
	st.SalesChange = change(st.TotalSales-prevSales, prevSales)
	st.OrdersChange = change(st.OrdersThisMonth, prevOrders)
	st.CustomersChange = change(st.NewCustomers, prevCustomers)
	st.SubscribersChange = change(st.NewSubscribers, prevSubs)
	replyJSON(w, http.StatusOK, st)
}

func (a *api) topProducts(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	out := []dashboard.ProductSales{}
	for _, t := range a.store.topSellers(5) {
		out = append(out, dashboard.ProductSales{Name: t.name, Sales: t.units, Revenue: formatPrice(t.revenue)})
	}
	replyJSON(w, http.StatusOK, out)
}

func (a *api) salesChart(w http.ResponseWriter, _ *http.Request) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	first := monthStart(a.now().UTC()).AddDate(0, -5, 0)
	var chart dashboard.SalesChart
	idx := map[string]int{}
	for i := 0; i < 6; i++ {
		m := first.AddDate(0, i, 0).Format("Jan")
		idx[first.AddDate(0, i, 0).Format("2006-01")] = i
		chart.SalesLast6Months = append(chart.SalesLast6Months, dashboard.MonthlySales{Month: m})
		chart.OrdersLast6Months = append(chart.OrdersLast6Months, dashboard.MonthlyOrders{Month: m})
	}
	for _, o := range a.store.orders {
		t, ok := o.CreatedAt.Get()
		if !ok || o.Status == orders.StatusCancelled {
			continue
		}
		if i, ok := idx[t.UTC().Format("2006-01")]; ok {
			chart.SalesLast6Months[i].Sales += parsePrice(o.TotalAmount)
			chart.OrdersLast6Months[i].Orders++
		}
	}
	for _, t := range a.store.topSellers(10) {
		chart.RevenuePerProduct = append(chart.RevenuePerProduct, dashboard.ProductRevenue{ProductName: t.name, Revenue: t.revenue})
	}
	replyJSON(w, http.StatusOK, chart)
}
