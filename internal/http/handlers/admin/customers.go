package admin

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/customers"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

const readOnlyMsg = "Customer records are managed by the shop and cannot be changed here."

type CustomersHandler struct {
	Base
	Customers *customers.Service
	// Orders feeds the per-customer order count.
	Orders *orders.Service
}

func NewCustomersHandler(b Base, c *customers.Service, o *orders.Service) *CustomersHandler {
	return &CustomersHandler{Base: b, Customers: c, Orders: o}
}

func customerSpec([]customers.Customer) listview.Spec[customers.Customer] {
	return listview.Spec[customers.Customer]{
		Kind: entity.Customer,
		Columns: []listview.Column[customers.Customer]{
			{Key: "ID", Label: "ID", Render: func(c customers.Customer) listview.Cell { return shortIDCell(c.ID) }},
			{Key: "Name", Label: "Name", Render: func(c customers.Customer) listview.Cell {
				return listview.Text(entity.StrategyFor(entity.Customer).NameOf(c))
			}},
			{Key: "Email", Label: "Email"},
			{Key: "Phone", Label: "Phone"},
			{Key: "orderCount", Label: "Orders",
				Render: func(c customers.Customer) listview.Cell { return listview.Text(strconv.Itoa(c.OrderCount)) },
				Less:   func(a, b customers.Customer) bool { return a.OrderCount < b.OrderCount },
			},
		},
		Filters: []listview.Filter[customers.Customer]{{
			Key:     "orderCount",
			Label:   "Orders",
			Options: customers.OrderBuckets,
			Value:   func(c customers.Customer) (string, bool) { return c.OrderBucket(), true },
		}},
	}
}

// load fetches customers and orders side by side. Without orders the list
// still renders, with every count at zero.
func (h *CustomersHandler) load(ctx context.Context) ([]customers.Customer, error) {
	var (
		wg       sync.WaitGroup
		items    []customers.Customer
		all      []orders.Order
		err      error
		orderErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		items, err = h.Customers.List(ctx)
	}()
	go func() {
		defer wg.Done()
		all, orderErr = h.Orders.List(ctx)
	}()
	wg.Wait()

	if err != nil {
		return nil, err
	}
	if orderErr != nil {
		h.Logger.WarnContext(ctx, "customer_order_counts_unavailable", "err", orderErr)
	}

	counts := make(map[string]int, len(all))
	for _, o := range all {
		counts[o.UserID]++
	}
	// List may be served from the cache; counts go on a copy.
	out := append([]customers.Customer(nil), items...)
	customers.AttachOrderCounts(out, counts)
	return out, nil
}

func (h *CustomersHandler) page(c *gin.Context, st listState) (view.ListPage, []customers.Customer) {
	return listPage(c, h.Base, entity.Customer, st, h.load, customerSpec)
}

func (h *CustomersHandler) List(c *gin.Context) {
	st := readListState(c)
	page, items := h.page(c, st)
	base := entity.StrategyFor(entity.Customer).BasePath

	switch st.Modal {
	case "new":
		s := formview.New(formview.CustomerSpec)
		s.OpenCreate(formview.CustomerDraft{})
		form := s.View(st.at(base), st.at(base))
		page.Modal = &form
	case "edit":
		if cu, ok := find(items, st.ID); ok {
			s := editCustomer(cu)
			form := s.View(st.at(recordPath(entity.Customer, cu.ID)), st.at(base))
			page.Modal = &form
		} else if page.Error == "" {
			page.Error = notFound(entity.Customer)
		}
	}
	if st.Confirm != "" {
		if cu, ok := find(items, st.Confirm); ok {
			page.Confirm = confirmDelete(entity.Customer, cu, "", st)
		}
	}
	renderList(c, page)
}

func editCustomer(cu customers.Customer) *formview.Session[formview.CustomerDraft] {
	s := formview.New(formview.CustomerSpec)
	s.OpenEdit(cu.ID, formview.EditCustomerDraft(cu))
	return s
}

func (h *CustomersHandler) Create(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Customer).BasePath

	s := formview.New(formview.CustomerSpec)
	s.OpenCreate(formview.CustomerDraft{})
	err := submit(c, s, func(ctx context.Context, d formview.CustomerDraft) error {
		return h.Customers.Save(ctx, "", d.Input())
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(base), st.at(base)))
		return
	}
	h.done(c, err, st.at(base), okMsg(entity.Customer, "created"), failMsg("add", entity.Customer))
}

func (h *CustomersHandler) Update(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Customer).BasePath
	id := c.Param("id")

	cu, err := h.Customers.Get(c.Request.Context(), id)
	if err != nil {
		h.finish(c, err, st.at(base), "", failMsg("update", entity.Customer))
		return
	}
	s := editCustomer(cu)
	err = submit(c, s, func(ctx context.Context, d formview.CustomerDraft) error {
		return h.Customers.Save(ctx, id, d.Input())
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(recordPath(entity.Customer, id)), st.at(base)))
		return
	}
	h.done(c, err, st.at(base), okMsg(entity.Customer, "updated"), failMsg("update", entity.Customer))
}

func (h *CustomersHandler) Delete(c *gin.Context) {
	st := readListState(c)
	err := h.Customers.Delete(c.Request.Context(), c.Param("id"))
	h.done(c, err, st.at(entity.StrategyFor(entity.Customer).BasePath),
		okMsg(entity.Customer, "deleted"), failMsg("delete", entity.Customer))
}

// done is finish with read-only writes reported as a warning, not a failure.
func (h *CustomersHandler) done(c *gin.Context, err error, back, ok, failed string) {
	if errors.Is(err, customers.ErrReadOnly) {
		render.RedirectWithFlash(c, h.Flash, back, view.FlashWarning, readOnlyMsg)
		return
	}
	h.finish(c, err, back, ok, failed)
}
