package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/shared/apperr"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/pages"
)

type OrdersHandler struct {
	Base
	Orders *orders.Service
}

func NewOrdersHandler(b Base, s *orders.Service) *OrdersHandler {
	return &OrdersHandler{Base: b, Orders: s}
}

func orderSpec([]orders.Order) listview.Spec[orders.Order] {
	return listview.Spec[orders.Order]{
		Kind: entity.Order,
		Columns: []listview.Column[orders.Order]{
			{Key: "ID", Label: "Order ID", Render: func(o orders.Order) listview.Cell { return shortIDCell(o.ID) }},
			{Key: "UserID", Label: "User ID", Render: func(o orders.Order) listview.Cell { return shortIDCell(o.UserID) }},
			{Key: "CustomerName", Label: "Customer"},
			{Key: "TotalAmount", Label: "Total", Render: func(o orders.Order) listview.Cell {
				return listview.Text(view.Money(o.TotalAmount))
			}},
			{Key: "Status", Label: "Status"},
			{Key: "CreatedAt", Label: "Created At",
				Render:   func(o orders.Order) listview.Cell { return dateCell(o.CreatedAt) },
				SortFunc: orders.SortByCreated,
			},
		},
		Filters: []listview.Filter[orders.Order]{
			{Key: "Status", Label: "Status", Options: orders.FilterStatuses},
		},
		RowURL: func(o orders.Order) string { return recordPath(entity.Order, o.ID) },
	}
}

// orderState defaults the list to newest first.
func orderState(c *gin.Context) listState {
	st := readListState(c)
	if st.Query.Sort == "" {
		st.Query.Sort = "CreatedAt"
		st.Query.Desc = true
	}
	return st
}

// page has no add button; orders are created by checkout.
func (h *OrdersHandler) page(c *gin.Context, st listState) (view.ListPage, []orders.Order) {
	page, items := listPage(c, h.Base, entity.Order, st, h.Orders.List, orderSpec)
	page.AddURL, page.AddLabel = "", ""
	return page, items
}

func (h *OrdersHandler) List(c *gin.Context) {
	st := orderState(c)
	page, items := h.page(c, st)
	base := entity.StrategyFor(entity.Order).BasePath

	if st.Modal == "edit" {
		if o, ok := find(items, st.ID); ok {
			s := editOrder(o)
			form := s.View(st.at(recordPath(entity.Order, o.ID)), st.at(base))
			page.Modal = &form
		} else if page.Error == "" {
			page.Error = notFound(entity.Order)
		}
	}
	if st.Confirm != "" {
		if o, ok := find(items, st.Confirm); ok {
			page.Confirm = confirmDelete(entity.Order, o, "", st)
		}
	}
	renderList(c, page)
}

func editOrder(o orders.Order) *formview.Session[formview.OrderDraft] {
	s := formview.New(formview.OrderSpec)
	s.OpenEdit(o.ID, formview.EditOrderDraft(o))
	return s
}

// Detail shows one order with its line items. A failed items fetch only
// blanks the items table.
func (h *OrdersHandler) Detail(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()
	base := entity.StrategyFor(entity.Order).BasePath

	o, err := h.Orders.Get(ctx, id)
	if errors.Is(err, orders.ErrNotFound) {
		middleware.Fail(c, apperr.NotFoundErr(notFound(entity.Order)))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.FromUpstream(err, "Failed to load orders."))
		return
	}

	vm := view.AdminOrderDetail{
		Layout:          render.Layout(c, "Order "+view.ShortID(o.ID), base),
		ID:              o.ID,
		ShortID:         view.ShortID(o.ID),
		Status:          o.Status,
		CustomerName:    entity.StrategyFor(entity.Order).NameOf(o),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt.Display(),
		Total:           view.Money(o.TotalAmount),
		BackURL:         base,
	}

	items, err := h.Orders.Items(ctx, id)
	if err != nil {
		h.logFailure(c, err, "load order items")
		vm.ItemsError = "Failed to load order items."
	}
	for _, it := range items {
		vm.Items = append(vm.Items, view.AdminOrderItem{
			ProductName: it.ProductName,
			Qty:         int(it.Quantity),
			Unit:        view.Money(it.PriceAtTime),
			Line:        view.Money(lineTotal(it.PriceAtTime, it.Quantity)),
		})
	}
	render.Component(c, http.StatusOK, pages.OrderDetail(vm))
}

func lineTotal(price string, qty int32) string {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return price
	}
	return fmt.Sprintf("%.2f", p*float64(qty))
}

func (h *OrdersHandler) Update(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Order).BasePath
	id := c.Param("id")

	o, err := h.Orders.Get(c.Request.Context(), id)
	if err != nil {
		h.finish(c, err, st.at(base), "", failMsg("update", entity.Order))
		return
	}
	s := editOrder(o)
	err = submit(c, s, func(ctx context.Context, d formview.OrderDraft) error {
		return h.Orders.UpdateStatus(ctx, id, d.Status)
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(recordPath(entity.Order, id)), st.at(base)))
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Order, "updated"), failMsg("update", entity.Order))
}

func (h *OrdersHandler) Delete(c *gin.Context) {
	st := readListState(c)
	err := h.Orders.Delete(c.Request.Context(), c.Param("id"))
	h.finish(c, err, st.at(entity.StrategyFor(entity.Order).BasePath),
		okMsg(entity.Order, "deleted"), failMsg("delete", entity.Order))
}
