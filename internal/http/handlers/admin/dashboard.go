package admin

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/dashboard"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/pages"
)

type DashboardHandler struct {
	Base
	Dashboard *dashboard.Service
}

func NewDashboardHandler(b Base, s *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{Base: b, Dashboard: s}
}

// Show loads every panel concurrently. A failed panel renders its own error
// and leaves the others intact.
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	vm := view.DashboardPage{Layout: render.Layout(c, "Dashboard", "/admin"), QuickActions: quickActions()}

	var wg sync.WaitGroup
	panel := func(name string, load func(context.Context) error, msg *string) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := load(ctx); err != nil {
				h.logFailure(c, err, "load dashboard "+name)
				*msg = "Failed to load " + name + "."
			}
		}()
	}

	panel("alerts", func(ctx context.Context) error {
		items, err := h.Dashboard.Alerts(ctx)
		vm.Alerts = alerts(items)
		return err
	}, &vm.AlertsErr)
	panel("stats", func(ctx context.Context) error {
		st, err := h.Dashboard.Stats(ctx)
		if err == nil {
			vm.Stats = statCards(st)
		}
		return err
	}, &vm.StatsErr)
	panel("recent orders", func(ctx context.Context) error {
		items, err := h.Dashboard.RecentOrders(ctx)
		vm.RecentOrders = recentOrders(items)
		return err
	}, &vm.RecentOrdersErr)
	panel("top products", func(ctx context.Context) error {
		items, err := h.Dashboard.TopProducts(ctx)
		vm.TopProducts = topProducts(items)
		return err
	}, &vm.TopProductsErr)
	panel("sales chart", func(ctx context.Context) error {
		ch, err := h.Dashboard.SalesChart(ctx)
		if err == nil {
			vm.Charts = charts(ch)
		}
		return err
	}, &vm.ChartErr)
	wg.Wait()

	render.Component(c, http.StatusOK, pages.Dashboard(vm))
}

// quickActions open the create modal on each writable list, plus the order
// list, which has no create form.
func quickActions() []view.QuickAction {
	var out []view.QuickAction
	for _, k := range []entity.Kind{entity.Product, entity.Category, entity.Promotion} {
		st := entity.StrategyFor(k)
		out = append(out, view.QuickAction{Label: "Add " + st.Singular, URL: st.BasePath + "?modal=new"})
	}
	return append(out, view.QuickAction{Label: "View All Orders", URL: entity.StrategyFor(entity.Order).BasePath})
}

func alerts(items []dashboard.Notification) []view.Alert {
	out := make([]view.Alert, 0, len(items))
	for _, n := range items {
		kind := view.FlashKind(n.Type)
		switch kind {
		case view.FlashSuccess, view.FlashWarning, view.FlashError:
		default:
			kind = view.FlashInfo
		}
		out = append(out, view.Alert{Message: n.Message, Kind: kind})
	}
	return out
}

func statCards(s dashboard.Stats) []view.StatCard {
	card := func(label, value string, change float64) view.StatCard {
		return view.StatCard{Label: label, Value: value, Change: view.Percent(change), Up: change >= 0}
	}
	count := func(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) }
	return []view.StatCard{
		card("Total Sales", view.MoneyFromFloat(s.TotalSales, "USD"), s.SalesChange),
		card("Orders This Month", count(s.OrdersThisMonth), s.OrdersChange),
		card("New Subscribers", count(s.NewSubscribers), s.SubscribersChange),
		card("New Customers", count(s.NewCustomers), s.CustomersChange),
	}
}

func recentOrders(items []dashboard.RecentOrder) []view.RecentOrderRow {
	out := make([]view.RecentOrderRow, 0, len(items))
	for _, o := range items {
		out = append(out, view.RecentOrderRow{
			ID:       o.ID,
			ShortID:  view.ShortID(o.ID),
			Customer: o.Customer,
			Date:     o.Date.Display(),
			Total:    view.Money(o.Total),
			Status:   o.Status,
			URL:      recordPath(entity.Order, o.ID),
		})
	}
	return out
}

func topProducts(items []dashboard.ProductSales) []view.TopProductRow {
	out := make([]view.TopProductRow, 0, len(items))
	for _, p := range items {
		out = append(out, view.TopProductRow{
			Name:    p.Name,
			Sales:   strconv.FormatFloat(p.Sales, 'f', -1, 64),
			Revenue: view.Money(p.Revenue),
		})
	}
	return out
}

type point struct {
	label string
	value float64
	text  string
}

func charts(ch dashboard.SalesChart) []view.Chart {
	sales := make([]point, 0, len(ch.SalesLast6Months))
	for _, m := range ch.SalesLast6Months {
		sales = append(sales, point{m.Month, m.Sales, view.MoneyFromFloat(m.Sales, "USD")})
	}
	orders := make([]point, 0, len(ch.OrdersLast6Months))
	for _, m := range ch.OrdersLast6Months {
		orders = append(orders, point{m.Month, m.Orders, strconv.FormatFloat(m.Orders, 'f', 0, 64)})
	}
	revenue := make([]point, 0, len(ch.RevenuePerProduct))
	for _, p := range ch.RevenuePerProduct {
		revenue = append(revenue, point{p.ProductName, p.Revenue, view.MoneyFromFloat(p.Revenue, "USD")})
	}
	return []view.Chart{
		chart("Sales (last 6 months)", sales),
		chart("Orders (last 6 months)", orders),
		chart("Revenue per Product", revenue),
	}
}

// chart scales bar heights to the largest value (100%).
func chart(title string, pts []point) view.Chart {
	var top float64
	for _, p := range pts {
		top = math.Max(top, p.value)
	}
	out := view.Chart{Title: title}
	for _, p := range pts {
		h := 0
		if top > 0 && p.value > 0 {
			h = int(math.Round(p.value / top * 100))
		}
		out.Bars = append(out.Bars, view.Bar{Label: p.label, Value: p.text, Height: h})
	}
	return out
}
