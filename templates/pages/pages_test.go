package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

func render(t *testing.T, name string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, component(name, data).Render(context.Background(), &buf))
	return buf.String()
}

func TestListRendersTableAndModal(t *testing.T) {
	p := view.ListPage{
		Layout:  view.Layout{Title: "Products", Flash: &view.Flash{Kind: view.FlashSuccess, Message: "Product created successfully"}},
		Heading: "Products",
		Table: view.Table{
			BasePath: "/admin/products",
			Headers:  []view.TableHeader{{Label: "Name"}},
			Rows: []view.TableRow{{
				ID:        "p-1",
				Cells:     []view.Cell{{Text: "Boot <b>"}},
				RowURL:    "/admin/products/p-1/categories",
				EditURL:   "/admin/products?id=p-1&modal=edit",
				DeleteURL: "/admin/products?confirm=p-1",
			}},
		},
		Modal: &view.Form{
			Title:     "Add Product",
			Action:    "/admin/products",
			Multipart: true,
			Fields: []view.FormField{
				{Key: "Images", Input: "file", Multiple: true, Previews: []string{"data:image/png;base64,AAAA", "javascript:alert(1)"}},
				{Key: "Name", Input: "text", Error: "Name is required"},
			},
		},
	}
	out := render(t, "list", p)

	assert.Contains(t, out, "Product created successfully")
	assert.Contains(t, out, "Boot &lt;b&gt;")
	assert.Contains(t, out, `href="/admin/products/p-1/categories"`)
	assert.Contains(t, out, `enctype="multipart/form-data"`)
	assert.Contains(t, out, `src="data:image/png;base64,AAAA"`)
	assert.NotContains(t, out, "javascript:alert")
	assert.Contains(t, out, "Name is required")
}

func TestListEmptyMessage(t *testing.T) {
	out := render(t, "list", view.ListPage{
		Heading: "Orders",
		Table:   view.Table{BasePath: "/admin/orders", Empty: "No orders found."},
	})
	assert.Contains(t, out, "No orders found.")
}

func TestDashboardPanelsFailIndependently(t *testing.T) {
	out := render(t, "dashboard", view.DashboardPage{
		StatsErr:    "Failed to load stats",
		TopProducts: []view.TopProductRow{{Name: "Boot", Sales: "3", Revenue: "$30.00"}},
	})
	assert.Contains(t, out, "Failed to load stats")
	assert.Contains(t, out, "Boot")
	assert.Contains(t, out, "$30.00")
}

func TestErrorPage(t *testing.T) {
	out := render(t, "error", view.ErrorPage{Status: 404, Message: "Order not found", RequestID: "rid-1"})
	assert.Contains(t, out, "Order not found")
	assert.Contains(t, out, "rid-1")
}
