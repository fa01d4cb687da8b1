package admin

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/storage"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/pages"
)

type ProductsHandler struct {
	Base
	Products   *products.Service
	Categories *categories.Service
	// Images stores a replacement image uploaded from the edit form.
	Images storage.Storage
}

func NewProductsHandler(b Base, p *products.Service, c *categories.Service, images storage.Storage) *ProductsHandler {
	return &ProductsHandler{Base: b, Products: p, Categories: c, Images: images}
}

func productSpec(items []products.Product) listview.Spec[products.Product] {
	money := func(s string) listview.Cell { return listview.Text(view.Money(s)) }
	return listview.Spec[products.Product]{
		Kind: entity.Product,
		Columns: []listview.Column[products.Product]{
			{Key: "ID", Label: "ID", Render: func(p products.Product) listview.Cell { return shortIDCell(p.ID) }},
			{Key: "ImageUrl", Label: "Image", Render: func(p products.Product) listview.Cell { return imageCell(p.ImageUrl) }},
			{Key: "Name", Label: "Name", Less: func(a, b products.Product) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}},
			{Key: "BasePrice", Label: "Base Price", Render: func(p products.Product) listview.Cell { return money(p.BasePrice) }},
			{Key: "CurrentPrice", Label: "Current Price",
				Render: func(p products.Product) listview.Cell { return money(p.CurrentPrice) },
				Less:   func(a, b products.Product) bool { return price(a.CurrentPrice) < price(b.CurrentPrice) },
			},
			{Key: "Stock", Label: "Stock",
				Render: func(p products.Product) listview.Cell {
					return listview.Text(strconv.FormatInt(int64(p.Stock.OrZero()), 10))
				},
				Less: func(a, b products.Product) bool { return a.Stock.OrZero() < b.Stock.OrZero() },
			},
			{Key: "Weight", Label: "Weight"},
			{Key: "CreatedAt", Label: "Created On",
				Render: func(p products.Product) listview.Cell { return dateCell(p.CreatedAt) },
				Less:   func(a, b products.Product) bool { return lessTime(a.CreatedAt, b.CreatedAt) },
			},
		},
		Filters: []listview.Filter[products.Product]{{
			Key:     "categories",
			Label:   "Category",
			Options: products.CategoryNames(items),
			Value:   func(p products.Product) (string, bool) { return p.CategoryName, true },
		}},
		RowURL: func(p products.Product) string { return recordPath(entity.Product, p.ID, "categories") },
	}
}

func price(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func (h *ProductsHandler) page(c *gin.Context, st listState) (view.ListPage, []products.Product) {
	return listPage(c, h.Base, entity.Product, st, h.Products.List, productSpec)
}

func (h *ProductsHandler) List(c *gin.Context) {
	st := readListState(c)
	page, items := h.page(c, st)
	base := entity.StrategyFor(entity.Product).BasePath

	switch st.Modal {
	case "new":
		s := formview.New(formview.ProductSpec)
		s.OpenCreate(formview.NewProductDraft())
		form := s.View(st.at(base), st.at(base))
		page.Modal = &form
	case "edit":
		if p, ok := find(items, st.ID); ok {
			s := h.editSession(p)
			form := s.View(st.at(recordPath(entity.Product, p.ID)), st.at(base))
			page.Modal = &form
		} else if page.Error == "" {
			page.Error = notFound(entity.Product)
		}
	}
	if st.Confirm != "" {
		if p, ok := find(items, st.Confirm); ok {
			page.Confirm = confirmDelete(entity.Product, p, "", st)
		}
	}
	renderList(c, page)
}

func (h *ProductsHandler) editSession(p products.Product) *formview.Session[formview.ProductDraft] {
	s := formview.New(formview.ProductSpec)
	s.OpenEdit(p.ID, formview.EditProductDraft(p))
	s.Current = map[string]string{"ImageFile": p.ImageUrl.OrZero()}
	return s
}

func (h *ProductsHandler) Create(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Product).BasePath

	s := formview.New(formview.ProductSpec)
	s.OpenCreate(formview.NewProductDraft())
	err := submit(c, s, func(ctx context.Context, d formview.ProductDraft) error {
		return h.Products.Create(ctx, d.CreateInput())
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(base), st.at(base)))
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Product, "created"), failMsg("add", entity.Product))
}

func (h *ProductsHandler) Update(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Product).BasePath
	id := c.Param("id")

	orig, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		h.finish(c, err, st.at(base), "", failMsg("update", entity.Product))
		return
	}

	s := h.editSession(orig)
	err = submit(c, s, func(ctx context.Context, d formview.ProductDraft) error {
		p := d.Apply(orig)
		if d.Replacement != nil {
			url, err := h.storeImage(ctx, id, *d.Replacement)
			if errors.Is(err, storage.ErrNotPublic) || errors.Is(err, storage.ErrNotImage) {
				h.Logger.Error("image_store_rejected", "product", id, "err", err)
				s.Errors = formview.Errors{"ImageFile": "The image could not be published. Check storage.url_prefix."}
				return formview.ErrInvalid
			}
			if err != nil {
				return err
			}
			p.ImageUrl = nullable.Of(url)
		}
		return h.Products.Update(ctx, id, formview.ProductUpdateInput(p))
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(recordPath(entity.Product, id)), st.at(base)))
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Product, "updated"), failMsg("update", entity.Product))
}

func (h *ProductsHandler) storeImage(ctx context.Context, productID string, u formview.Upload) (string, error) {
	res, err := storage.PutImage(ctx, h.Images, bytes.NewReader(u.Data), storage.PutInput{
		Owner:       productID,
		Filename:    u.Filename,
		ContentType: u.ContentType,
		Size:        u.Size,
	})
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	st := readListState(c)
	err := h.Products.Delete(c.Request.Context(), c.Param("id"))
	h.finish(c, err, st.at(entity.StrategyFor(entity.Product).BasePath),
		okMsg(entity.Product, "deleted"), failMsg("delete", entity.Product))
}

// CategoryPicker shows the category checklist for one product.
func (h *ProductsHandler) CategoryPicker(c *gin.Context) {
	id := c.Param("id")
	base := entity.StrategyFor(entity.Product).BasePath
	ctx := c.Request.Context()

	p, err := h.Products.Get(ctx, id)
	if err != nil {
		h.finish(c, err, base, "", notFound(entity.Product))
		return
	}

	vm := view.AdminAssignCategories{
		Layout:      render.Layout(c, "Assign Categories", base),
		ProductID:   p.ID,
		ProductName: p.Name,
		Image:       p.ImageUrl.OrZero(),
		Action:      recordPath(entity.Product, p.ID, "categories"),
		CancelURL:   base,
	}
	cats, err := h.Categories.List(ctx)
	if err != nil {
		h.logFailure(c, err, "load category list")
		vm.Error = "Failed to load categories."
	}
	for _, cat := range cats {
		vm.Categories = append(vm.Categories, view.AdminCategoryChoice{
			ID:      cat.ID,
			Name:    entity.StrategyFor(entity.Category).NameOf(cat),
			Checked: cat.Name != "" && cat.Name == p.CategoryName,
		})
	}
	render.Component(c, http.StatusOK, pages.AssignCategories(vm))
}

func (h *ProductsHandler) AssignCategories(c *gin.Context) {
	id := c.Param("id")
	ids := c.PostFormArray("categoryIDs")
	err := h.Products.AssignCategories(c.Request.Context(), id, ids)
	h.finish(c, err, entity.StrategyFor(entity.Product).BasePath,
		"Categories assigned successfully.", "Failed to assign categories. Please try again.")
}
