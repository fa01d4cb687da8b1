package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

type CategoriesHandler struct {
	Base
	Categories *categories.Service
}

func NewCategoriesHandler(b Base, s *categories.Service) *CategoriesHandler {
	return &CategoriesHandler{Base: b, Categories: s}
}

func categorySpec([]categories.Category) listview.Spec[categories.Category] {
	return listview.Spec[categories.Category]{
		Kind: entity.Category,
		Columns: []listview.Column[categories.Category]{
			{Key: "ID", Label: "ID", Render: func(c categories.Category) listview.Cell { return shortIDCell(c.ID) }},
			{Key: "ImageUrl", Label: "Image", Render: func(c categories.Category) listview.Cell { return imageCell(c.ImageUrl) }},
			{Key: "Name", Label: "Name", Less: func(a, b categories.Category) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}},
			{Key: "Description", Label: "Description"},
			{Key: "CreatedAt", Label: "Created On",
				Render: func(c categories.Category) listview.Cell { return dateCell(c.CreatedAt) },
				Less:   func(a, b categories.Category) bool { return lessTime(a.CreatedAt, b.CreatedAt) },
			},
		},
		Filters: []listview.Filter[categories.Category]{
			{Key: "IsGenderSpecific", Label: "Gender Specific", Options: []string{"true", "false"}},
		},
	}
}

func (h *CategoriesHandler) page(c *gin.Context, st listState) (view.ListPage, []categories.Category) {
	return listPage(c, h.Base, entity.Category, st, h.Categories.List, categorySpec)
}

func (h *CategoriesHandler) List(c *gin.Context) {
	st := readListState(c)
	page, items := h.page(c, st)
	base := entity.StrategyFor(entity.Category).BasePath

	switch st.Modal {
	case "new":
		s := formview.New(formview.CategorySpec(items))
		s.OpenCreate(formview.CategoryDraft{})
		form := s.View(st.at(base), st.at(base))
		page.Modal = &form
	case "edit":
		if cat, ok := find(items, st.ID); ok {
			s := h.editSession(items, cat)
			form := s.View(st.at(recordPath(entity.Category, cat.ID)), st.at(base))
			page.Modal = &form
		} else if page.Error == "" {
			page.Error = notFound(entity.Category)
		}
	}
	if st.Confirm != "" {
		if cat, ok := find(items, st.Confirm); ok {
			page.Confirm = confirmDelete(entity.Category, cat, affected(cat), st)
		}
	}
	renderList(c, page)
}

// affected warns that deleting a non-empty category touches its products.
func affected(c categories.Category) string {
	switch {
	case c.ProductCount == 1:
		return " This will affect 1 product."
	case c.ProductCount > 1:
		return fmt.Sprintf(" This will affect %d products.", c.ProductCount)
	}
	return ""
}

func (h *CategoriesHandler) editSession(items []categories.Category, cat categories.Category) *formview.Session[formview.CategoryDraft] {
	s := formview.New(formview.CategorySpec(categories.Parents(items, cat.ID)))
	s.OpenEdit(cat.ID, formview.EditCategoryDraft(cat))
	s.Current = map[string]string{"ImageFile": cat.ImageUrl.OrZero()}
	return s
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Category).BasePath

	// Parent options are only needed when the form is shown again.
	s := formview.New(formview.CategorySpec(nil))
	s.OpenCreate(formview.CategoryDraft{})
	err := submit(c, s, func(ctx context.Context, d formview.CategoryDraft) error {
		return h.Categories.Create(ctx, formview.CategoryInput(d.Apply(categories.Category{}), d.ImageFile))
	})
	if isInvalid(err) {
		page, items := h.page(c, st)
		s.Spec = formview.CategorySpec(items)
		renderInvalid(c, page, s.View(st.at(base), st.at(base)))
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Category, "created"), failMsg("add", entity.Category))
}

func (h *CategoriesHandler) Update(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Category).BasePath
	id := c.Param("id")

	items, err := h.Categories.List(c.Request.Context())
	if err != nil {
		h.finish(c, err, st.at(base), "", failMsg("update", entity.Category))
		return
	}
	orig, ok := find(items, id)
	if !ok {
		h.finish(c, categories.ErrNotFound, st.at(base), "", notFound(entity.Category))
		return
	}

	s := h.editSession(items, orig)
	err = submit(c, s, func(ctx context.Context, d formview.CategoryDraft) error {
		return h.Categories.Update(ctx, id, formview.CategoryInput(d.Apply(orig), d.ImageFile))
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		renderInvalid(c, page, s.View(st.at(recordPath(entity.Category, id)), st.at(base)))
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Category, "updated"), failMsg("update", entity.Category))
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	st := readListState(c)
	err := h.Categories.Delete(c.Request.Context(), c.Param("id"))
	h.finish(c, err, st.at(entity.StrategyFor(entity.Category).BasePath),
		okMsg(entity.Category, "deleted"), failMsg("delete", entity.Category))
}
