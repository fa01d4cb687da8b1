package admin

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

const (
	promotionSaveFailed   = "Failed to save promotion"
	promotionDeleteFailed = "Failed to delete promotion"
)

var typeLabels = map[promotions.DiscountType]string{
	promotions.Percentage: "Add Percentage Discount",
	promotions.Fixed:      "Add Fixed Discount",
	promotions.Bundle:     "Add Bundle Promotion",
}

type PromotionsHandler struct {
	Base
	Promotions *promotions.Service
	// Now is the clock used for the status column.
	Now func() time.Time
}

func NewPromotionsHandler(b Base, s *promotions.Service) *PromotionsHandler {
	return &PromotionsHandler{Base: b, Promotions: s, Now: time.Now}
}

func (h *PromotionsHandler) spec([]promotions.Promotion) listview.Spec[promotions.Promotion] {
	now := h.Now()
	date := func(t time.Time) listview.Cell {
		if t.IsZero() {
			return listview.Cell{Text: nullable.NA, Muted: true}
		}
		return listview.Text(t.UTC().Format(nullable.DateLayout))
	}
	return listview.Spec[promotions.Promotion]{
		Kind: entity.Promotion,
		Columns: []listview.Column[promotions.Promotion]{
			{Key: "id", Label: "ID", Render: func(p promotions.Promotion) listview.Cell { return shortIDCell(p.ID) }},
			{Key: "name", Label: "Code", Less: func(a, b promotions.Promotion) bool {
				return strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}},
			{Key: "discount", Label: "Discount", Render: func(p promotions.Promotion) listview.Cell {
				return listview.Text(p.Discount())
			}},
			{Key: "productName", Label: "Product"},
			{Key: "categoryName", Label: "Category"},
			{Key: "startDate", Label: "Start Date",
				Render: func(p promotions.Promotion) listview.Cell { return date(p.StartDate) },
				Less:   func(a, b promotions.Promotion) bool { return a.StartDate.Before(b.StartDate) },
			},
			{Key: "endDate", Label: "End Date",
				Render: func(p promotions.Promotion) listview.Cell { return date(p.EndDate) },
				Less:   func(a, b promotions.Promotion) bool { return a.EndDate.Before(b.EndDate) },
			},
			{Key: "isActive", Label: "Status", Render: func(p promotions.Promotion) listview.Cell {
				return listview.Text(p.Status(now))
			}},
		},
		Filters: []listview.Filter[promotions.Promotion]{
			{Key: "isActive", Label: "Active", Options: []string{"true", "false"}},
		},
	}
}

func (h *PromotionsHandler) page(c *gin.Context, st listState) (view.ListPage, []promotions.Promotion) {
	return listPage(c, h.Base, entity.Promotion, st, h.Promotions.List, h.spec)
}

func (h *PromotionsHandler) List(c *gin.Context) {
	st := readListState(c)
	page, items := h.page(c, st)
	base := entity.StrategyFor(entity.Promotion).BasePath

	switch st.Modal {
	case "new":
		t, ok := promotions.ParseDiscountType(st.Type)
		if !ok {
			page.Picker = typePicker(st)
			break
		}
		form := newPromotion(t).View(st.at(base), st.at(base))
		form.Hidden["type"] = string(t)
		page.Modal = &form
	case "edit":
		if p, ok := find(items, st.ID); ok {
			s := editPromotion(p)
			form := s.View(st.at(recordPath(entity.Promotion, p.ID)), st.at(base))
			form.Hidden["type"] = s.Draft.Type
			page.Modal = &form
		} else if page.Error == "" {
			page.Error = notFound(entity.Promotion)
		}
	}
	if st.Confirm != "" {
		if p, ok := find(items, st.Confirm); ok {
			page.Confirm = confirmDelete(entity.Promotion, p, "", st)
		}
	}
	renderList(c, page)
}

// typePicker is shown before the create form; each discount type has its
// own field set.
func typePicker(st listState) *view.Picker {
	base := entity.StrategyFor(entity.Promotion).BasePath
	p := &view.Picker{Title: "Choose Promotion Type", CancelURL: st.at(base)}
	for _, t := range promotions.DiscountTypes() {
		p.Choices = append(p.Choices, view.Choice{
			Label: typeLabels[t],
			URL:   st.with(base, "modal", "new", "type", string(t)),
		})
	}
	return p
}

func newPromotion(t promotions.DiscountType) *formview.Session[formview.PromotionDraft] {
	s := formview.New(formview.PromotionSpec(t))
	s.OpenCreate(formview.NewPromotionDraft(t))
	return s
}

func editPromotion(p promotions.Promotion) *formview.Session[formview.PromotionDraft] {
	s := formview.New(formview.PromotionSpec(p.Type()))
	s.OpenEdit(p.ID, formview.EditPromotionDraft(p))
	return s
}

func (h *PromotionsHandler) Create(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Promotion).BasePath

	t, ok := promotions.ParseDiscountType(c.PostForm("type"))
	if !ok {
		t = promotions.Percentage
	}
	s := newPromotion(t)
	err := submit(c, s, func(ctx context.Context, d formview.PromotionDraft) error {
		return h.Promotions.Create(ctx, d.Input())
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		form := s.View(st.at(base), st.at(base))
		form.Hidden["type"] = string(t)
		renderInvalid(c, page, form)
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Promotion, "created"), promotionSaveFailed)
}

func (h *PromotionsHandler) Update(c *gin.Context) {
	st := readListState(c)
	base := entity.StrategyFor(entity.Promotion).BasePath
	id := c.Param("id")

	p, err := h.Promotions.Get(c.Request.Context(), id)
	if err != nil {
		h.finish(c, err, st.at(base), "", promotionSaveFailed)
		return
	}
	s := editPromotion(p)
	err = submit(c, s, func(ctx context.Context, d formview.PromotionDraft) error {
		return h.Promotions.Update(ctx, id, d.Input())
	})
	if isInvalid(err) {
		page, _ := h.page(c, st)
		form := s.View(st.at(recordPath(entity.Promotion, id)), st.at(base))
		form.Hidden["type"] = string(p.Type())
		renderInvalid(c, page, form)
		return
	}
	h.finish(c, err, st.at(base), okMsg(entity.Promotion, "updated"), promotionSaveFailed)
}

func (h *PromotionsHandler) Delete(c *gin.Context) {
	st := readListState(c)
	err := h.Promotions.Delete(c.Request.Context(), c.Param("id"))
	h.finish(c, err, st.at(entity.StrategyFor(entity.Promotion).BasePath),
		okMsg(entity.Promotion, "deleted"), promotionDeleteFailed)
}
