package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/apiclient"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/formview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/flash"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/middleware"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/render"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/listview"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
	"github.com/DiegoGarciaCo/Ecom-Admin/templates/pages"
)

// Base is shared by every entity handler.
type Base struct {
	Flash  *flash.Codec
	Logger *slog.Logger
}

// listState is everything a list page keeps in its URL.
type listState struct {
	Query   listview.Query
	Modal   string
	ID      string
	Confirm string
	// Type is the promotion discount type picked before the form opens.
	Type string
}

func readListState(c *gin.Context) listState {
	v := c.Request.URL.Query()
	return listState{
		Query:   listview.ParseQuery(v),
		Modal:   v.Get("modal"),
		ID:      v.Get("id"),
		Confirm: v.Get("confirm"),
		Type:    v.Get("type"),
	}
}

// at is path with the list's search, filters and sort attached. POST targets
// carry them too, so the redirect after a write lands on the same view.
func (s listState) at(path string) string {
	return withQuery(path, s.Query.Values())
}

// with is at plus extra parameters.
func (s listState) with(path string, kv ...string) string {
	v := s.Query.Values()
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return withQuery(path, v)
}

func withQuery(path string, v url.Values) string {
	if enc := v.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func recordPath(kind entity.Kind, id string, suffix ...string) string {
	p := apiclient.PathID(entity.StrategyFor(kind).BasePath, id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// listPage loads the records and lays them out as the kind's list page. A
// failed load becomes an alert over an empty table; the page still renders.
func listPage[T entity.Record](c *gin.Context, b Base, kind entity.Kind, st listState, load func(context.Context) ([]T, error), spec func([]T) listview.Spec[T]) (view.ListPage, []T) {
	strat := entity.StrategyFor(kind)
	page := view.ListPage{
		Layout:   render.Layout(c, strat.Plural, strat.BasePath),
		Heading:  strat.Plural,
		AddURL:   st.with(strat.BasePath, "modal", "new"),
		AddLabel: "Add " + strat.Singular,
	}

	items, err := load(c.Request.Context())
	if err != nil {
		b.logFailure(c, err, "load "+string(kind)+" list")
		page.Error = "Failed to load " + strings.ToLower(strat.Plural) + "."
		items = nil
	}
	page.Table = listview.Build(spec(items), items, st.Query)
	return page, items
}

func find[T entity.Record](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func notFound(kind entity.Kind) string {
	return entity.StrategyFor(kind).Singular + " not found."
}

// confirmDelete is the dialog for ?confirm=<id>. extra is appended to the
// question, e.g. how many products a category holds.
func confirmDelete(kind entity.Kind, rec entity.Record, extra string, st listState) *view.ConfirmDelete {
	strat := entity.StrategyFor(kind)
	return &view.ConfirmDelete{
		Title:     "Confirm Deletion",
		Message:   fmt.Sprintf("Are you sure you want to delete %s?%s", strat.NameOf(rec), extra),
		Action:    st.at(recordPath(kind, rec.RecordID(), "delete")),
		CancelURL: st.at(strat.BasePath),
	}
}

// bindDraft binds the posted form into d, then any uploaded files.
func bindDraft[D any](c *gin.Context, d *D) formview.Errors {
	if err := c.ShouldBind(d); err != nil {
		return formview.Errors(validation.FromBindError(err, d))
	}
	if c.Request.MultipartForm != nil {
		if err := formview.LoadUploads(c.Request.MultipartForm, d); err != nil {
			return formview.Errors{"_": "The uploaded file could not be read. Images must be under 10 MB."}
		}
	}
	return nil
}

// submit binds the posted draft and runs it through the open session.
func submit[D any](c *gin.Context, s *formview.Session[D], save func(context.Context, D) error) error {
	var d D
	if errs := bindDraft(c, &d); len(errs) > 0 {
		s.Draft, s.Errors = d, errs
		return formview.ErrInvalid
	}
	return s.Submit(c.Request.Context(), d, save)
}

// finish is the tail of every POST: a success or failure flash and a redirect
// back to the list. Validation failures are handled by the caller.
func (b Base) finish(c *gin.Context, err error, back, ok, failed string) {
	if err != nil {
		b.logFailure(c, err, failed)
		render.RedirectWithFlash(c, b.Flash, back, view.FlashError, failed)
		return
	}
	render.RedirectWithFlash(c, b.Flash, back, view.FlashSuccess, ok)
}

func (b Base) logFailure(c *gin.Context, err error, what string) {
	attrs := []slog.Attr{
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("action", what),
		slog.Any("err", err),
	}
	if st := apiclient.StatusOf(err); st != 0 {
		attrs = append(attrs, slog.Int("upstream_status", st))
	}
	b.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "admin_action_failed", attrs...)
}

func failMsg(verb string, kind entity.Kind) string {
	return fmt.Sprintf("Failed to %s %s. Please try again.", verb, strings.ToLower(entity.StrategyFor(kind).Singular))
}

func okMsg(kind entity.Kind, past string) string {
	return entity.StrategyFor(kind).Singular + " " + past + " successfully."
}

// renderInvalid re-renders the list with the form open and its errors.
func renderInvalid(c *gin.Context, page view.ListPage, form view.Form) {
	page.Modal = &form
	render.Component(c, http.StatusUnprocessableEntity, pages.List(page))
}

func renderList(c *gin.Context, page view.ListPage) {
	render.Component(c, http.StatusOK, pages.List(page))
}

func isInvalid(err error) bool { return errors.Is(err, formview.ErrInvalid) }

func shortIDCell(id string) listview.Cell {
	if id == "" {
		return listview.Cell{Text: nullable.NA, Muted: true}
	}
	return listview.Text(view.ShortID(id))
}

func dateCell(t nullable.Time) listview.Cell {
	v, ok := t.Get()
	if !ok || v.IsZero() {
		return listview.Cell{Text: nullable.NA, Muted: true}
	}
	return listview.Text(v.Format(nullable.DateLayout))
}

func imageCell(u nullable.String) listview.Cell {
	if src := u.OrZero(); src != "" {
		return listview.Cell{Image: src}
	}
	return listview.Cell{Text: "No Image", Muted: true}
}

func lessTime(a, b nullable.Time) bool {
	return a.OrZero().Before(b.OrZero())
}
