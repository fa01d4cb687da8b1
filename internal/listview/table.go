package listview

import (
	"net/url"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

// Spec describes one kind's table.
type Spec[T entity.Record] struct {
	Kind    entity.Kind
	Columns []Column[T]
	Filters []Filter[T]
	// RowURL, when set, makes rows clickable.
	RowURL func(T) string
	// ReadOnly hides the edit and delete actions.
	ReadOnly bool
}

// Build filters, sorts and renders items for q.
func Build[T entity.Record](spec Spec[T], items []T, q Query) view.Table {
	strat := entity.StrategyFor(spec.Kind)
	shown := Apply(spec.Kind, items, spec.Filters, q)
	Sort(shown, spec.Columns, q)

	t := view.Table{
		BasePath: strat.BasePath,
		Search:   q.Search,
		Empty:    strat.NotFound(),
		Hidden:   map[string]string{},
	}
	if q.Sort != "" {
		t.Hidden["sort"] = q.Sort
		t.Hidden["dir"] = q.Values().Get("dir")
	}

	for _, f := range spec.Filters {
		label := f.Label
		if label == "" {
			label = f.Key
		}
		t.Filters = append(t.Filters, view.FilterControl{
			Key:      f.Key,
			Label:    label,
			Options:  f.Options,
			Selected: q.Filters[f.Key],
		})
	}

	for _, c := range spec.Columns {
		h := view.TableHeader{Label: c.Label}
		if c.sortable() {
			next := q
			next.Sort = c.Key
			next.Desc = false
			if q.Sort == c.Key {
				next.Desc = !q.Desc
				h.Arrow = "▲"
				if q.Desc {
					h.Arrow = "▼"
				}
			}
			h.SortURL = link(strat.BasePath, next.Values())
		}
		t.Headers = append(t.Headers, h)
	}

	for _, it := range shown {
		id := it.RecordID()
		row := view.TableRow{ID: id}
		for _, c := range spec.Columns {
			row.Cells = append(row.Cells, c.Cell(it))
		}
		if spec.RowURL != nil {
			row.RowURL = spec.RowURL(it)
		}
		if !spec.ReadOnly {
			edit := q.Values()
			edit.Set("modal", "edit")
			edit.Set("id", id)
			row.EditURL = link(strat.BasePath, edit)

			del := q.Values()
			del.Set("confirm", id)
			row.DeleteURL = link(strat.BasePath, del)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func link(base string, v url.Values) string {
	if enc := v.Encode(); enc != "" {
		return base + "?" + enc
	}
	return base
}
