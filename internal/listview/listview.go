// Package listview turns a fetched slice of records into a searchable,
// filterable table. Everything happens over the records already loaded for
// the page; there is no paging.
package listview

import (
	"net/url"
	"sort"
	"strings"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

type Cell = view.Cell

func Text(s string) Cell { return Cell{Text: s} }

type Column[T entity.Record] struct {
	Key   string
	Label string
	// Render overrides the default projection of Key.
	Render func(T) Cell
	// Less makes the column header a sort toggle.
	Less func(a, b T) bool
	// SortFunc replaces the Less ordering for columns whose order is not a
	// plain reversal in descending mode.
	SortFunc func(items []T, desc bool)
}

func (c Column[T]) sortable() bool { return c.Less != nil || c.SortFunc != nil }

type Filter[T entity.Record] struct {
	Key     string
	Label   string
	Options []string
	// Value overrides the default projection of Key.
	Value func(T) (string, bool)
}

// Query is the list state carried in the URL: ?q=&f.<key>=&sort=&dir=.
type Query struct {
	Search  string
	Filters map[string]string
	Sort    string
	Desc    bool
}

func ParseQuery(v url.Values) Query {
	q := Query{
		Search:  strings.TrimSpace(v.Get("q")),
		Filters: map[string]string{},
		Sort:    v.Get("sort"),
		Desc:    v.Get("dir") == "desc",
	}
	for k, vals := range v {
		if key, ok := strings.CutPrefix(k, "f."); ok && key != "" && len(vals) > 0 && vals[0] != "" {
			q.Filters[key] = vals[0]
		}
	}
	return q
}

// Values encodes q back into URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	for k, val := range q.Filters {
		if val != "" {
			v.Set("f."+k, val)
		}
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		if q.Desc {
			v.Set("dir", "desc")
		} else {
			v.Set("dir", "asc")
		}
	}
	return v
}

// Apply keeps the records matching the search text AND every active filter.
// Search is a case-insensitive substring match on the kind's display name;
// a filter is an exact match on the projected field.
func Apply[T entity.Record](kind entity.Kind, items []T, filters []Filter[T], q Query) []T {
	strat := entity.StrategyFor(kind)
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]T, 0, len(items))
	for _, it := range items {
		if needle != "" && !strings.Contains(strings.ToLower(strat.NameOf(it)), needle) {
			continue
		}
		if !matchesAll(it, filters, q.Filters) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesAll[T entity.Record](it T, filters []Filter[T], selected map[string]string) bool {
	for _, f := range filters {
		want, ok := selected[f.Key]
		if !ok || want == "" {
			continue
		}
		got, present := f.value(it)
		if !present || got != want {
			return false
		}
	}
	return true
}

func (f Filter[T]) value(it T) (string, bool) {
	if f.Value != nil {
		return f.Value(it)
	}
	return Project(it, f.Key)
}

// Sort orders items by the column named in q when that column is sortable.
func Sort[T entity.Record](items []T, cols []Column[T], q Query) {
	for _, c := range cols {
		if c.Key != q.Sort || !c.sortable() {
			continue
		}
		if c.SortFunc != nil {
			c.SortFunc(items, q.Desc)
			return
		}
		less := c.Less
		sort.SliceStable(items, func(i, j int) bool {
			if q.Desc {
				return less(items[j], items[i])
			}
			return less(items[i], items[j])
		})
		return
	}
}

// Cell renders one column for it, falling back to "N/A" when the
// field is absent.
func (c Column[T]) Cell(it T) Cell {
	if c.Render != nil {
		return c.Render(it)
	}
	if s, ok := Project(it, c.Key); ok {
		return Cell{Text: s}
	}
	return Cell{Text: nullable.NA, Muted: true}
}
