package formview

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/pkg/view"
)

// View renders the open session as a modal. action is the POST target and
// cancel the URL that closes the modal.
func (s *Session[D]) View(action, cancel string) view.Form {
	strat := entity.StrategyFor(s.Spec.Kind)
	title, submit := "Add "+strat.Singular, "Create"
	if s.Mode == Edit {
		title, submit = "Edit "+strat.Singular, "Save"
	}

	out := view.Form{
		Title:     title,
		Action:    action,
		CancelURL: cancel,
		Submit:    submit,
		Hidden:    map[string]string{},
		Error:     s.Errors["_"],
	}

	vals := draftValues(&s.Draft)
	for _, f := range s.Fields() {
		ff := view.FormField{
			Key:      f.Key,
			Label:    f.Label,
			Input:    string(f.Input),
			Required: f.Required,
			Multiple: f.Multiple,
			Error:    s.Errors[f.Key],
			Current:  s.Current[f.Key],
		}
		dv := vals[f.Key]
		switch f.Input {
		case InputFile:
			out.Multipart = true
			for _, u := range dv.uploads {
				if p := u.DataURL(); p != "" {
					ff.Previews = append(ff.Previews, p)
				}
			}
		case InputCheckbox:
			ff.Checked = dv.text == "true"
		default:
			ff.Value = dv.text
		}
		for _, o := range f.Options {
			ff.Options = append(ff.Options, view.FormOption{
				Value:    o.Value,
				Label:    o.Label,
				Selected: o.Value == dv.text,
			})
		}
		out.Fields = append(out.Fields, ff)
	}
	return out
}

type draftValue struct {
	text    string
	uploads []Upload
}

// draftValues reads the draft's fields keyed by their form or upload tag.
func draftValues(dst any) map[string]draftValue {
	out := map[string]draftValue{}
	v := reflect.ValueOf(dst).Elem()
	if v.Kind() != reflect.Struct {
		return out
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if key := sf.Tag.Get("upload"); key != "" {
			switch x := v.Field(i).Interface().(type) {
			case []Upload:
				out[key] = draftValue{uploads: x}
			case *Upload:
				if x != nil {
					out[key] = draftValue{uploads: []Upload{*x}}
				}
			}
			continue
		}
		key := sf.Tag.Get("form")
		if j := strings.Index(key, ","); j >= 0 {
			key = key[:j]
		}
		if key == "" || key == "-" {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			out[key] = draftValue{text: f.String()}
		case reflect.Bool:
			out[key] = draftValue{text: strconv.FormatBool(f.Bool())}
		case reflect.Int, reflect.Int32, reflect.Int64:
			out[key] = draftValue{text: strconv.FormatInt(f.Int(), 10)}
		}
	}
	return out
}
