package listview

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

var projectorType = reflect.TypeOf((*nullable.Projector)(nil)).Elem()

// Project resolves key on rec and renders it as a string. The key matches a
// Go field name or its json tag, case-insensitively. Nullable fields are
// unwrapped; an invalid nullable, a zero time or an unknown key report false.
func Project(rec any, key string) (string, bool) {
	v := reflect.ValueOf(rec)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", false
	}
	f, ok := fieldByKey(v, key)
	if !ok {
		return "", false
	}
	return projectValue(f)
}

func fieldByKey(v reflect.Value, key string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if strings.EqualFold(sf.Name, key) || strings.EqualFold(jsonName(sf), key) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

func projectValue(f reflect.Value) (string, bool) {
	if f.Type().Implements(projectorType) {
		return f.Interface().(nullable.Projector).Project()
	}
	switch x := f.Interface().(type) {
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return x.Format(nullable.DisplayTimeLayout), true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	}
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(f.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(f.Float(), 'f', -1, 64), true
	case reflect.Pointer:
		if f.IsNil() {
			return "", false
		}
		return projectValue(f.Elem())
	}
	return "", false
}
