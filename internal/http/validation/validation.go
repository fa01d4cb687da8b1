package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type FieldErrors map[string]string

// Messages overrides the generic message per "<formKey>.<tag>", e.g.
// "BasePrice.price". A "<formKey>" entry applies to every tag of that field.
type Messages map[string]string

var priceRe = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var (
	once sync.Once
	v    *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
			return priceRe.MatchString(fl.Field().String())
		})
	})
	return v
}

// IsPrice reports whether s is a non-negative amount with at most two
// decimals.
func IsPrice(s string) bool { return priceRe.MatchString(s) }

// IsURL reports whether s is an absolute URL.
func IsURL(s string) bool { return validate().Var(s, "url") == nil }

// Struct validates dst's `validate` tags. Errors are keyed by form tag.
func Struct(dst any, msgs Messages) FieldErrors {
	out := FieldErrors{}
	err := validate().Struct(dst)
	if err == nil {
		return out
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = "Invalid form data."
		return out
	}
	for _, fe := range ve {
		key := fieldKey(dst, fe.StructField())
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = msgs.lookup(key, fe.Tag(), fe.Param())
	}
	return out
}

// Turns a bind/validation error into a field->message map.
// dst: the bound struct pointer (used to read tags)
func FromBindError(err error, dst any) FieldErrors {
	out := FieldErrors{}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			key := fieldKey(dst, fe.StructField())
			out[key] = messageForTag(fe.Tag(), fe.Param())
		}
		return out
	}

	// Other bind errors (type mismatch etc.)
	out["_"] = "Invalid form data."
	return out
}

func (m Messages) lookup(key, tag, param string) string {
	if msg, ok := m[key+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[key]; ok {
		return msg
	}
	return messageForTag(tag, param)
}

func fieldKey(dst any, structField string) string {
	// find the form tag (form:"email")
	t := reflect.TypeOf(dst)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return strings.ToLower(structField)
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return strings.ToLower(structField)
	}
	tag := f.Tag.Get("form")
	if tag == "" {
		return strings.ToLower(structField)
	}
	// drop anything after a comma, e.g. form:"email,omitempty"
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" || tag == "-" {
		return strings.ToLower(structField)
	}
	return tag
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Invalid URL format"
	case "price":
		return "Invalid price format"
	case "oneof":
		return "Choose one of: " + param + "."
	case "min":
		return "Must be at least " + param + "."
	case "max":
		return "Must be at most " + param + "."
	default:
		return "Invalid value."
	}
}
