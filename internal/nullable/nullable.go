// Package nullable models optional scalar fields exchanged with the shop API.
//
// The backend serialises SQL null wrappers as {"String": "x", "Valid": true},
// {"Boolean": b, "Valid": true}, {"Int32": n, "Valid": true} and
// {"Time": "...", "Valid": true}. Value[T] is the single Go shape for all of
// them: when Valid is false the slot content is ignored.
package nullable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NA is what absent values render as.
const NA = "N/A"

// DateLayout is the layout used for editable date inputs.
const DateLayout = "2006-01-02"

// DisplayTimeLayout is the layout used when a timestamp is shown in a table.
const DisplayTimeLayout = "2006-01-02 15:04"

type Scalar interface {
	string | bool | int32 | time.Time
}

type Value[T Scalar] struct {
	Val   T
	Valid bool
}

type (
	String = Value[string]
	Bool   = Value[bool]
	Int32  = Value[int32]
	Time   = Value[time.Time]
)

// Projector is implemented by every Value. Table renderers and filters use it
// to unwrap a field without knowing its concrete type.
type Projector interface {
	Project() (string, bool)
}

func Of[T Scalar](v T) Value[T] { return Value[T]{Val: v, Valid: true} }

func Null[T Scalar]() Value[T] { return Value[T]{} }

// Get returns the slot value and whether it is present.
func (v Value[T]) Get() (T, bool) {
	if !v.Valid {
		var zero T
		return zero, false
	}
	return v.Val, true
}

// OrZero normalizes the value for editing: the slot when valid, else the
// type default ("", false, 0, zero time).
func (v Value[T]) OrZero() T {
	val, _ := v.Get()
	return val
}

// Project returns the display text of a valid value.
func (v Value[T]) Project() (string, bool) {
	if !v.Valid {
		return "", false
	}
	return format(v.Val, DisplayTimeLayout), true
}

// Display renders the value for a table cell.
func (v Value[T]) Display() string {
	if s, ok := v.Project(); ok {
		return s
	}
	return NA
}

// Text renders the normalized value into a form input. Invalid values give
// the empty string (or "false"/"0" for bool and int32).
func (v Value[T]) Text() string {
	if !v.Valid {
		var zero T
		if _, isTime := any(zero).(time.Time); isTime {
			return ""
		}
		return format(zero, DateLayout)
	}
	return format(v.Val, DateLayout)
}

// Rewrap denormalizes an edited plain value. A value equal to the normalized
// original counts as untouched and keeps the original validity; anything
// else is wrapped as present.
func Rewrap[T Scalar](original Value[T], plain T) Value[T] {
	if equal(original.OrZero(), plain) {
		return original
	}
	return Of(plain)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		slotKey[T](): v.Val,
		"Valid":      v.Valid,
	})
}

// UnmarshalJSON accepts the SQL wrapper shape, the generic
// {"value": v, "valid": b} shape, JSON null and bare scalars.
func (v *Value[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	if len(b) == 0 || b[0] != '{' {
		if _, isTime := any(v.Val).(time.Time); isTime && string(b) == `""` {
			*v = Value[T]{}
			return nil
		}
		var val T
		if err := decodeSlot(b, &val); err != nil {
			return fmt.Errorf("nullable: decode scalar: %w", err)
		}
		*v = Of(val)
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("nullable: decode object: %w", err)
	}

	var out Value[T]
	slot := slotKey[T]()
	for k, msg := range raw {
		switch {
		case strings.EqualFold(k, "valid"):
			if err := json.Unmarshal(msg, &out.Valid); err != nil {
				return fmt.Errorf("nullable: decode valid flag: %w", err)
			}
		case strings.EqualFold(k, slot), strings.EqualFold(k, "value"):
			if err := decodeSlot(msg, &out.Val); err != nil {
				return fmt.Errorf("nullable: decode %s: %w", slot, err)
			}
		}
	}
	*v = out
	return nil
}

func decodeSlot[T Scalar](msg json.RawMessage, dst *T) error {
	s := string(bytes.TrimSpace(msg))
	if s == "null" {
		return nil
	}
	if _, isTime := any(*dst).(time.Time); isTime && s == `""` {
		return nil
	}
	return json.Unmarshal(msg, dst)
}

func slotKey[T Scalar]() string {
	var zero T
	switch any(zero).(type) {
	case string:
		return "String"
	case bool:
		return "Boolean"
	case int32:
		return "Int32"
	default:
		return "Time"
	}
}

func format[T Scalar](v T, timeLayout string) string {
	switch x := any(v).(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(timeLayout)
	}
	return ""
}

func equal[T Scalar](a, b T) bool {
	if ta, ok := any(a).(time.Time); ok {
		return ta.Equal(any(b).(time.Time))
	}
	return any(a) == any(b)
}
