// Package formview is the create/edit modal shared by every entity page.
//
// A Session moves closed -> open (create defaults or a normalized record) ->
// validating on submit, then back to open with field errors or to closed
// after the save callback succeeds. Drafts are plain structs bound from the
// submitted form; nullable fields are flattened on open and re-wrapped by
// the per-kind Apply methods on save.
package formview

import (
	"context"
	"errors"
	"fmt"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
)

type InputKind string

const (
	InputText     InputKind = "text"
	InputNumber   InputKind = "number"
	InputSelect   InputKind = "select"
	InputTextarea InputKind = "textarea"
	InputDate     InputKind = "date"
	InputFile     InputKind = "file"
	InputCheckbox InputKind = "checkbox"
)

type Option struct {
	Value string
	Label string
}

// Field describes one input. Key is the form key and the key of any error.
type Field struct {
	Key      string
	Label    string
	Input    InputKind
	Options  []Option
	Required bool
	// Multiple allows several files.
	Multiple bool
}

type Mode string

const (
	Create Mode = "create"
	Edit   Mode = "edit"
)

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "new", string(Create):
		return Create, true
	case string(Edit):
		return Edit, true
	}
	return "", false
}

type State int

const (
	Closed State = iota
	Open
	Validating
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Validating:
		return "validating"
	default:
		return "closed"
	}
}

// Errors maps a field key to its message.
type Errors map[string]string

var (
	ErrInvalid = errors.New("form has invalid fields")
	ErrNotOpen = errors.New("form is not open")
)

// Spec is the per-kind form definition.
type Spec[D any] struct {
	Kind     entity.Kind
	Fields   func(Mode) []Field
	Validate func(Mode, *D) Errors
}

// Blurrer is implemented by drafts holding text buffers that are reconciled
// into their model only on blur or submit.
type Blurrer interface {
	Blur()
}

type Session[D any] struct {
	Spec   Spec[D]
	Mode   Mode
	ID     string
	State  State
	Draft  D
	Errors Errors
	// Current maps a file field to the image URL already stored for it.
	Current map[string]string
}

func New[D any](spec Spec[D]) *Session[D] {
	return &Session[D]{Spec: spec, State: Closed}
}

// OpenCreate opens the form with the kind's defaults.
func (s *Session[D]) OpenCreate(defaults D) {
	s.Mode = Create
	s.ID = ""
	s.Draft = defaults
	s.Errors = nil
	s.State = Open
}

// OpenEdit opens the form on a normalized copy of record id.
func (s *Session[D]) OpenEdit(id string, draft D) {
	s.Mode = Edit
	s.ID = id
	s.Draft = draft
	s.Errors = nil
	s.State = Open
}

// Submit validates draft and, when it is clean, hands it to save. On
// validation failure the form stays open with Errors set, save is not
// called and ErrInvalid is returned. A save error also leaves it open.
func (s *Session[D]) Submit(ctx context.Context, draft D, save func(context.Context, D) error) error {
	if s.State != Open {
		return ErrNotOpen
	}
	s.State = Validating
	if b, ok := any(&draft).(Blurrer); ok {
		b.Blur()
	}
	s.Draft = draft

	errs := s.Spec.Validate(s.Mode, &s.Draft)
	if len(errs) > 0 {
		s.Errors = errs
		s.State = Open
		return ErrInvalid
	}
	s.Errors = nil

	if err := save(ctx, s.Draft); err != nil {
		s.State = Open
		return fmt.Errorf("save %s: %w", s.Spec.Kind, err)
	}
	s.State = Closed
	return nil
}

func (s *Session[D]) Fields() []Field {
	return s.Spec.Fields(s.Mode)
}
