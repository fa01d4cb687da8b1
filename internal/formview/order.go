package formview

import (
	"strings"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/orders"
)

// OrderDraft only edits the status; orders are created by checkout.
type OrderDraft struct {
	Status string `form:"status" validate:"oneof=pending shipped delivered"`
}

var orderMessages = validation.Messages{"status": "Choose pending, shipped or delivered"}

var OrderSpec = Spec[OrderDraft]{
	Kind: entity.Order,
	Fields: func(Mode) []Field {
		opts := make([]Option, 0, len(orders.EditableStatuses))
		for _, s := range orders.EditableStatuses {
			opts = append(opts, Option{Value: s, Label: strings.ToUpper(s[:1]) + s[1:]})
		}
		return []Field{{Key: "status", Label: "Status", Input: InputSelect, Options: opts, Required: true}}
	},
	Validate: func(_ Mode, d *OrderDraft) Errors {
		return Errors(validation.Struct(d, orderMessages))
	},
}

func EditOrderDraft(o orders.Order) OrderDraft {
	return OrderDraft{Status: o.Status}
}
