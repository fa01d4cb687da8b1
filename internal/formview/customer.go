package formview

import (
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/entity"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/http/validation"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/customers"
)

type CustomerDraft struct {
	FirstName string `form:"FirstName" validate:"required"`
	LastName  string `form:"LastName" validate:"required"`
	Email     string `form:"Email" validate:"required,email"`
	Phone     string `form:"Phone" validate:"required"`
	Password  string `form:"Password"`
}

var customerMessages = validation.Messages{
	"FirstName":      "First name is required",
	"LastName":       "Last name is required",
	"Email.required": "Email is required",
	"Email.email":    "Invalid email address",
	"Phone":          "Phone is required",
}

var CustomerSpec = Spec[CustomerDraft]{
	Kind: entity.Customer,
	Fields: func(m Mode) []Field {
		return []Field{
			{Key: "FirstName", Label: "First Name", Input: InputText, Required: true},
			{Key: "LastName", Label: "Last Name", Input: InputText, Required: true},
			{Key: "Email", Label: "Email", Input: InputText, Required: true},
			{Key: "Phone", Label: "Phone", Input: InputText, Required: true},
			{Key: "Password", Label: "Password", Input: InputText, Required: m == Create},
		}
	},
	Validate: func(m Mode, d *CustomerDraft) Errors {
		errs := Errors(validation.Struct(d, customerMessages))
		if m == Create && d.Password == "" {
			errs["Password"] = "Password is required"
		}
		return errs
	},
}

// EditCustomerDraft never carries the stored password back into the form.
func EditCustomerDraft(c customers.Customer) CustomerDraft {
	return CustomerDraft{
		FirstName: c.FirstName.OrZero(),
		LastName:  c.LastName.OrZero(),
		Email:     c.Email.OrZero(),
		Phone:     c.Phone.OrZero(),
	}
}

func (d CustomerDraft) Input() customers.Input {
	return customers.Input{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		Password:  d.Password,
	}
}
