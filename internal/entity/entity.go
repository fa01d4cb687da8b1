// Package entity defines the five record kinds managed by the console and the
// per-kind strategy table shared by list and form views.
package entity

import (
	"fmt"
	"strings"
)

type Kind string

const (
	Product   Kind = "product"
	Category  Kind = "category"
	Order     Kind = "order"
	Promotion Kind = "promotion"
	Customer  Kind = "customer"
)

// Record is implemented by every entity type. DisplayName is the projection
// searched by the list view; it may be empty.
type Record interface {
	RecordID() string
	DisplayName() string
}

type Strategy struct {
	Kind     Kind
	Singular string
	Plural   string
	// Fallback is shown (and searched) when a record has no display name.
	Fallback string
	// BasePath is the admin route serving this kind.
	BasePath string
}

var strategies = map[Kind]Strategy{
	Product:   {Kind: Product, Singular: "Product", Plural: "Products", Fallback: "Unnamed Product", BasePath: "/admin/products"},
	Category:  {Kind: Category, Singular: "Category", Plural: "Categories", Fallback: "Unnamed Category", BasePath: "/admin/categories"},
	Order:     {Kind: Order, Singular: "Order", Plural: "Orders", Fallback: "Unnamed Order", BasePath: "/admin/orders"},
	Promotion: {Kind: Promotion, Singular: "Promotion", Plural: "Promotions", Fallback: "Unnamed Promotion", BasePath: "/admin/promotions"},
	Customer:  {Kind: Customer, Singular: "Customer", Plural: "Customers", Fallback: "Unnamed Customer", BasePath: "/admin/customers"},
}

func Kinds() []Kind {
	return []Kind{Product, Category, Order, Promotion, Customer}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategies[k]; !ok {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

// StrategyFor panics on kinds not declared above.
func StrategyFor(k Kind) Strategy {
	s, ok := strategies[k]
	if !ok {
		panic(fmt.Sprintf("entity: no strategy for kind %q", k))
	}
	return s
}

// NameOf returns the record's display name or the kind fallback.
func (s Strategy) NameOf(r Record) string {
	if n := strings.TrimSpace(r.DisplayName()); n != "" {
		return n
	}
	return s.Fallback
}

// NotFound is the empty-table message, e.g. "No products found."
func (s Strategy) NotFound() string {
	return "No " + strings.ToLower(s.Plural) + " found."
}
