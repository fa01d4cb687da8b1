package formview

import (
	"bytes"
	"context"
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/categories"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/products"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/modules/promotions"
	"github.com/DiegoGarciaCo/Ecom-Admin/internal/nullable"
)

var png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func validProduct() ProductDraft {
	return ProductDraft{
		Name:         "Boot",
		BasePrice:    "10.00",
		CurrentPrice: "9.5",
		Description:  "Leather",
		Weight:       "1kg",
		StockInput:   "3",
	}
}

func neverSave(t *testing.T) func(context.Context, ProductDraft) error {
	return func(context.Context, ProductDraft) error {
		t.Fatal("save must not be called")
		return nil
	}
}

func TestProductCreateRequiresImages(t *testing.T) {
	s := New(ProductSpec)
	s.OpenCreate(NewProductDraft())

	err := s.Submit(context.Background(), validProduct(), neverSave(t))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, Open, s.State)
	assert.Equal(t, "At least one image is required", s.Errors["Images"])
}

func TestProductCreateRejectsNonImage(t *testing.T) {
	s := New(ProductSpec)
	s.OpenCreate(NewProductDraft())

	d := validProduct()
	d.Images = []Upload{{Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hi")}}
	err := s.Submit(context.Background(), d, neverSave(t))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "All files must be images", s.Errors["Images"])
}

func TestProductCreateScalarMessages(t *testing.T) {
	s := New(ProductSpec)
	s.OpenCreate(NewProductDraft())

	err := s.Submit(context.Background(), ProductDraft{BasePrice: "1.999", StockInput: "-4"}, neverSave(t))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "Name is required", s.Errors["Name"])
	assert.Equal(t, "Invalid price format", s.Errors["BasePrice"])
	assert.Equal(t, "Invalid price format", s.Errors["CurrentPrice"])
	assert.Equal(t, "Description is required", s.Errors["Description"])
	assert.Equal(t, "Weight is required", s.Errors["Weight"])
	assert.Equal(t, "Stock cannot be negative", s.Errors["Stock"])
}

func TestProductCreateSaves(t *testing.T) {
	s := New(ProductSpec)
	s.OpenCreate(NewProductDraft())

	d := validProduct()
	d.StockInput = "12.7"
	d.Images = []Upload{{Filename: "a.png", ContentType: "image/png", Data: png}}

	var saved products.CreateInput
	err := s.Submit(context.Background(), d, func(_ context.Context, d ProductDraft) error {
		saved = d.CreateInput()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, Closed, s.State)
	assert.Equal(t, int32(12), saved.Stock)
	require.Len(t, saved.Images, 1)
	assert.Equal(t, "a.png", saved.Images[0].Filename)
}

func TestSaveErrorKeepsFormOpen(t *testing.T) {
	s := New(OrderSpec)
	s.OpenEdit("o-1", OrderDraft{Status: "pending"})

	boom := errors.New("upstream down")
	err := s.Submit(context.Background(), OrderDraft{Status: "shipped"}, func(context.Context, OrderDraft) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Open, s.State)
	assert.Empty(t, s.Errors)
}

func TestSubmitRequiresOpen(t *testing.T) {
	s := New(OrderSpec)
	err := s.Submit(context.Background(), OrderDraft{Status: "shipped"}, func(context.Context, OrderDraft) error { return nil })
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestOrderStatusMustBeEditable(t *testing.T) {
	s := New(OrderSpec)
	s.OpenEdit("o-1", OrderDraft{Status: "pending"})
	err := s.Submit(context.Background(), OrderDraft{Status: "cancelled"}, func(context.Context, OrderDraft) error { return nil })
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, s.Errors, "status")
}

func TestProductEditRequiresURLUnlessReplaced(t *testing.T) {
	s := New(ProductSpec)
	orig := products.Product{ID: "p-1", Name: "Boot"}
	s.OpenEdit(orig.ID, EditProductDraft(orig))

	d := validProduct()
	d.ImageUrl = "not a url"
	require.ErrorIs(t, s.Submit(context.Background(), d, neverSave(t)), ErrInvalid)
	assert.Equal(t, "Invalid URL format", s.Errors["ImageUrl"])

	d.ImageUrl = ""
	require.ErrorIs(t, s.Submit(context.Background(), d, neverSave(t)), ErrInvalid)
	assert.Equal(t, "Image URL is required", s.Errors["ImageUrl"])

	d.Replacement = &Upload{Filename: "n.png", ContentType: "image/png", Data: png}
	require.NoError(t, s.Submit(context.Background(), d, func(context.Context, ProductDraft) error { return nil }))
}

func TestProductApplyKeepsUntouchedValidity(t *testing.T) {
	orig := products.Product{
		ID:          "p-1",
		Description: nullable.String{Val: "stale", Valid: false},
		Weight:      nullable.Of("2kg"),
		Stock:       nullable.Int32{},
		ImageUrl:    nullable.Of("https://cdn.example.com/a.png"),
	}
	d := EditProductDraft(orig)
	assert.Equal(t, "", d.Description)
	assert.Equal(t, "0", d.StockInput)

	untouched := d.Apply(orig)
	assert.False(t, untouched.Description.Valid)
	assert.False(t, untouched.Stock.Valid)
	assert.True(t, untouched.Weight.Valid)

	d.Description = "new"
	d.Stock = 4
	edited := d.Apply(orig)
	assert.Equal(t, nullable.Of("new"), edited.Description)
	assert.Equal(t, nullable.Of(int32(4)), edited.Stock)

	in := ProductUpdateInput(edited)
	assert.Equal(t, "https://cdn.example.com/a.png", in.ImageURL)
	assert.Equal(t, int32(4), in.Stock)
}

func TestCategoryImageRules(t *testing.T) {
	spec := CategorySpec(nil)
	valid := CategoryDraft{Name: "Kids", Slug: "Kids Boots", Description: "Small"}

	create := New(spec)
	create.OpenCreate(CategoryDraft{})
	require.ErrorIs(t, create.Submit(context.Background(), valid, func(context.Context, CategoryDraft) error { return nil }), ErrInvalid)
	assert.Equal(t, "Image is required", create.Errors["ImageFile"])

	edit := New(spec)
	edit.OpenEdit("c-1", valid)
	var saved CategoryDraft
	require.NoError(t, edit.Submit(context.Background(), valid, func(_ context.Context, d CategoryDraft) error {
		saved = d
		return nil
	}))
	assert.Equal(t, "kids-boots", saved.Slug)

	bad := valid
	bad.ImageFile = &Upload{Filename: "x.pdf", ContentType: "application/pdf", Size: 3, Data: []byte("pdf")}
	edit.OpenEdit("c-1", valid)
	require.ErrorIs(t, edit.Submit(context.Background(), bad, func(context.Context, CategoryDraft) error { return nil }), ErrInvalid)
	assert.Equal(t, "File must be an image", edit.Errors["ImageFile"])
}

func TestCategoryInputKeepsAbsentParent(t *testing.T) {
	orig := categories.Category{ID: "c-1", Name: "Kids"}
	d := EditCategoryDraft(orig)
	in := CategoryInput(d.Apply(orig), nil)
	assert.False(t, in.ParentID.Valid)
	assert.Nil(t, in.Image)

	d.ParentID = "c-0"
	in = CategoryInput(d.Apply(orig), &Upload{Filename: "k.png", ContentType: "image/png", Data: png})
	assert.Equal(t, nullable.Of("c-0"), in.ParentID)
	require.NotNil(t, in.Image)
	assert.Equal(t, "k.png", in.Image.Filename)
}

func TestPromotionRules(t *testing.T) {
	spec := PromotionSpec(promotions.Fixed)
	s := New(spec)
	s.OpenCreate(NewPromotionDraft(promotions.Fixed))

	d := PromotionDraft{Type: "fixed", Name: "FLASH10", Description: "Boots", DiscountAmount: "ten",
		StartDate: "2025-03-07", EndDate: "2025-03-06", IsActive: "true"}
	require.ErrorIs(t, s.Submit(context.Background(), d, func(context.Context, PromotionDraft) error { return nil }), ErrInvalid)
	assert.Equal(t, "Invalid price format", s.Errors["discountAmount"])
	assert.Equal(t, "End date must not be before the start date", s.Errors["endDate"])

	d.DiscountAmount = "10.00"
	d.EndDate = "2025-03-08"
	var in promotions.Input
	require.NoError(t, s.Submit(context.Background(), d, func(_ context.Context, d PromotionDraft) error {
		in = d.Input()
		return nil
	}))
	require.NotNil(t, in.DiscountAmount)
	assert.Equal(t, "10.00", *in.DiscountAmount)
	assert.Nil(t, in.DiscountPercentage)
	assert.Nil(t, in.ProductID)
	assert.True(t, in.IsActive)
}

func TestPromotionRequiresDiscount(t *testing.T) {
	s := New(PromotionSpec(promotions.Percentage))
	s.OpenCreate(NewPromotionDraft(promotions.Percentage))
	d := PromotionDraft{Type: "percentage", Name: "X", Description: "Y", StartDate: "2025-01-01", EndDate: "2025-01-02"}
	require.ErrorIs(t, s.Submit(context.Background(), d, func(context.Context, PromotionDraft) error { return nil }), ErrInvalid)
	assert.Equal(t, "Discount is required", s.Errors["discountPercentage"])
}

func TestCustomerPasswordOnlyOnCreate(t *testing.T) {
	d := CustomerDraft{FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Phone: "555"}
	ok := func(context.Context, CustomerDraft) error { return nil }

	create := New(CustomerSpec)
	create.OpenCreate(CustomerDraft{})
	require.ErrorIs(t, create.Submit(context.Background(), d, ok), ErrInvalid)
	assert.Equal(t, "Password is required", create.Errors["Password"])

	edit := New(CustomerSpec)
	edit.OpenEdit("u-1", d)
	require.NoError(t, edit.Submit(context.Background(), d, ok))

	d.Email = "nope"
	edit.OpenEdit("u-1", d)
	require.ErrorIs(t, edit.Submit(context.Background(), d, ok), ErrInvalid)
	assert.Equal(t, "Invalid email address", edit.Errors["Email"])
}

func TestStockBuffer(t *testing.T) {
	b := NewStockBuffer(5)
	b.Type("1")
	b.Type("12")
	assert.Equal(t, int32(5), b.Model)
	b.Blur()
	assert.Equal(t, int32(12), b.Model)

	b.Type("")
	assert.Equal(t, int32(12), b.Model)
	b.Blur()
	assert.Equal(t, int32(0), b.Model)
	assert.Equal(t, "0", b.Raw)

	b.Type("abc")
	b.Blur()
	assert.Equal(t, int32(0), b.Model)
}

func TestParseStockReadsLeadingNumber(t *testing.T) {
	cases := map[string]int32{
		"12abc":       12,
		" 7 pcs":      7,
		"3.9kg":       3,
		"-2x":         -2,
		".5":          0,
		"1e3":         1000,
		"1e":          1,
		"abc12":       0,
		"":            0,
		"99999999999": math.MaxInt32,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseStock(raw), raw)
	}
}

func TestViewShowsErrorsAndPreviews(t *testing.T) {
	s := New(ProductSpec)
	s.OpenCreate(NewProductDraft())
	d := validProduct()
	d.Name = ""
	d.Images = []Upload{{Filename: "a.png", ContentType: "image/png", Data: png}}
	require.ErrorIs(t, s.Submit(context.Background(), d, neverSave(t)), ErrInvalid)

	v := s.View("/admin/products", "/admin/products")
	assert.Equal(t, "Add Product", v.Title)
	assert.True(t, v.Multipart)

	byKey := map[string]int{}
	for i, f := range v.Fields {
		byKey[f.Key] = i
	}
	assert.Equal(t, "Name is required", v.Fields[byKey["Name"]].Error)
	assert.Equal(t, "10.00", v.Fields[byKey["BasePrice"]].Value)
	assert.Equal(t, "3", v.Fields[byKey["Stock"]].Value)
	require.Len(t, v.Fields[byKey["Images"]].Previews, 1)
	assert.Contains(t, v.Fields[byKey["Images"]].Previews[0], "data:image/png;base64,")
}

func TestLoadUploadsSniffsType(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="Images"; filename="a.png"`)
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(png)
	require.NoError(t, w.WriteField("Name", "Boot"))
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	var d ProductDraft
	require.NoError(t, LoadUploads(req.MultipartForm, &d))
	require.Len(t, d.Images, 1)
	assert.Equal(t, "image/png", d.Images[0].ContentType)
	assert.True(t, d.Images[0].IsImage())
	assert.Nil(t, d.Replacement)
}
