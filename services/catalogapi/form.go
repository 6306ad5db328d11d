package catalogapi

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	formcodec "github.com/go-playground/form/v4"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
)

// ProductForm carries the fields an admin submits. Absent fields stay nil so a partial update
// only touches what was sent.
type ProductForm struct {
	Name        *string          `form:"name"`
	Description *string          `form:"description"`
	Price       *decimal.Decimal `form:"price"`
	Category    *string          `form:"category"`
	Image       *string          `form:"image"`
	InStock     *int             `form:"inStock"`
	Rating      *decimal.Decimal `form:"rating"`
	ReviewCount *int             `form:"reviewCount"`
}

func newDecoder() *formcodec.Decoder {
	decoder := formcodec.NewDecoder()
	decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return decimal.NewFromString(strings.TrimSpace(vals[0]))
	}, decimal.Decimal{})
	return decoder
}

func NewProductFormFromValues(values url.Values) (ProductForm, error) {
	form := ProductForm{}
	err := newDecoder().Decode(&form, values)
	if err != nil {
		return form, myerrors.NewInvalidInputError(fmt.Errorf("error decoding product form: %s", err))
	}

	return form, nil
}

// NewProduct builds a complete product; every descriptive field is required.
func (f ProductForm) NewProduct(uid string) (Product, error) {
	missing := []string{}
	for name, value := range map[string]*string{
		"name":        f.Name,
		"description": f.Description,
		"category":    f.Category,
		"image":       f.Image,
	} {
		if value == nil || strings.TrimSpace(*value) == "" {
			missing = append(missing, name)
		}
	}
	if f.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return Product{}, myerrors.NewInvalidInputError(fmt.Errorf("invalid product data: missing %s", strings.Join(missing, ", ")))
	}

	product := Product{
		UID:         uid,
		InStock:     DefaultInStock,
		Rating:      DefaultRating,
		ReviewCount: 0,
	}
	err := f.ApplyTo(&product)
	if err != nil {
		return Product{}, err
	}

	return product, nil
}

// ApplyTo copies the submitted fields onto an existing product.
func (f ProductForm) ApplyTo(product *Product) error {
	if f.Price != nil && f.Price.IsNegative() {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid product data: negative price"))
	}
	if f.InStock != nil && *f.InStock < 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid product data: negative stock"))
	}
	if f.ReviewCount != nil && *f.ReviewCount < 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid product data: negative review count"))
	}
	if f.Rating != nil && (f.Rating.IsNegative() || f.Rating.GreaterThan(decimal.NewFromInt(5))) {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid product data: rating must be between 0 and 5"))
	}

	if f.Name != nil {
		product.Name = strings.TrimSpace(*f.Name)
	}
	if f.Description != nil {
		product.Description = strings.TrimSpace(*f.Description)
	}
	if f.Price != nil {
		product.Price = f.Price.Round(2)
	}
	if f.Category != nil {
		product.Category = strings.TrimSpace(*f.Category)
	}
	if f.Image != nil {
		product.Image = *f.Image
	}
	if f.InStock != nil {
		product.InStock = *f.InStock
	}
	if f.Rating != nil {
		product.Rating = f.Rating.Round(1)
	}
	if f.ReviewCount != nil {
		product.ReviewCount = *f.ReviewCount
	}

	return nil
}
