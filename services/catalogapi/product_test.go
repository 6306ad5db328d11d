package catalogapi

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
)

func TestProductJSON(t *testing.T) {
	product := Product{
		UID:         "1",
		Name:        "Panadol Extra",
		Description: "Antidouleur",
		Price:       decimal.RequireFromString("45"),
		Category:    "medicaments",
		Image:       "/uploads/panadol.png",
		InStock:     1,
		Rating:      decimal.RequireFromString("4.8"),
		ReviewCount: 24,
	}

	data, err := json.Marshal(product)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"Panadol Extra","description":"Antidouleur","price":"45.00","category":"medicaments","image":"/uploads/panadol.png","inStock":1,"rating":"4.8","reviewCount":24}`, string(data))

	parsed := Product{}
	err = json.Unmarshal(data, &parsed)
	assert.NoError(t, err)
	assert.True(t, product.Price.Equal(parsed.Price))
	assert.True(t, product.Rating.Equal(parsed.Rating))
	assert.Equal(t, product.Name, parsed.Name)

	err = json.Unmarshal([]byte(`{"price":"abc"}`), &parsed)
	assert.Error(t, err)
}

func TestProductForm(t *testing.T) {
	t.Run("Create with defaults", func(t *testing.T) {
		// given
		form, err := NewProductFormFromValues(url.Values{
			"name":        {"Tisanes Détox Bio"},
			"description": {"Mélange de plantes"},
			"price":       {"65.5"},
			"category":    {"bio"},
			"image":       {"https://images/tisane.jpg"},
		})
		assert.NoError(t, err)

		// when
		product, err := form.NewProduct("42")

		// then
		assert.NoError(t, err)
		assert.Equal(t, "42", product.UID)
		assert.Equal(t, "65.50", product.Price.StringFixed(2))
		assert.Equal(t, 1, product.InStock)
		assert.Equal(t, "5.0", product.Rating.StringFixed(1))
		assert.Equal(t, 0, product.ReviewCount)
	})

	t.Run("Create with missing fields", func(t *testing.T) {
		// given
		form, err := NewProductFormFromValues(url.Values{
			"name": {"Tisanes Détox Bio"},
		})
		assert.NoError(t, err)

		// when
		_, err = form.NewProduct("42")

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
		assert.Contains(t, err.Error(), "missing category, description, image, price")
	})

	t.Run("Invalid price", func(t *testing.T) {
		// when
		_, err := NewProductFormFromValues(url.Values{
			"price": {"cheap"},
		})

		// then
		assert.Error(t, err)
		assert.Equal(t, 400, myerrors.GetHTTPStatus(err))
	})

	t.Run("Partial update", func(t *testing.T) {
		// given
		product := Product{UID: "1", Name: "Panadol", Price: decimal.RequireFromString("45.00"), Category: "medicaments"}
		form, err := NewProductFormFromValues(url.Values{
			"price":   {"39.99"},
			"inStock": {"0"},
		})
		assert.NoError(t, err)

		// when
		err = form.ApplyTo(&product)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Panadol", product.Name)
		assert.Equal(t, "39.99", product.Price.StringFixed(2))
		assert.Equal(t, 0, product.InStock)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		// given
		form, err := NewProductFormFromValues(url.Values{
			"rating": {"7"},
		})
		assert.NoError(t, err)

		// when
		err = form.ApplyTo(&Product{})

		// then
		assert.Error(t, err)
	})
}
