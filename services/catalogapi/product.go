package catalogapi

import (
	"encoding/json"
	"fmt"

	"cloud.google.com/go/datastore"
	"github.com/shopspring/decimal"
)

const (
	CategoryAll = "all"

	DefaultInStock = 1
)

var DefaultRating = decimal.RequireFromString("5.0")

type Product struct {
	UID         string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string
	InStock     int
	Rating      decimal.Decimal
	ReviewCount int
}

// productJSON is the wire format; amounts travel as fixed decimal strings.
type productJSON struct {
	UID         string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	InStock     int    `json:"inStock"`
	Rating      string `json:"rating"`
	ReviewCount int    `json:"reviewCount"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(productJSON{
		UID:         p.UID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Image:       p.Image,
		InStock:     p.InStock,
		Rating:      p.Rating.StringFixed(1),
		ReviewCount: p.ReviewCount,
	})
}

func (p *Product) UnmarshalJSON(data []byte) error {
	pj := productJSON{}
	err := json.Unmarshal(data, &pj)
	if err != nil {
		return err
	}
	price, err := parseDecimal("price", pj.Price)
	if err != nil {
		return err
	}
	rating, err := parseDecimal("rating", pj.Rating)
	if err != nil {
		return err
	}
	*p = Product{
		UID:         pj.UID,
		Name:        pj.Name,
		Description: pj.Description,
		Price:       price,
		Category:    pj.Category,
		Image:       pj.Image,
		InStock:     pj.InStock,
		Rating:      rating,
		ReviewCount: pj.ReviewCount,
	}
	return nil
}

func parseDecimal(field string, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %s", field, value, err)
	}
	return d, nil
}

// storedProduct is what ends up in datastore, which cannot hold a decimal.
type storedProduct struct {
	UID         string
	Name        string
	Description string `datastore:",noindex"`
	Price       string
	Category    string
	Image       string `datastore:",noindex"`
	InStock     int
	Rating      string
	ReviewCount int
}

func (p *Product) Load(props []datastore.Property) error {
	sp := storedProduct{}
	err := datastore.LoadStruct(&sp, props)
	if err != nil {
		return err
	}
	price, err := parseDecimal("price", sp.Price)
	if err != nil {
		return err
	}
	rating, err := parseDecimal("rating", sp.Rating)
	if err != nil {
		return err
	}
	*p = Product{
		UID:         sp.UID,
		Name:        sp.Name,
		Description: sp.Description,
		Price:       price,
		Category:    sp.Category,
		Image:       sp.Image,
		InStock:     sp.InStock,
		Rating:      rating,
		ReviewCount: sp.ReviewCount,
	}
	return nil
}

func (p *Product) Save() ([]datastore.Property, error) {
	return datastore.SaveStruct(&storedProduct{
		UID:         p.UID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Image:       p.Image,
		InStock:     p.InStock,
		Rating:      p.Rating.StringFixed(1),
		ReviewCount: p.ReviewCount,
	})
}
