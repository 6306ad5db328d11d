package settings

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	currentUID = "current"

	DefaultCurrency = "DH"

	productPlaceholder = "[PRODUCT]"
	pricePlaceholder   = "[PRICE]"
)

var defaultSettings = Settings{
	WhatsappNumber:  "+212612345678",
	Currency:        DefaultCurrency,
	WhatsappMessage: "Bonjour, je souhaite commander " + productPlaceholder + " pour " + pricePlaceholder + " DH",
}

type Settings struct {
	WhatsappNumber  string `json:"whatsappNumber"`
	Currency        string `json:"currency"`
	WhatsappMessage string `json:"whatsappMessage" datastore:",noindex"`
}

// ProductMessage fills the message template for a single product.
func (s Settings) ProductMessage(productName string, price decimal.Decimal) string {
	return strings.NewReplacer(
		productPlaceholder, productName,
		pricePlaceholder, FormatAmount(price),
	).Replace(s.WhatsappMessage)
}

// WhatsappDigits is the number as wa.me and the cloud api expect it: digits only.
func (s Settings) WhatsappDigits() string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s.WhatsappNumber)
}

// FormatAmount renders an amount the French way: "1 234,5" and whole amounts without decimals.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	text := rounded.StringFixed(2)
	if rounded.Equal(rounded.Truncate(0)) {
		text = rounded.StringFixed(0)
	} else {
		text = strings.TrimRight(text, "0")
	}

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	whole, fraction, hasFraction := strings.Cut(text, ".")

	grouped := []string{}
	for len(whole) > 3 {
		grouped = append([]string{whole[len(whole)-3:]}, grouped...)
		whole = whole[:len(whole)-3]
	}
	grouped = append([]string{whole}, grouped...)

	result := sign + strings.Join(grouped, " ")
	if hasFraction {
		result += "," + fraction
	}
	return result
}

// FormatPrice is FormatAmount followed by the currency.
func FormatPrice(amount decimal.Decimal, currency string) string {
	return FormatAmount(amount) + " " + currency
}
