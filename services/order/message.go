package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/pharmacare/services/orderapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

// composeMessage renders the order as the plain text that is forwarded to the shop.
func composeMessage(order orderapi.Order) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "Nouvelle commande %s\n", order.UID)
	fmt.Fprintf(&sb, "Client: %s\n", order.Customer.Name)
	fmt.Fprintf(&sb, "Téléphone: %s\n", order.Customer.Phone)
	fmt.Fprintf(&sb, "Email: %s\n", order.Customer.Email)
	sb.WriteString("\nProduits:\n")
	for _, l := range order.Lines {
		fmt.Fprintf(&sb, "- %d x %s (%s) = %s\n", l.Quantity, l.Name,
			formatPrice(l.UnitPrice, order.Currency), formatPrice(l.LineTotal, order.Currency))
	}
	fmt.Fprintf(&sb, "\nTotal: %s (%d articles)", formatPrice(order.Total, order.Currency), order.TotalItems)
	return sb.String()
}

func formatPrice(amount string, currency string) string {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount + " " + currency
	}
	return settings.FormatPrice(value, currency)
}

// whatsAppURL builds a wa.me deep link; spaces are encoded as %20 the way browsers expect.
func whatsAppURL(digits string, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, strings.ReplaceAll(url.QueryEscape(message), "+", "%20"))
}
