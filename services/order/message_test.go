package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/pharmacare/services/orderapi"
)

func TestComposeMessage(t *testing.T) {
	// given
	order := orderapi.Order{
		UID:      "order-1",
		Customer: orderapi.Customer{Name: "Amina", Phone: "0600000000", Email: "amina@example.ma"},
		Lines: []orderapi.Line{
			{ProductUID: "1", Name: "Panadol Extra", UnitPrice: "45.00", Quantity: 2, LineTotal: "90.00"},
			{ProductUID: "2", Name: "Vitamine C 1000mg", UnitPrice: "89.50", Quantity: 1, LineTotal: "89.50"},
		},
		TotalItems: 3,
		Total:      "179.50",
		Currency:   "DH",
	}

	// when
	text := composeMessage(order)

	// then
	assert.Equal(t, "Nouvelle commande order-1\n"+
		"Client: Amina\n"+
		"Téléphone: 0600000000\n"+
		"Email: amina@example.ma\n"+
		"\n"+
		"Produits:\n"+
		"- 2 x Panadol Extra (45 DH) = 90 DH\n"+
		"- 1 x Vitamine C 1000mg (89,5 DH) = 89,5 DH\n"+
		"\n"+
		"Total: 179,5 DH (3 articles)", text)
}

func TestWhatsAppURL(t *testing.T) {
	assert.Equal(t,
		"https://wa.me/212612345678?text=Bonjour%2C%20je%20souhaite%20commander%20Panadol%20Extra%20pour%2045%20DH",
		whatsAppURL("212612345678", "Bonjour, je souhaite commander Panadol Extra pour 45 DH"))
	assert.Equal(t,
		"https://wa.me/212612345678?text=Cr%C3%A8me%20%26%20soin",
		whatsAppURL("212612345678", "Crème & soin"))
}
