package order

import "github.com/MarcGrol/pharmacare/services/orderapi"

const (
	MissingFieldsMessage = "Veuillez remplir tous les champs obligatoires"
	EmptyCartMessage     = "Votre panier est vide"

	genericInquiry = "Bonjour, j'aimerais obtenir plus d'informations sur vos produits pharmaceutiques. Merci !"
)

type SubmitRequest struct {
	Customer orderapi.Customer `json:"customer"`
}

type SubmitResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	OrderUID string           `json:"orderUid"`
	Channel  orderapi.Channel `json:"channel"`
}

type WhatsAppLink struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// successMessages per delivery channel, shown to the customer.
var successMessages = map[orderapi.Channel]string{
	orderapi.ChannelWhatsApp: "Votre commande a été envoyée avec succès via WhatsApp",
	orderapi.ChannelEmail:    "Votre commande a été envoyée avec succès par email",
	orderapi.ChannelLog:      "Votre commande a été enregistrée, nous vous contacterons rapidement",
}
