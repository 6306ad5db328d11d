package orderapi

import "time"

type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelLog      Channel = "log"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusForwarded Status = "forwarded"
)

type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Line is a snapshot of a cart line; amounts are fixed decimal strings so they survive any store.
type Line struct {
	ProductUID string `json:"productId"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
}

type Order struct {
	UID        string    `json:"id"`
	SessionUID string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	Customer   Customer  `json:"customer"`
	Lines      []Line    `json:"items"`
	TotalItems int       `json:"totalItems"`
	Total      string    `json:"total"`
	Currency   string    `json:"currency"`
	Channel    Channel   `json:"channel"`
	Status     Status    `json:"status"`
}
