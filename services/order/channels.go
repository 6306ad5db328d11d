package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/MarcGrol/pharmacare/lib/myconfig"
	"github.com/MarcGrol/pharmacare/lib/myhttpclient"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/myvault"
	"github.com/MarcGrol/pharmacare/services/orderapi"
)

const whatsappProvider = "whatsapp"

var errNotConfigured = errors.New("channel not configured")

// Delivery is one order on its way to the shop.
type Delivery struct {
	Order     orderapi.Order
	Text      string
	Recipient string
}

//go:generate mockgen -source=channels.go -package order -destination sender_mock.go Sender
type Sender interface {
	Channel() orderapi.Channel
	Send(c context.Context, delivery Delivery) error
}

// NewSenders returns the channels in order of preference; the log channel always comes last.
func NewSenders(cfg myconfig.Config, httpClient myhttpclient.HTTPSender, vault myvault.VaultReader) []Sender {
	senders := []Sender{}
	if cfg.WhatsAppConfigured() {
		senders = append(senders, NewWhatsAppSender(cfg.WhatsApp, httpClient, vault))
	}
	if cfg.SMTPConfigured() {
		senders = append(senders, NewEmailSender(cfg.SMTP, smtp.SendMail))
	}
	return append(senders, NewLogSender())
}

type whatsAppSender struct {
	cfg        myconfig.WhatsApp
	httpClient myhttpclient.HTTPSender
	vault      myvault.VaultReader
}

func NewWhatsAppSender(cfg myconfig.WhatsApp, httpClient myhttpclient.HTTPSender, vault myvault.VaultReader) Sender {
	return &whatsAppSender{
		cfg:        cfg,
		httpClient: httpClient,
		vault:      vault,
	}
}

func (s *whatsAppSender) Channel() orderapi.Channel {
	return orderapi.ChannelWhatsApp
}

type whatsAppText struct {
	Body string `json:"body"`
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

// accessToken prefers the token an admin stored over the configured one.
func (s *whatsAppSender) accessToken(c context.Context) (string, error) {
	token, found, err := s.vault.Get(c, myvault.TokenUID(whatsappProvider))
	if err != nil {
		return "", fmt.Errorf("error fetching whatsapp token: %s", err)
	}
	if found && token.AccessToken != "" {
		return token.AccessToken, nil
	}
	if s.cfg.Token != "" {
		return s.cfg.Token, nil
	}
	return "", errNotConfigured
}

func (s *whatsAppSender) Send(c context.Context, delivery Delivery) error {
	accessToken, err := s.accessToken(c)
	if err != nil {
		return err
	}
	if delivery.Recipient == "" {
		return fmt.Errorf("no whatsapp recipient")
	}

	body, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               delivery.Recipient,
		Type:             "text",
		Text:             whatsAppText{Body: delivery.Text},
	})
	if err != nil {
		return fmt.Errorf("error marshalling whatsapp message: %s", err)
	}

	url := fmt.Sprintf("%s/%s/messages", strings.TrimRight(s.cfg.APIURL, "/"), s.cfg.PhoneNumberID)
	status, resp, err := s.httpClient.Send(c, http.MethodPost, url, accessToken, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("whatsapp api responded %d: %s", status, string(resp))
	}
	return nil
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailSender struct {
	cfg      myconfig.SMTP
	sendMail sendMailFunc
}

func NewEmailSender(cfg myconfig.SMTP, sendMail sendMailFunc) Sender {
	return &emailSender{
		cfg:      cfg,
		sendMail: sendMail,
	}
}

func (s *emailSender) Channel() orderapi.Channel {
	return orderapi.ChannelEmail
}

func (s *emailSender) Send(c context.Context, delivery Delivery) error {
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}

	msg := strings.Join([]string{
		"From: " + from,
		"To: " + s.cfg.To,
		"Subject: Nouvelle commande " + delivery.Order.UID,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		delivery.Text,
	}, "\r\n")

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	err := s.sendMail(addr, auth, from, []string{s.cfg.To}, []byte(msg))
	if err != nil {
		return fmt.Errorf("error sending mail via %s: %s", addr, err)
	}
	return nil
}

type logSender struct {
	logger mylog.Logger
}

func NewLogSender() Sender {
	return &logSender{
		logger: mylog.New("order"),
	}
}

func (s *logSender) Channel() orderapi.Channel {
	return orderapi.ChannelLog
}

func (s *logSender) Send(c context.Context, delivery Delivery) error {
	s.logger.Log(c, delivery.Order.UID, mylog.SeverityInfo, "Order for %s:\n%s", delivery.Recipient, delivery.Text)
	return nil
}
