package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mystore"
)

//go:generate mockgen -source=service.go -package settings -destination reader_mock.go Reader
type Reader interface {
	GetSettings(c context.Context) (Settings, error)
}

type service struct {
	store  mystore.Store[Settings]
	logger mylog.Logger
}

func newService(store mystore.Store[Settings], logger mylog.Logger) *service {
	return &service{
		store:  store,
		logger: logger,
	}
}

// getSettings falls back to the defaults as long as nobody saved settings.
func (s *service) getSettings(c context.Context) (Settings, error) {
	settings, found, err := s.store.Get(c, currentUID)
	if err != nil {
		return Settings{}, myerrors.NewInternalError(fmt.Errorf("error fetching settings: %s", err))
	}
	if !found {
		return defaultSettings, nil
	}
	return settings, nil
}

func (s *service) updateSettings(c context.Context, update Settings) (Settings, error) {
	update.WhatsappNumber = strings.TrimSpace(update.WhatsappNumber)
	update.Currency = strings.TrimSpace(update.Currency)
	if update.WhatsappNumber == "" || strings.TrimSpace(update.WhatsappMessage) == "" {
		return Settings{}, myerrors.NewInvalidInputError(fmt.Errorf("Invalid settings data: whatsappNumber and whatsappMessage are required"))
	}
	if update.WhatsappDigits() == "" {
		return Settings{}, myerrors.NewInvalidInputError(fmt.Errorf("Invalid settings data: whatsappNumber %q holds no digits", update.WhatsappNumber))
	}
	if update.Currency == "" {
		update.Currency = DefaultCurrency
	}

	err := s.store.Put(c, currentUID, update)
	if err != nil {
		return Settings{}, myerrors.NewInternalError(fmt.Errorf("error storing settings: %s", err))
	}

	s.logger.Log(c, currentUID, mylog.SeverityInfo, "Updated settings: whatsapp %s, currency %s", update.WhatsappNumber, update.Currency)

	return update, nil
}
