package order

import (
	"context"

	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/orderapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

type ProductReader interface {
	Get(c context.Context, uid string) (catalogapi.Product, bool, error)
}

type service struct {
	orderStore mystore.Store[orderapi.Order]
	products   ProductReader
	settings   settings.Reader
	senders    []Sender
	publisher  mypublisher.Publisher
	nower      mytime.Nower
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(orderStore mystore.Store[orderapi.Order], products ProductReader, settingsReader settings.Reader, senders []Sender,
	publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		orderStore: orderStore,
		products:   products,
		settings:   settingsReader,
		senders:    senders,
		publisher:  publisher,
		nower:      nower,
		uuider:     uuider,
		logger:     logger,
	}
}
