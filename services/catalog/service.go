package catalog

import (
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
)

type service struct {
	productStore mystore.Store[catalogapi.Product]
	uploader     *imageUploader
	uuider       myuuid.UUIDer
	publisher    mypublisher.Publisher
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(store mystore.Store[catalogapi.Product], uploader *imageUploader, uuider myuuid.UUIDer, publisher mypublisher.Publisher, logger mylog.Logger) *service {
	return &service{
		productStore: store,
		uploader:     uploader,
		uuider:       uuider,
		publisher:    publisher,
		logger:       logger,
	}
}
