package admin

import (
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/lib/myvault"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/orderapi"
)

type service struct {
	adminStore   mystore.Store[Admin]
	sessionStore mystore.Store[Session]
	productStore mystore.Store[catalogapi.Product]
	orderStore   mystore.Store[orderapi.Order]
	vault        myvault.VaultReadWriter
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(adminStore mystore.Store[Admin], sessionStore mystore.Store[Session], productStore mystore.Store[catalogapi.Product], orderStore mystore.Store[orderapi.Order],
	vault myvault.VaultReadWriter, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		adminStore:   adminStore,
		sessionStore: sessionStore,
		productStore: productStore,
		orderStore:   orderStore,
		vault:        vault,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}
