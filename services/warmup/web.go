package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

type ProductLister interface {
	List(c context.Context) ([]catalogapi.Product, error)
}

type webService struct {
	logger    mylog.Logger
	settings  settings.Reader
	products  ProductLister
	publisher mypublisher.Publisher
	uuider    myuuid.UUIDer
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(settingsReader settings.Reader, products ProductLister, publisher mypublisher.Publisher, uuider myuuid.UUIDer) *webService {
	return &webService{
		logger:    mylog.New("warmup"),
		settings:  settingsReader,
		products:  products,
		publisher: publisher,
		uuider:    uuider,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.publisher.CreateTopic(c, TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")

	return nil
}

// warmupPage touches the stores a first storefront request needs.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		_, err := s.settings.GetSettings(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		products, err := s.products.List(c)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(fmt.Errorf("error fetching products: %s", err)))
			return
		}

		err = s.publisher.Publish(c, TopicName, WarmupKicked{
			UID:      s.uuider.Create(),
			Products: len(products),
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, myerrors.NewInternalError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
