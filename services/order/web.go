package order

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/cart"
	"github.com/MarcGrol/pharmacare/services/order/orderevents"
	"github.com/MarcGrol/pharmacare/services/orderapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

type webService struct {
	logger       mylog.Logger
	service      *service
	cartProvider cart.Provider
	publisher    mypublisher.Publisher
	adminGuard   myhttp.Guard
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(orderStore mystore.Store[orderapi.Order], products ProductReader, settingsReader settings.Reader, cartProvider cart.Provider,
	senders []Sender, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, adminGuard myhttp.Guard) *webService {
	logger := mylog.New("order")
	return &webService{
		logger:       logger,
		service:      newService(orderStore, products, settingsReader, senders, publisher, nower, uuider, logger),
		cartProvider: cartProvider,
		publisher:    publisher,
		adminGuard:   adminGuard,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/api/orders/submit", s.submitPage()).Methods("POST")
	router.HandleFunc("/api/orders/whatsapp-link", s.whatsAppLinkPage()).Methods("GET")
	router.HandleFunc("/api/orders", s.adminGuard(s.listPage())).Methods("GET")

	return nil
}

func (s *webService) submitPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := SubmitRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		resp, err := s.service.submitOrder(c, mysession.MustFromContext(c), s.cartProvider.MustGet(c), req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) whatsAppLinkPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		link, err := s.service.whatsAppLink(c, r.URL.Query().Get("productUid"))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, link)
	}
}

func (s *webService) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		orders, err := s.service.listOrders(c)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, orders)
	}
}
