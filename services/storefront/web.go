package storefront

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/services/notification"
	"github.com/MarcGrol/pharmacare/services/storefront/storefrontevents"
)

type SessionView struct {
	mysession.Session
	CartItems      int    `json:"cartItems"`
	CartTotal      string `json:"cartTotal"`
	FavoritesCount int    `json:"favoritesCount"`
}

type ToastsView struct {
	Toasts []notification.Notification `json:"toasts"`
}

type webService struct {
	logger    mylog.Logger
	registry  *Registry
	publisher mypublisher.Publisher
}

func NewWebService(registry *Registry, publisher mypublisher.Publisher) *webService {
	return &webService{
		logger:    mylog.New("storefront"),
		registry:  registry,
		publisher: publisher,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.publisher.CreateTopic(c, storefrontevents.TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/api/session", s.getSessionPage()).Methods("GET")
	router.HandleFunc("/api/session", s.endSessionPage()).Methods("DELETE")
	router.HandleFunc("/api/toasts", s.drainToastsPage()).Methods("GET")

	return nil
}

func (s *webService) getSessionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		session := mysession.MustFromContext(c)

		cartSnapshot := s.registry.CartStore(c, session).Snapshot()
		favoritesCount := s.registry.FavoritesStore(c, session).GetFavoritesCount()

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, SessionView{
			Session:        session,
			CartItems:      cartSnapshot.TotalItems(),
			CartTotal:      cartSnapshot.TotalPrice().StringFixed(2),
			FavoritesCount: favoritesCount,
		})
	}
}

func (s *webService) endSessionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		session := mysession.MustFromContext(c)

		s.registry.End(c, session.UID)
		mysession.Expire(w)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Session ended",
		})
	}
}

func (s *webService) drainToastsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		session := mysession.MustFromContext(c)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, ToastsView{
			Toasts: s.registry.DrainToasts(session),
		})
	}
}
