package settings

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mystore"
)

type webService struct {
	logger     mylog.Logger
	service    *service
	adminGuard myhttp.Guard
}

func NewWebService(store mystore.Store[Settings], adminGuard myhttp.Guard) *webService {
	logger := mylog.New("settings")
	return &webService{
		logger:     logger,
		service:    newService(store, logger),
		adminGuard: adminGuard,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/settings", s.getSettingsPage()).Methods("GET")
	router.HandleFunc("/api/settings", s.adminGuard(s.updateSettingsPage())).Methods("PUT")

	return nil
}

func (s *webService) GetSettings(c context.Context) (Settings, error) {
	return s.service.getSettings(c)
}

func (s *webService) getSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		settings, err := s.service.getSettings(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, settings)
	}
}

func (s *webService) updateSettingsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		update := Settings{}
		err := myhttp.DecodeJSON(r, &update)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		settings, err := s.service.updateSettings(c, update)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, settings)
	}
}
