package admin

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/lib/myvault"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/orderapi"
)

type ctxSessionKey struct{}

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(adminStore mystore.Store[Admin], sessionStore mystore.Store[Session], productStore mystore.Store[catalogapi.Product], orderStore mystore.Store[orderapi.Order],
	vault myvault.VaultReadWriter, nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("admin")
	return &webService{
		logger:  logger,
		service: newService(adminStore, sessionStore, productStore, orderStore, vault, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/admin/login", s.loginPage()).Methods("POST")
	router.HandleFunc("/api/admin/logout", s.logoutPage()).Methods("POST")
	router.HandleFunc("/api/admin/session", s.RequireAdmin(s.sessionPage())).Methods("GET")
	router.HandleFunc("/api/admin/analytics", s.RequireAdmin(s.analyticsPage())).Methods("GET")
	router.HandleFunc("/api/admin/whatsapp-token", s.RequireAdmin(s.whatsAppTokenPage())).Methods("PUT")

	return nil
}

// Seed makes sure the default admin exists.
func (s *webService) Seed(c context.Context) error {
	return s.service.seedDefaultAdmin(c)
}

// RequireAdmin only lets requests with a live admin session through.
func (s *webService) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		session, err := s.service.authenticate(c, tokenFromRequest(r))
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxSessionKey{}, session)))
	}
}

func sessionFromRequest(r *http.Request) Session {
	session, _ := r.Context().Value(ctxSessionKey{}).(Session)
	return session
}

// tokenFromRequest prefers a bearer token over the cookie.
func tokenFromRequest(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if token, found := strings.CutPrefix(authorization, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := LoginRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		token, admin, err := s.service.login(c, req)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(sessionDuration.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})

		errorWriter.Write(c, w, http.StatusOK, LoginResponse{
			Message: "Login successful",
			Admin: AdminInfo{
				UID:      admin.UID,
				Username: admin.Username,
			},
			Token: token,
		})
	}
}

func (s *webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.logout(c, tokenFromRequest(r))
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Logout successful",
		})
	}
}

func (s *webService) sessionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		session := sessionFromRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, AdminInfo{
			UID:      session.AdminUID,
			Username: session.Username,
		})
	}
}

func (s *webService) analyticsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		analytics, err := s.service.analytics(c)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, analytics)
	}
}

func (s *webService) whatsAppTokenPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := WhatsAppTokenRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		err = s.service.storeWhatsAppToken(c, sessionFromRequest(r), req)
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "WhatsApp token stored",
		})
	}
}
