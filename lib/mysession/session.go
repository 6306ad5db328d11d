// Package mysession identifies the browser behind a request.
//
// A session lives as long as the browser keeps the session cookie; a profile outlives sessions and
// scopes what the browser would keep in its local storage.
package mysession

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/myuuid"
)

const (
	SessionCookieName = "pharmacare_session"
	ProfileCookieName = "pharmacare_profile"

	profileMaxAge = 365 * 24 * time.Hour
)

type Session struct {
	UID        string `json:"sessionUid"`
	ProfileUID string `json:"profileUid"`
}

type ctxSessionKey struct{}

func WithSession(c context.Context, session Session) context.Context {
	return context.WithValue(c, ctxSessionKey{}, session)
}

func FromContext(c context.Context) (Session, bool) {
	session, ok := c.Value(ctxSessionKey{}).(Session)
	return session, ok
}

// MustFromContext panics when the request did not pass the Middleware.
func MustFromContext(c context.Context) Session {
	session, ok := FromContext(c)
	if !ok {
		panic("mysession: no session in context")
	}
	return session
}

// Middleware makes sure every request carries a session and a profile, issuing cookies for new ones.
func Middleware(uuider myuuid.UUIDer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := Session{
				UID:        cookieValue(r, SessionCookieName),
				ProfileUID: cookieValue(r, ProfileCookieName),
			}

			if session.UID == "" {
				session.UID = uuider.Create()
				http.SetCookie(w, newCookie(SessionCookieName, session.UID, 0))
			}
			if session.ProfileUID == "" {
				session.ProfileUID = uuider.Create()
				http.SetCookie(w, newCookie(ProfileCookieName, session.ProfileUID, profileMaxAge))
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// Expire tells the browser to forget its session; the profile stays.
func Expire(w http.ResponseWriter) {
	cookie := newCookie(SessionCookieName, "", 0)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func newCookie(name string, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
