package myhttp

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
)

// Guard wraps a handler with an access check.
type Guard func(next http.HandlerFunc) http.HandlerFunc

// NoGuard lets every request pass.
func NoGuard(next http.HandlerFunc) http.HandlerFunc {
	return next
}

// Recoverer turns a panic inside a handler into a 500 response.
func Recoverer(logger mylog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				c := mycontext.ContextFromHTTPRequest(r)
				logger.Log(c, "", mylog.SeverityError, "Panic while handling %s %s: %v", r.Method, r.URL.Path, recovered)
				NewWriter(logger).WriteError(c, w, 0, myerrors.NewInternalError(fmt.Errorf("%v", recovered)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
