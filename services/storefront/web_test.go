package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
)

func TestStorefrontService(t *testing.T) {
	c := context.TODO()

	t.Run("Session summary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, registry, publisher := setupWeb(t, ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		// given
		registry.CartStore(c, session1).AddToCart(c, panadol, 2)
		registry.FavoritesStore(c, session1).AddToFavorites(c, "1")

		// when
		response := doRequest(router, http.MethodGet, "/api/session")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"sessionUid":"session-1","profileUid":"profile-1","cartItems":2,"cartTotal":"90.00","favoritesCount":1}`, response.Body.String())
	})

	t.Run("Drain toasts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, registry, publisher := setupWeb(t, ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		// given
		registry.CartStore(c, session1).ClearCart(c)

		// when
		first := doRequest(router, http.MethodGet, "/api/toasts")
		second := doRequest(router, http.MethodGet, "/api/toasts")

		// then
		view := ToastsView{}
		assert.NoError(t, json.Unmarshal(first.Body.Bytes(), &view))
		assert.Len(t, view.Toasts, 1)
		assert.Equal(t, "Panier vidé", view.Toasts[0].Title)
		assert.JSONEq(t, `{"toasts":[]}`, second.Body.String())
	})

	t.Run("End session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, registry, publisher := setupWeb(t, ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		// given
		registry.CartStore(c, session1).AddToCart(c, panadol, 1)

		// when
		response := doRequest(router, http.MethodDelete, "/api/session")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, 0, registry.Count())
		cookies := response.Result().Cookies()
		assert.Len(t, cookies, 1)
		assert.Equal(t, mysession.SessionCookieName, cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func doRequest(router *mux.Router, method, url string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(method, url, nil)
	request.AddCookie(&http.Cookie{Name: mysession.SessionCookieName, Value: session1.UID})
	request.AddCookie(&http.Cookie{Name: mysession.ProfileCookieName, Value: session1.ProfileUID})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setupWeb(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *Registry, *mypublisher.MockPublisher) {
	registry, publisher, nower := setup(t, ctrl)
	nower.EXPECT().Now().Return(t0).AnyTimes()
	publisher.EXPECT().CreateTopic(gomock.Any(), "storefront").Return(nil)

	router := mux.NewRouter()
	router.Use(mysession.Middleware(myuuid.NewMockUUIDer(ctrl)))

	err := NewWebService(registry, publisher).RegisterEndpoints(context.TODO(), router)
	assert.NoError(t, err)

	return router, registry, publisher
}
