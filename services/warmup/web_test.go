package warmup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

func TestWarmup(t *testing.T) {

	t.Run("Warmup touches stores and reports", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, settingsReader, publisher := setup(t, ctrl)

		// given
		settingsReader.EXPECT().GetSettings(gomock.Any()).Return(settings.Settings{}, nil)
		publisher.EXPECT().Publish(gomock.Any(), TopicName, WarmupKicked{UID: "warmup-1", Products: 1}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Successfully processed warmup request")
	})

	t.Run("Settings unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		router, settingsReader, _ := setup(t, ctrl)

		// given
		settingsReader.EXPECT().GetSettings(gomock.Any()).Return(settings.Settings{}, fmt.Errorf("datastore down"))

		// when
		request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 500, response.Code)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *settings.MockReader, *mypublisher.MockPublisher) {
	c := context.TODO()

	settingsReader := settings.NewMockReader(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), TopicName).Return(nil)
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("warmup-1").AnyTimes()

	products, _, _ := mystore.NewInMemoryStore[catalogapi.Product](c)
	_ = products.Put(c, "1", catalogapi.Product{UID: "1", Name: "Panadol Extra"})

	router := mux.NewRouter()
	err := NewService(settingsReader, products, publisher, uuider).RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, settingsReader, publisher
}
