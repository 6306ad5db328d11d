package order

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/cart"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/notification"
	"github.com/MarcGrol/pharmacare/services/order/orderevents"
	"github.com/MarcGrol/pharmacare/services/orderapi"
	"github.com/MarcGrol/pharmacare/services/settings"
)

var (
	now          = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	session      = mysession.Session{UID: "session-1", ProfileUID: "profile-1"}
	panadol      = catalogapi.Product{UID: "1", Name: "Panadol Extra", Price: decimal.RequireFromString("45.00")}
	shopSettings = settings.Settings{
		WhatsappNumber:  "+212 612 345 678",
		Currency:        "DH",
		WhatsappMessage: "Bonjour, je souhaite commander [PRODUCT] pour [PRICE] DH",
	}
	validBody = `{"customer":{"name":"Amina","phone":"0600000000","email":"amina@example.ma"}}`
)

type fixture struct {
	router    *mux.Router
	cart      *cart.Store
	orders    *mystore.InMemoryStore[orderapi.Order]
	whatsApp  *MockSender
	email     *MockSender
	publisher *mypublisher.MockPublisher
}

func TestSubmitOrder(t *testing.T) {
	c := context.TODO()

	t.Run("Order forwarded via whatsapp", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// given
		f.cart.AddToCart(c, panadol, 2)
		f.whatsApp.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d Delivery) error {
			assert.Equal(t, "212612345678", d.Recipient)
			assert.Contains(t, d.Text, "- 2 x Panadol Extra (45 DH) = 90 DH")
			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, orderevents.OrderSubmitted{
			OrderUID:     "order-1",
			SessionUID:   "session-1",
			CustomerName: "Amina",
			TotalItems:   2,
			Total:        "90.00",
			Currency:     "DH",
			Channel:      "whatsapp",
		}).Return(nil)

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", validBody)

		// then
		assert.Equal(t, 200, response.Code)
		resp := SubmitResponse{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, SubmitResponse{
			Success:  true,
			Message:  "Votre commande a été envoyée avec succès via WhatsApp",
			OrderUID: "order-1",
			Channel:  orderapi.ChannelWhatsApp,
		}, resp)

		stored, found, err := f.orders.Get(c, "order-1")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, orderapi.StatusForwarded, stored.Status)
		assert.Equal(t, now, stored.CreatedAt)
		assert.Equal(t, []orderapi.Line{{ProductUID: "1", Name: "Panadol Extra", UnitPrice: "45.00", Quantity: 2, LineTotal: "90.00"}}, stored.Lines)
		assert.Equal(t, 0, f.cart.GetTotalItems())
	})

	t.Run("Falls back to email and then log", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// given
		f.cart.AddToCart(c, panadol, 1)
		f.whatsApp.EXPECT().Send(gomock.Any(), gomock.Any()).Return(fmt.Errorf("token expired"))
		f.email.EXPECT().Send(gomock.Any(), gomock.Any()).Return(fmt.Errorf("connection refused"))
		f.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", validBody)

		// then
		assert.Equal(t, 200, response.Code)
		resp := SubmitResponse{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, orderapi.ChannelLog, resp.Channel)

		stored, _, _ := f.orders.Get(c, "order-1")
		assert.Equal(t, orderapi.StatusSubmitted, stored.Status)
		assert.Equal(t, 0, f.cart.GetTotalItems())
	})

	t.Run("Line added during delivery stays in cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)
		vitamin := catalogapi.Product{UID: "2", Name: "Vitamine C 1000mg", Price: decimal.RequireFromString("89.50")}

		// given
		f.cart.AddToCart(c, panadol, 2)
		f.whatsApp.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, d Delivery) error {
			f.cart.AddToCart(c, vitamin, 1)
			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), orderevents.TopicName, gomock.Any()).Return(nil)

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", validBody)

		// then
		assert.Equal(t, 200, response.Code)
		stored, _, _ := f.orders.Get(c, "order-1")
		assert.Equal(t, 2, stored.TotalItems)
		assert.Equal(t, []cart.Line{{Product: vitamin, Quantity: 1}}, f.cart.Items())
	})

	t.Run("Empty cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", validBody)

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), EmptyCartMessage)
	})

	t.Run("Missing customer field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// given
		f.cart.AddToCart(c, panadol, 1)

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", `{"customer":{"name":"Amina","phone":"  ","email":"amina@example.ma"}}`)

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), MissingFieldsMessage)
		assert.Equal(t, 1, f.cart.GetTotalItems())
	})

	t.Run("Publish failure keeps cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// given
		f.cart.AddToCart(c, panadol, 1)
		f.whatsApp.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("outbox down"))

		// when
		response := doRequest(f.router, http.MethodPost, "/api/orders/submit", validBody)

		// then
		assert.Equal(t, 500, response.Code)
		assert.Equal(t, 1, f.cart.GetTotalItems())
	})
}

func TestWhatsAppLink(t *testing.T) {

	t.Run("Link for product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// when
		response := doRequest(f.router, http.MethodGet, "/api/orders/whatsapp-link?productUid=1", "")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{
			"url":"https://wa.me/212612345678?text=Bonjour%2C%20je%20souhaite%20commander%20Panadol%20Extra%20pour%2045%20DH",
			"message":"Bonjour, je souhaite commander Panadol Extra pour 45 DH"
		}`, response.Body.String())
	})

	t.Run("Link without product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// when
		response := doRequest(f.router, http.MethodGet, "/api/orders/whatsapp-link", "")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "plus d'informations")
	})

	t.Run("Link for unknown product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// when
		response := doRequest(f.router, http.MethodGet, "/api/orders/whatsapp-link?productUid=42", "")

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func TestListOrders(t *testing.T) {
	c := context.TODO()

	t.Run("Newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl, myhttp.NoGuard)

		// given
		_ = f.orders.Put(c, "a", orderapi.Order{UID: "a", CreatedAt: now.Add(-time.Hour)})
		_ = f.orders.Put(c, "b", orderapi.Order{UID: "b", CreatedAt: now})

		// when
		response := doRequest(f.router, http.MethodGet, "/api/orders", "")

		// then
		assert.Equal(t, 200, response.Code)
		orders := []orderapi.Order{}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &orders))
		assert.Len(t, orders, 2)
		assert.Equal(t, "b", orders[0].UID)
		assert.Equal(t, "a", orders[1].UID)
	})

	t.Run("Requires admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		rejectAll := func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}
		}
		f := setup(t, ctrl, rejectAll)

		// when
		response := doRequest(f.router, http.MethodGet, "/api/orders", "")

		// then
		assert.Equal(t, 403, response.Code)
	})
}

func doRequest(router *mux.Router, method, url, body string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	request.AddCookie(&http.Cookie{Name: mysession.SessionCookieName, Value: session.UID})
	request.AddCookie(&http.Cookie{Name: mysession.ProfileCookieName, Value: session.ProfileUID})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller, adminGuard myhttp.Guard) fixture {
	c := context.TODO()

	cartStore := cart.NewStore(notification.NewInbox())
	resolver := cart.NewMockResolver(ctrl)
	resolver.EXPECT().CartStore(gomock.Any(), session).Return(cartStore).AnyTimes()

	settingsReader := settings.NewMockReader(ctrl)
	settingsReader.EXPECT().GetSettings(gomock.Any()).Return(shopSettings, nil).AnyTimes()

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(now).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("order-1").AnyTimes()

	whatsApp := NewMockSender(ctrl)
	whatsApp.EXPECT().Channel().Return(orderapi.ChannelWhatsApp).AnyTimes()
	email := NewMockSender(ctrl)
	email.EXPECT().Channel().Return(orderapi.ChannelEmail).AnyTimes()

	publisher := mypublisher.NewMockPublisher(ctrl)
	publisher.EXPECT().CreateTopic(gomock.Any(), orderevents.TopicName).Return(nil)

	orders, _, _ := mystore.NewInMemoryStore[orderapi.Order](c)
	products, _, _ := mystore.NewInMemoryStore[catalogapi.Product](c)
	_ = products.Put(c, panadol.UID, panadol)

	router := mux.NewRouter()
	router.Use(mysession.Middleware(uuider))

	sut := NewWebService(orders, products, settingsReader, cart.NewProvider(resolver),
		[]Sender{whatsApp, email, NewLogSender()}, publisher, nower, uuider, adminGuard)
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return fixture{
		router:    router,
		cart:      cartStore,
		orders:    orders,
		whatsApp:  whatsApp,
		email:     email,
		publisher: publisher,
	}
}
