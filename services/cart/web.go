package cart

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/notification"
)

type ProductReader interface {
	Get(c context.Context, uid string) (catalogapi.Product, bool, error)
}

type AddRequest struct {
	ProductUID string `json:"productId"`
	Quantity   *int   `json:"quantity,omitempty"`
}

// UpdateRequest requires a quantity; zero or less removes the line.
type UpdateRequest struct {
	Quantity *int `json:"quantity"`
}

type LineView struct {
	Product   catalogapi.Product `json:"product"`
	Quantity  int                `json:"quantity"`
	LineTotal string             `json:"lineTotal"`
}

type View struct {
	Items      []LineView                  `json:"items"`
	TotalItems int                         `json:"totalItems"`
	TotalPrice string                      `json:"totalPrice"`
	Toasts     []notification.Notification `json:"toasts"`
}

type webService struct {
	logger   mylog.Logger
	provider Provider
	products ProductReader
}

func NewWebService(provider Provider, products ProductReader) *webService {
	return &webService{
		logger:   mylog.New("cart"),
		provider: provider,
		products: products,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart", s.getCartPage()).Methods("GET")
	router.HandleFunc("/api/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/api/cart/items", s.addToCartPage()).Methods("POST")
	router.HandleFunc("/api/cart/items/{productUid}", s.updateQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productUid}", s.removeFromCartPage()).Methods("DELETE")

	return nil
}

func (s *webService) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.view(c))
	}
}

func (s *webService) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.provider.MustGet(c).ClearCart(c)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.view(c))
	}
}

func (s *webService) addToCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := AddRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if quantity < 1 {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("quantity must be at least 1")))
			return
		}

		product, err := s.getProduct(c, req.ProductUID)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		s.provider.MustGet(c).AddToCart(c, product, quantity)

		errorWriter.Write(c, w, http.StatusOK, s.view(c))
	}
}

func (s *webService) updateQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		req := UpdateRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		if req.Quantity == nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(fmt.Errorf("quantity is required")))
			return
		}

		s.provider.MustGet(c).UpdateQuantity(c, mux.Vars(r)["productUid"], *req.Quantity)

		errorWriter.Write(c, w, http.StatusOK, s.view(c))
	}
}

func (s *webService) removeFromCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.provider.MustGet(c).RemoveFromCart(c, mux.Vars(r)["productUid"])

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.view(c))
	}
}

func (s *webService) getProduct(c context.Context, uid string) (catalogapi.Product, error) {
	if uid == "" {
		return catalogapi.Product{}, myerrors.NewInvalidInputError(fmt.Errorf("productId is required"))
	}
	product, found, err := s.products.Get(c, uid)
	if err != nil {
		return catalogapi.Product{}, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", uid, err))
	}
	if !found {
		return catalogapi.Product{}, myerrors.NewNotFoundError(fmt.Errorf("Product not found"))
	}
	return product, nil
}

// view renders the cart together with the toasts pending for the session.
func (s *webService) view(c context.Context) View {
	snapshot := s.provider.MustGet(c).Snapshot()

	items := []LineView{}
	for _, l := range snapshot.Lines() {
		items = append(items, LineView{
			Product:   l.Product,
			Quantity:  l.Quantity,
			LineTotal: l.Total().StringFixed(2),
		})
	}

	return View{
		Items:      items,
		TotalItems: snapshot.TotalItems(),
		TotalPrice: snapshot.TotalPrice().StringFixed(2),
		Toasts:     s.provider.DrainToasts(c),
	}
}
