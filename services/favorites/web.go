package favorites

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

type View struct {
	Favorites []string                    `json:"favorites"`
	Products  []catalogapi.Product        `json:"products"`
	Count     int                         `json:"count"`
	Toasts    []notification.Notification `json:"toasts"`
}

type MembershipView struct {
	ProductUID string                      `json:"productId"`
	Favorite   bool                        `json:"isFavorite"`
	Count      int                         `json:"count"`
	Toasts     []notification.Notification `json:"toasts"`
}

type webService struct {
	logger   mylog.Logger
	provider Provider
	products ProductReader
}

func NewWebService(provider Provider, products ProductReader) *webService {
	return &webService{
		logger:   mylog.New("favorites"),
		provider: provider,
		products: products,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/favorites", s.listPage()).Methods("GET")
	router.HandleFunc("/api/favorites/{productUid}", s.membershipPage()).Methods("GET")
	router.HandleFunc("/api/favorites/{productUid}", s.addPage()).Methods("PUT")
	router.HandleFunc("/api/favorites/{productUid}", s.removePage()).Methods("DELETE")
	router.HandleFunc("/api/favorites/{productUid}/toggle", s.togglePage()).Methods("POST")

	return nil
}

// listPage resolves the favorites into products; products removed from the catalog are skipped.
func (s *webService) listPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		store := s.provider.MustGet(c)
		uids := store.Favorites()

		products := []catalogapi.Product{}
		for _, uid := range uids {
			product, found, err := s.products.Get(c, uid)
			if err != nil {
				errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", uid, err)))
				return
			}
			if found {
				products = append(products, product)
			}
		}

		errorWriter.Write(c, w, http.StatusOK, View{
			Favorites: uids,
			Products:  products,
			Count:     len(uids),
			Toasts:    s.provider.DrainToasts(c),
		})
	}
}

func (s *webService) membershipPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.membership(c, mux.Vars(r)["productUid"]))
	}
}

func (s *webService) addPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		productUID := mux.Vars(r)["productUid"]

		s.provider.MustGet(c).AddToFavorites(c, productUID)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.membership(c, productUID))
	}
}

func (s *webService) removePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		productUID := mux.Vars(r)["productUid"]

		s.provider.MustGet(c).RemoveFromFavorites(c, productUID)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, s.membership(c, productUID))
	}
}

func (s *webService) togglePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		productUID := mux.Vars(r)["productUid"]

		displayName := ""
		product, found, err := s.products.Get(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(fmt.Errorf("error fetching product %s: %s", productUID, err)))
			return
		}
		if found {
			displayName = product.Name
		}

		s.provider.MustGet(c).ToggleFavorite(c, productUID, displayName)

		errorWriter.Write(c, w, http.StatusOK, s.membership(c, productUID))
	}
}

func (s *webService) membership(c context.Context, productUID string) MembershipView {
	store := s.provider.MustGet(c)
	return MembershipView{
		ProductUID: productUID,
		Favorite:   store.IsFavorite(productUID),
		Count:      store.GetFavoritesCount(),
		Toasts:     s.provider.DrainToasts(c),
	}
}
