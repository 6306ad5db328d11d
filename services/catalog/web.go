package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/myhttp"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/myuuid"
	"github.com/MarcGrol/pharmacare/services/catalog/catalogevents"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
)

const maxFormSize = maxImageSize + 1024*1024

type webService struct {
	logger     mylog.Logger
	service    *service
	adminGuard myhttp.Guard
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(store mystore.Store[catalogapi.Product], uploadDir string, uuider myuuid.UUIDer, publisher mypublisher.Publisher, adminGuard myhttp.Guard) (*webService, error) {
	logger := mylog.New("catalog")
	uploader, err := newImageUploader(uploadDir, uuider)
	if err != nil {
		return nil, err
	}
	return &webService{
		logger:     logger,
		service:    newService(store, uploader, uuider, publisher, logger),
		adminGuard: adminGuard,
	}, nil
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, catalogevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", catalogevents.TopicName, err)
	}

	router.HandleFunc("/api/products", s.listProductsPage()).Methods("GET")
	router.HandleFunc("/api/products/{uid}", s.getProductPage()).Methods("GET")
	router.HandleFunc("/api/products", s.adminGuard(s.createProductPage())).Methods("POST")
	router.HandleFunc("/api/products/{uid}", s.adminGuard(s.updateProductPage())).Methods("PUT")
	router.HandleFunc("/api/products/{uid}", s.adminGuard(s.deleteProductPage())).Methods("DELETE")

	router.PathPrefix(UploadURLPrefix).Handler(s.service.uploader.fileServer()).Methods("GET")

	return nil
}

// Seed fills an empty catalog.
func (s *webService) Seed(c context.Context, seedFile string) error {
	_, err := s.service.seed(c, seedFile)
	return err
}

func (s *webService) listProductsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		category := r.URL.Query().Get("category")
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		products, err := s.service.listProducts(c, category, search)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) getProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["uid"])
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) createProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, uploaded, err := s.parseProductForm(w, r)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		product, err := s.service.createProduct(c, form)
		if err != nil {
			s.discardUpload(c, uploaded)
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusCreated, product)
	}
}

func (s *webService) updateProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		form, uploaded, err := s.parseProductForm(w, r)
		if err != nil {
			errorWriter.WriteError(c, w, 5, err)
			return
		}

		product, err := s.service.updateProduct(c, mux.Vars(r)["uid"], form)
		if err != nil {
			s.discardUpload(c, uploaded)
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, product)
	}
}

func (s *webService) deleteProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := s.service.deleteProduct(c, mux.Vars(r)["uid"])
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Product deleted successfully",
		})
	}
}

// parseProductForm accepts url-encoded and multipart forms. An uploaded image replaces the image field;
// its url path is returned so a rejected form can discard it.
func (s *webService) parseProductForm(w http.ResponseWriter, r *http.Request) (catalogapi.ProductForm, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

	var values url.Values
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		err := r.ParseMultipartForm(maxFormSize)
		if err != nil {
			return catalogapi.ProductForm{}, "", formError(err)
		}
		values = r.MultipartForm.Value
	} else {
		err := r.ParseForm()
		if err != nil {
			return catalogapi.ProductForm{}, "", formError(err)
		}
		values = r.PostForm
	}

	form, err := catalogapi.NewProductFormFromValues(values)
	if err != nil {
		return catalogapi.ProductForm{}, "", err
	}

	if r.MultipartForm == nil {
		return form, "", nil
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return form, "", nil
	}
	if err != nil {
		return catalogapi.ProductForm{}, "", myerrors.NewInvalidInputError(fmt.Errorf("error reading image: %s", err))
	}
	defer file.Close()

	imagePath, err := s.service.uploader.save(file, header)
	if err != nil {
		return catalogapi.ProductForm{}, "", err
	}
	form.Image = &imagePath

	return form, imagePath, nil
}

// discardUpload removes the image a rejected form brought along.
func (s *webService) discardUpload(c context.Context, uploaded string) {
	if uploaded == "" {
		return
	}
	err := s.service.uploader.remove(uploaded)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error removing rejected upload %s: %s", uploaded, err)
	}
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return myerrors.NewRequestTooLargeError(fmt.Errorf("request exceeds %d bytes", tooLarge.Limit))
	}
	return myerrors.NewInvalidInputError(fmt.Errorf("error parsing form: %s", err))
}
