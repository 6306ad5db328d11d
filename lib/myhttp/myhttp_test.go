package myhttp

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
	"github.com/MarcGrol/pharmacare/lib/myerrors"
	"github.com/MarcGrol/pharmacare/lib/mylog"
)

func TestRecoverer(t *testing.T) {
	// setup
	router := mux.NewRouter()
	router.Use(Recoverer(mylog.New("myhttp-test")))
	router.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("no session in context")
	})

	// when
	request := httptest.NewRequest(http.MethodGet, "/boom", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, http.StatusInternalServerError, response.Code)
	assert.Contains(t, response.Body.String(), "no session in context")
}

func TestWriteError(t *testing.T) {
	// setup
	sut := NewWriter(mylog.New("myhttp-test"))
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	response := httptest.NewRecorder()

	// when
	sut.WriteError(mycontext.ContextFromHTTPRequest(request), response, 3, myerrors.NewNotFoundError(fmt.Errorf("product p9 not found")))

	// then
	assert.Equal(t, http.StatusNotFound, response.Code)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
	assert.Contains(t, response.Body.String(), `"ErrorCode": 3`)
	assert.Contains(t, response.Body.String(), "product p9 not found")
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Quantity int `json:"quantity"`
	}

	t.Run("valid body", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"quantity":3}`)))
		dest := body{}
		assert.NoError(t, DecodeJSON(request, &dest))
		assert.Equal(t, 3, dest.Quantity)
	})

	t.Run("empty body leaves dest untouched", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		dest := body{Quantity: 1}
		assert.NoError(t, DecodeJSON(request, &dest))
		assert.Equal(t, 1, dest.Quantity)
	})

	t.Run("malformed body is invalid input", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{"quantity":`)))
		err := DecodeJSON(request, &body{})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})
}
