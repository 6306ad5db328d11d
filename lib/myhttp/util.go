package myhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MarcGrol/pharmacare/lib/myerrors"
)

// DecodeJSON parses the request body into dest. An empty body leaves dest untouched.
func DecodeJSON(r *http.Request, dest interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return myerrors.NewInvalidInputError(fmt.Errorf("error parsing json request-body: %s", err))
	}
	return nil
}
