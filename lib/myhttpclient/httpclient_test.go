package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	t.Run("Send with bearer token", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer my_token", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, `{"a":1}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		// when
		status, resp, err := New().Send(context.TODO(), http.MethodPost, server.URL+"/messages", "my_token", []byte(`{"a":1}`))

		// then
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, status)
		assert.Equal(t, `{"ok":true}`, string(resp))
	})

	t.Run("Send without token", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
		}))
		defer server.Close()

		// when
		status, _, err := New().Send(context.TODO(), http.MethodGet, server.URL, "", nil)

		// then
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("Send to unreachable host", func(t *testing.T) {
		// when
		_, _, err := New().Send(context.TODO(), http.MethodGet, "http://127.0.0.1:1", "", nil)

		// then
		assert.Error(t, err)
	})
}
