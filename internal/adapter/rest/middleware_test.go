package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenAuth_MissingHeader(t *testing.T) {
	handler := TokenAuth("secret")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	handler := TokenAuth("secret")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenAuth_BearerToken(t *testing.T) {
	handler := TokenAuth("secret")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTokenAuth_BareToken(t *testing.T) {
	handler := TokenAuth("secret")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	req.Header.Set("Authorization", "secret")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(httptest.NewRecorder().Body)

	handler := RequestLogger(logger)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/bills", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
