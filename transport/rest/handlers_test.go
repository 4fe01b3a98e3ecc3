package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingHandler(t *testing.T) {
	router := NewRouter(NewHandlers())

	t.Run("Ping_Success", func(t *testing.T) {
		// When: pinging
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Then: pong is returned
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "pong", recorder.Body.String())
	})

	t.Run("Ping_WrongMethod", func(t *testing.T) {
		// When: posting to ping
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/ping", nil))

		// Then: the method is not allowed
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	})
}
