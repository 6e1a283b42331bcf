package translator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/translate", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Backend", req.Text)
		assert.Equal(t, "en", req.SourceLanguage)
		assert.Equal(t, "ru", req.TargetLanguage)

		_ = json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Бэкенд"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, logging.NewNopLogger())
	got, err := c.Translate(context.Background(), "Backend", "en", "ru")
	require.NoError(t, err)
	assert.Equal(t, "Бэкенд", got)
}

func TestHTTPClient_TranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, logging.NewNopLogger())
	_, err := c.Translate(context.Background(), "Backend", "en", "ru")
	assert.ErrorIs(t, err, common.ErrTranslationUnavailable)
}

func TestHTTPClient_TranslateConnectionError(t *testing.T) {
	// Closed server: the dial fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, time.Second, logging.NewNopLogger())
	_, err := c.Translate(context.Background(), "Backend", "en", "ru")
	assert.ErrorIs(t, err, common.ErrTranslationUnavailable)
}
