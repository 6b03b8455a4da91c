package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"neuroflash/pkg/token"
)

var secret = []byte("middleware-secret")

func echoSession(w http.ResponseWriter, r *http.Request) {
	id, _ := SessionIDFromContext(r.Context())
	_, _ = w.Write([]byte(id))
}

func TestAuthSources(t *testing.T) {
	tok, err := token.GenerateAccessToken("s-1", secret, time.Hour)
	require.NoError(t, err)
	h := Auth(secret)(http.HandlerFunc(echoSession))

	cases := map[string]func(r *http.Request){
		"bearer header": func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) },
		"query":         func(r *http.Request) { r.URL.RawQuery = "token=" + tok },
		"cookie":        func(r *http.Request) { r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tok}) },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			setup(r)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "s-1", w.Body.String())
		})
	}
}

func TestAuthRejects(t *testing.T) {
	other, err := token.GenerateAccessToken("s-1", []byte("other"), time.Hour)
	require.NoError(t, err)
	h := Auth(secret)(http.HandlerFunc(echoSession))

	cases := map[string]string{
		"missing":      "",
		"wrong scheme": "Basic abc",
		"wrong key":    "Bearer " + other,
		"garbage":      "Bearer nope",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLoggerRecordsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logger(zap.New(core)))
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}
