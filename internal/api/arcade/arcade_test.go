package arcade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"neuroflash/internal/api/middleware"
	"neuroflash/internal/orchestrator"
	"neuroflash/internal/repository"
	"neuroflash/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrSessionNotFound, http.StatusNotFound},
		{service.ErrSessionClosed, http.StatusGone},
		{fmt.Errorf("%w: start from PLAYING", orchestrator.ErrInvalidPhase), http.StatusConflict},
		{fmt.Errorf("%w: unknown kind", service.ErrInvalidAction), http.StatusBadRequest},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func requestFor(urlID, owner string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/sessions/"+urlID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", urlID)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	if owner != "" {
		ctx = middleware.WithSessionID(ctx, owner)
	}
	return r.WithContext(ctx)
}

func TestSessionID(t *testing.T) {
	w := httptest.NewRecorder()
	id, ok := SessionID(w, requestFor("abc", "abc"))
	assert.True(t, ok)
	assert.Equal(t, "abc", id)

	w = httptest.NewRecorder()
	_, ok = SessionID(w, requestFor("abc", "other"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	_, ok = SessionID(w, requestFor("abc", ""))
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
