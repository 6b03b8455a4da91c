package arcade

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	dto "neuroflash/internal/api/dto/arcade"
	"neuroflash/internal/api/middleware"
	"neuroflash/internal/converter"
	"neuroflash/internal/model"
	"neuroflash/internal/orchestrator"
	"neuroflash/internal/repository"
	"neuroflash/internal/service"
	"neuroflash/pkg/req"
	"neuroflash/pkg/resp"
)

type HandlerDeps struct {
	Serv      service.ArcadeService
	Logger    *zap.Logger
	CookieTTL time.Duration
}

type Handler struct {
	serv      service.ArcadeService
	logger    *zap.Logger
	cookieTTL time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, logger: deps.Logger, cookieTTL: deps.CookieTTL}
}

// CreateSession создаёт сессию в меню и возвращает токен доступа к ней.
// Токен дублируется в cookie для браузерного клиента
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateSessionRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.serv.CreateSession(r.Context(), converter.ToCreateSessionParams(payload, r.Header.Get("Accept-Language")))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	setAccessTokenCookie(w, sess.AccessToken, h.cookieTTL)

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToCreateSessionResponse(*sess))
}

// State текущий снимок сессии
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(ctx context.Context, id string) (*model.Snapshot, error) {
		return h.serv.Snapshot(ctx, id)
	})
}

// Start кнопка Play
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.serv.Start)
}

// Restart начать заново
func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.serv.Restart)
}

// Input действие игрока в активной мини-игре
func (h *Handler) Input(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.InputRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, func(ctx context.Context, id string) (*model.Snapshot, error) {
		return h.serv.Input(ctx, id, converter.ToAction(payload))
	})
}

// SetAssets подставить иконки темы
func (h *Handler) SetAssets(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.AssetsBody](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, func(ctx context.Context, id string) (*model.Snapshot, error) {
		return h.serv.SetAssets(ctx, id, converter.ToAssetPack(&payload))
	})
}

// ClearAssets вернуть стандартные иконки
func (h *Handler) ClearAssets(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(ctx context.Context, id string) (*model.Snapshot, error) {
		return h.serv.SetAssets(ctx, id, nil)
	})
}

// SetLanguage сменить язык инструкций
func (h *Handler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.LanguageRequest](r.Body)
	if err != nil || payload.Language == "" {
		resp.WriteError(w, http.StatusBadRequest, "language is required")
		return
	}
	h.respond(w, r, func(ctx context.Context, id string) (*model.Snapshot, error) {
		return h.serv.SetLanguage(ctx, id, payload.Language)
	})
}

// CloseSession завершает сессию без записи рекорда
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := SessionID(w, r)
	if !ok {
		return
	}
	if err := h.serv.CloseSession(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	deleteAccessTokenCookie(w)

	w.WriteHeader(http.StatusNoContent)
}

// Games каталог мини-игр
func (h *Handler) Games(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGamesResponse(h.serv.Games(), h.serv.Languages()))
}

// HighScores общая таблица рекордов
func (h *Handler) HighScores(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, dto.HighScoresResponse{
		HighScores: converter.ToScoreResponses(h.serv.HighScores()),
	})
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*model.Snapshot, error)) {
	id, ok := SessionID(w, r)
	if !ok {
		return
	}
	snap, err := op(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(*snap))
}

// SessionID ID сессии из URL. Токен должен быть выдан именно этой сессии
func SessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	owner, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "missing access token")
		return "", false
	}
	if id != owner {
		resp.WriteError(w, http.StatusForbidden, "token does not belong to this session")
		return "", false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	resp.WriteError(w, status, err.Error())
}

// StatusFor HTTP статус для ошибки сервиса
func StatusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, orchestrator.ErrInvalidPhase):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// setAccessTokenCookie устанавливает cookie с токеном сессии
func setAccessTokenCookie(w http.ResponseWriter, accessToken string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// deleteAccessTokenCookie удаляет cookie с токеном
func deleteAccessTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	})
}
