package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"neuroflash/internal/model"
	"neuroflash/pkg/resp"
)

// Stats Источник цифр для readiness
type Stats interface {
	ActiveSessions() int
	Games() []model.GameDefinition
}

type HandlerDeps struct {
	Stats   Stats
	Version string
}

type Handler struct {
	stats   Stats
	version string
	started time.Time
}

type Response struct {
	Status         string `json:"status"`
	Version        string `json:"version,omitempty"`
	Uptime         string `json:"uptime"`
	ActiveSessions int    `json:"active_sessions"`
	Games          int    `json:"games"`
	RequestID      string `json:"request_id,omitempty"`
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{stats: deps.Stats, version: deps.Version, started: time.Now()}
}

// Live процесс жив
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready сервер готов принимать сессии: реестр игр не пуст
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	out := Response{
		Status:         "ready",
		Version:        h.version,
		Uptime:         time.Since(h.started).Round(time.Second).String(),
		ActiveSessions: h.stats.ActiveSessions(),
		Games:          len(h.stats.Games()),
		RequestID:      middleware.GetReqID(r.Context()),
	}
	status := http.StatusOK
	if out.Games == 0 {
		out.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	resp.WriteJSONResponse(w, status, out)
}
