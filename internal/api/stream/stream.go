// Package stream отдаёт события сессии по websocket.
// Сообщения в обе стороны - конверты {t, p}: сервер шлёт "state" и "cue",
// клиент может слать "input" вместо REST запросов.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	arcadeAPI "neuroflash/internal/api/arcade"
	dto "neuroflash/internal/api/dto/arcade"
	"neuroflash/internal/converter"
	"neuroflash/internal/model"
	"neuroflash/internal/service"
	"neuroflash/pkg/resp"
)

const (
	MsgState = "state"
	MsgCue   = "cue"
	MsgInput = "input"
	MsgError = "error"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	readLimit  = 1 << 16
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Encode Упаковать payload в конверт типа t
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("envelope type is empty")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// DecodePayload Распаковать payload конверта в T
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

type HandlerDeps struct {
	Serv   service.ArcadeService
	Logger *zap.Logger
	// CheckOrigin nil - разрешены все источники, как у CORS
	CheckOrigin func(r *http.Request) bool
}

type Handler struct {
	serv     service.ArcadeService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewHandler(deps HandlerDeps) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.CheckOrigin == nil {
		deps.CheckOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		serv:     deps.Serv,
		logger:   deps.Logger,
		upgrader: websocket.Upgrader{CheckOrigin: deps.CheckOrigin},
	}
}

// Stream поток событий сессии
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ok := arcadeAPI.SessionID(w, r)
	if !ok {
		return
	}

	events, cancel, err := h.serv.Subscribe(r.Context(), id)
	if err != nil {
		resp.WriteError(w, arcadeAPI.StatusFor(err), err.Error())
		return
	}
	defer cancel()

	snap, err := h.serv.Snapshot(r.Context(), id)
	if err != nil {
		resp.WriteError(w, arcadeAPI.StatusFor(err), err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close()

	logger := h.logger.With(zap.String("session_id", id))
	logger.Debug("stream opened")

	out := make(chan []byte, 8)
	readDone := make(chan struct{})
	go h.readLoop(conn, id, out, readDone, logger)

	if err := h.write(conn, MsgState, converter.ToStateResponse(*snap)); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := h.writeEvent(conn, ev); err != nil {
				return
			}
		case msg := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-readDone:
			logger.Debug("stream closed by client")
			return
		}
	}
}

// readLoop Читает сообщения клиента, пока соединение живо.
// Все записи в соединение делает только Stream, сюда уходят готовые ответы через out
func (h *Handler) readLoop(conn *websocket.Conn, id string, out chan<- []byte, done chan<- struct{}, logger *zap.Logger) {
	defer close(done)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		reply := h.handleMessage(id, raw, logger)
		if reply == nil {
			continue
		}
		select {
		case out <- reply:
		default:
		}
	}
}

func (h *Handler) handleMessage(id string, raw []byte, logger *zap.Logger) []byte {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errorMessage("malformed envelope")
	}
	if env.T != MsgInput {
		return errorMessage(fmt.Sprintf("unsupported message type %q", env.T))
	}

	in, err := DecodePayload[dto.InputRequest](env)
	if err != nil {
		return errorMessage("malformed input payload")
	}

	// обработка ввода ждёт цикл сессии, но не дольше записи в сокет
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if _, err := h.serv.Input(ctx, id, converter.ToAction(in)); err != nil {
		logger.Debug("stream input rejected", zap.Error(err))
		return errorMessage(err.Error())
	}
	// новый снимок придёт подписчикам через хаб
	return nil
}

func (h *Handler) writeEvent(conn *websocket.Conn, ev model.Event) error {
	switch ev.Kind {
	case model.EventState:
		if ev.Snapshot == nil {
			return nil
		}
		return h.write(conn, MsgState, converter.ToStateResponse(*ev.Snapshot))
	case model.EventCue:
		return h.write(conn, MsgCue, converter.ToCueResponse(ev))
	default:
		return nil
	}
}

func (h *Handler) write(conn *websocket.Conn, t string, payload any) error {
	msg, err := Encode(t, payload)
	if err != nil {
		h.logger.Error("failed to encode stream message", zap.String("type", t), zap.Error(err))
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

func errorMessage(msg string) []byte {
	b, _ := Encode(MsgError, resp.ErrorResponse{Error: msg})
	return b
}
