package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dto "neuroflash/internal/api/dto/arcade"
	"neuroflash/internal/api/middleware"
	"neuroflash/internal/api/stream"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	for _, name := range []string{
		"ARCADE_LIVES", "ARCADE_INSTRUCTION_DELAY", "ARCADE_RESULT_DELAY", "ARCADE_TICK_INTERVAL",
		"ARCADE_SPEED_COEFFICIENT", "ARCADE_HIGHSCORE_LIMIT", "ARCADE_REGISTRY_PATH",
		"ACCESS_TOKEN_DURATION", "SESSION_IDLE_TTL", "SESSION_BROADCAST_INTERVAL",
	} {
		t.Setenv(name, "")
	}
	t.Setenv("ACCESS_TOKEN", "router-test-secret")
	// раунд не начнётся, пока идёт тест
	t.Setenv("ARCADE_INSTRUCTION_DELAY", "1m")

	sp := newServiceProvider(zap.NewNop(), "test")
	srv := httptest.NewServer(sp.Router(t.Context()))
	t.Cleanup(func() {
		srv.Close()
		sp.ArcadeService().Close()
	})
	return srv
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(res.Body)
	require.NoError(c.t, err)
	return res, buf.Bytes()
}

func (c *client) state(method, path string, body any, wantStatus int) dto.StateResponse {
	c.t.Helper()
	res, raw := c.do(method, path, body)
	require.Equal(c.t, wantStatus, res.StatusCode, string(raw))
	var out dto.StateResponse
	if wantStatus == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	}
	return out
}

func createSession(t *testing.T, base string, acceptLanguage string) (dto.CreateSessionResponse, *http.Response) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, base+"/sessions", strings.NewReader(`{}`))
	require.NoError(t, err)
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var out dto.CreateSessionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out, res
}

func TestSessionFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	created, res := createSession(t, srv.URL, "ru-RU,ru;q=0.9")
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.AccessToken)
	assert.Equal(t, "MENU", created.State.Phase)
	assert.Equal(t, 3, created.State.Lives)
	assert.Equal(t, "ru", created.State.Language)
	assert.Nil(t, created.State.LastResult)

	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, created.AccessToken, cookie.Value)

	c := &client{t: t, base: srv.URL, token: created.AccessToken}
	path := "/sessions/" + created.SessionID

	st := c.state(http.MethodPost, path+"/start", nil, http.StatusOK)
	assert.Equal(t, "INSTRUCTION", st.Phase)
	assert.Equal(t, 1, st.Round)

	c.state(http.MethodPost, path+"/start", nil, http.StatusConflict)
	c.state(http.MethodPost, path+"/input", dto.InputRequest{Kind: "kick"}, http.StatusBadRequest)
	c.state(http.MethodPost, path+"/input", dto.InputRequest{Kind: "tap"}, http.StatusConflict)

	st = c.state(http.MethodPut, path+"/language", dto.LanguageRequest{Language: "en"}, http.StatusOK)
	assert.Equal(t, "en", st.Language)
	c.state(http.MethodPut, path+"/language", dto.LanguageRequest{}, http.StatusBadRequest)

	st = c.state(http.MethodPut, path+"/assets", dto.AssetsBody{ThemeName: "forest", PrimaryIconRef: "leaf.png"}, http.StatusOK)
	require.NotNil(t, st.Assets)
	assert.Equal(t, "forest", st.Assets.ThemeName)
	st = c.state(http.MethodDelete, path+"/assets", nil, http.StatusOK)
	assert.Nil(t, st.Assets)

	st = c.state(http.MethodPost, path+"/restart", nil, http.StatusOK)
	assert.Equal(t, "INSTRUCTION", st.Phase)

	st = c.state(http.MethodGet, path, nil, http.StatusOK)
	assert.Equal(t, 0, st.Score)

	res, _ = c.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	c.state(http.MethodGet, path, nil, http.StatusNotFound)
}

func TestSessionAuthorization(t *testing.T) {
	srv := newTestServer(t)

	a, _ := createSession(t, srv.URL, "")
	b, _ := createSession(t, srv.URL, "")

	anon := &client{t: t, base: srv.URL}
	anon.state(http.MethodGet, "/sessions/"+a.SessionID, nil, http.StatusUnauthorized)

	wrong := &client{t: t, base: srv.URL, token: b.AccessToken}
	wrong.state(http.MethodPost, "/sessions/"+a.SessionID+"/start", nil, http.StatusForbidden)

	bad := &client{t: t, base: srv.URL, token: "garbage"}
	bad.state(http.MethodGet, "/sessions/"+a.SessionID, nil, http.StatusUnauthorized)
}

func TestCatalogAndHealth(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL}

	res, raw := c.do(http.MethodGet, "/games", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var games dto.GamesResponse
	require.NoError(t, json.Unmarshal(raw, &games))
	assert.Len(t, games.Games, 7)
	assert.Equal(t, []string{"en", "ru"}, games.Languages)
	assert.Equal(t, "REFLEX", games.Games[0].Type)

	res, raw = c.do(http.MethodGet, "/highscores", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"high_scores":[]}`, string(raw))

	res, _ = c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = c.do(http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) stream.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env stream.Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestStreamOverWebsocket(t *testing.T) {
	srv := newTestServer(t)
	created, _ := createSession(t, srv.URL, "")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + created.SessionID + "/stream?token=" + created.AccessToken
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	first := readEnvelope(t, conn)
	require.Equal(t, stream.MsgState, first.T)
	st, err := stream.DecodePayload[dto.StateResponse](first)
	require.NoError(t, err)
	assert.Equal(t, "MENU", st.Phase)

	c := &client{t: t, base: srv.URL, token: created.AccessToken}
	c.state(http.MethodPost, "/sessions/"+created.SessionID+"/start", nil, http.StatusOK)

	sawClick := false
	for i := 0; i < 50 && !sawClick; i++ {
		env := readEnvelope(t, conn)
		if env.T != stream.MsgCue {
			continue
		}
		cue, err := stream.DecodePayload[dto.CueResponse](env)
		require.NoError(t, err)
		sawClick = cue.Cue == "ui_click"
	}
	assert.True(t, sawClick)

	msg, err := stream.Encode(stream.MsgInput, dto.InputRequest{Kind: "kick"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))

	sawError := false
	for i := 0; i < 100 && !sawError; i++ {
		sawError = readEnvelope(t, conn).T == stream.MsgError
	}
	assert.True(t, sawError)
}

func TestStreamRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	created, _ := createSession(t, srv.URL, "")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + created.SessionID + "/stream"
	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
