package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-dims/am"
)

var clock = time.Date(2013, time.February, 12, 4, 30, 0, 0, time.UTC)

func testConfig(t *testing.T) *am.Config {
	t.Helper()
	v := viper.New()
	am.SetDefaults(v)
	cfg, err := am.LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func newTestServer(t *testing.T, mutate func(*am.Config)) *Server {
	t.Helper()
	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	return s
}

func post(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type entityJSON struct {
	Body  string          `json:"body"`
	Start int             `json:"start"`
	End   int             `json:"end"`
	Dim   string          `json:"dim"`
	Value json.RawMessage `json:"value"`
}

type responseJSON struct {
	ID            string       `json:"id"`
	Locale        string       `json:"locale"`
	ReferenceTime string       `json:"reference_time"`
	Entities      []entityJSON `json:"entities"`
	Error         string       `json:"error"`
}

func decode(t *testing.T, data []byte) responseJSON {
	t.Helper()
	var resp responseJSON
	require.NoError(t, json.Unmarshal(data, &resp), string(data))
	return resp
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestHandleDims(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dims", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dims []DimInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dims))
	byName := map[string]DimInfo{}
	for _, d := range dims {
		byName[d.Name] = d
	}
	assert.Equal(t, []string{"number", "ordinal", "duration", "time-grain"}, byName["time"].Dependencies)
	assert.Empty(t, byName["email"].Dependencies)
}

func TestHandleParse(t *testing.T) {
	s := newTestServer(t, nil)
	rec := post(t, s, `{"text":"tomorrow at 3pm","dims":["time"],"reference_time":"2013-02-12T04:30:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode(t, rec.Body.Bytes())
	assert.Equal(t, "en_US", resp.Locale)
	require.Len(t, resp.Entities, 1)
	e := resp.Entities[0]
	assert.Equal(t, "tomorrow at 3pm", e.Body)
	assert.Equal(t, "time", e.Dim)

	var value struct {
		Point struct {
			Value string `json:"value"`
			Grain string `json:"grain"`
		} `json:"point"`
		Instant bool `json:"instant"`
	}
	require.NoError(t, json.Unmarshal(e.Value, &value))
	assert.Equal(t, "2013-02-13T15:00:00", value.Point.Value)
	assert.Equal(t, "hour", value.Point.Grain)
	assert.False(t, value.Instant)
}

func TestHandleParseDefaultsToServerClock(t *testing.T) {
	s := newTestServer(t, nil)
	rec := post(t, s, `{"text":"today","dims":["time"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec.Body.Bytes())
	assert.Equal(t, "2013-02-12T04:30:00Z", resp.ReferenceTime)
	require.Len(t, resp.Entities, 1)
	assert.Contains(t, string(resp.Entities[0].Value), "2013-02-12T00:00:00")
}

func TestHandleParseRejectsInvalidInput(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown dimension", `{"text":"x","dims":["mood"]}`, "unknown dimension"},
		{"unsupported locale", `{"text":"x","locale":"fr_FR"}`, "locale"},
		{"bad reference time", `{"text":"x","reference_time":"tomorrow"}`, "reference_time"},
		{"unknown timezone", `{"text":"x","timezone":"Mars/Olympus"}`, "timezone"},
		{"unknown field", `{"text":"x","colour":"red"}`, "invalid request body"},
		{"malformed", `{"text":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec.Body.Bytes()).Error, tt.want)
		})
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/parse", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *am.Config) {
		c.Server.RatePerSecond = 0.001
		c.Server.Burst = 1
	})
	body := `{"text":"three","dims":["number"]}`

	assert.Equal(t, http.StatusOK, post(t, s, body).Code)
	rec := post(t, s, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// health is never limited
	health := httptest.NewRecorder()
	s.Handler().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestResponseCache(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{"text":"forty-two","dims":["number"],"reference_time":"2013-02-12T04:30:00Z"}`

	first := post(t, s, body)
	second := post(t, s, body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, s.cache.Load().ItemCount())

	post(t, s, `{"text":"forty-two","dims":["number"]}`)
	assert.Equal(t, 1, s.cache.Load().ItemCount(), "clock-relative requests are not cached")

	require.NoError(t, s.Reload(func() *am.Config {
		c := testConfig(t)
		c.Server.CacheTTLSeconds = 0
		return c
	}()))
	assert.Nil(t, s.cache.Load())
	assert.Equal(t, http.StatusOK, post(t, s, body).Code)
}

func TestReload(t *testing.T) {
	s := newTestServer(t, nil)

	bad := testConfig(t)
	bad.Parse.Locale = "xx_YY"
	assert.Error(t, s.Reload(bad))
	assert.Equal(t, "en_US", s.Config().Parse.Locale)

	good := testConfig(t)
	good.Parse.Locale = "en_GB"
	require.NoError(t, s.Reload(good))

	rec := post(t, s, `{"text":"15/2/2013","dims":["time"],"reference_time":"2013-02-12T04:30:00Z"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec.Body.Bytes())
	assert.Equal(t, "en_GB", resp.Locale)
	require.Len(t, resp.Entities, 1)
	assert.Contains(t, string(resp.Entities[0].Value), "2013-02-15T00:00:00")
}

func TestParseWebSocket(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/parse"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.WriteJSON(ParseRequest{ID: "a", Text: "forty-two", Dims: []string{"number"}}))
	require.NoError(t, conn.WriteJSON(ParseRequest{ID: "b", Text: "x", Dims: []string{"mood"}}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var first, second, third responseJSON
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	require.NoError(t, conn.ReadJSON(&third))

	assert.Equal(t, "a", first.ID)
	require.Len(t, first.Entities, 1)
	assert.Equal(t, "forty-two", first.Entities[0].Body)

	assert.Equal(t, "b", second.ID)
	assert.Contains(t, second.Error, "unknown dimension")

	assert.Contains(t, third.Error, "invalid request frame")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Post("http://"+ln.Addr().String()+"/api/parse", "application/json",
			bytes.NewBufferString(`{"text":"three","dims":["number"]}`))
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
