package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shareit/shareit-backend/internal/pkg/request"
)

// seen is what the fake core received.
type seen struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Query  string `json:"query"`
	UserID string `json:"userId"`
	Body   string `json:"body"`
}

type fakeCore struct {
	server *httptest.Server
	hits   atomic.Int32
	status atomic.Int32
}

func newFakeCore(t *testing.T) *fakeCore {
	core := &fakeCore{}
	core.status.Store(http.StatusOK)
	core.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		core.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(core.status.Load()))
		_ = json.NewEncoder(w).Encode(seen{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			UserID: r.Header.Get(request.UserIDHeader),
			Body:   string(body),
		})
	}))
	t.Cleanup(core.server.Close)
	return core
}

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestGateway(t *testing.T, core *fakeCore, mutate func(*Config)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := Config{
		ServerURL:       core.server.URL,
		Timeout:         time.Second,
		RPS:             1000,
		Burst:           1000,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	client, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)

	h := NewHandler(client, zap.NewNop())
	h.now = func() time.Time { return testNow }
	return NewRouter(cfg, h, zap.NewNop(), nil)
}

func send(r *gin.Engine, method, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(request.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRelayCopiesRequest(t *testing.T) {
	core := newFakeCore(t)
	r := newTestGateway(t, core, nil)

	body := `{"itemId":3,"start":"2026-06-02T10:00:00","end":"2026-06-03T10:00:00"}`
	w := send(r, http.MethodPost, "/bookings", body, "7")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got seen
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/bookings", got.Path)
	assert.Equal(t, "7", got.UserID)
	assert.JSONEq(t, body, got.Body)

	w = send(r, http.MethodPatch, "/bookings/4?approved=true", "", "1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "/bookings/4", got.Path)
	assert.Equal(t, "approved=true", got.Query)
}

func TestRelayKeepsCoreStatus(t *testing.T) {
	core := newFakeCore(t)
	core.status.Store(http.StatusNotFound)
	r := newTestGateway(t, core, nil)

	w := send(r, http.MethodGet, "/items/9", "", "1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestPreValidationStopsBadRequests(t *testing.T) {
	core := newFakeCore(t)
	r := newTestGateway(t, core, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		userID string
	}{
		{"missing identity", http.MethodGet, "/items", "", ""},
		{"bad identity", http.MethodGet, "/items", "", "-1"},
		{"negative from", http.MethodGet, "/items?from=-1", "", "1"},
		{"zero size", http.MethodGet, "/requests/all?size=0", "", "1"},
		{"unknown state", http.MethodGet, "/bookings?state=SOMETIMES", "", "1"},
		{"owner list bad size", http.MethodGet, "/bookings/owner?size=-3", "", "1"},
		{"bad id", http.MethodGet, "/bookings/0", "", "1"},
		{"approve without flag", http.MethodPatch, "/bookings/4", "", "1"},
		{"start in past", http.MethodPost, "/bookings", `{"itemId":3,"start":"2026-05-01T10:00:00","end":"2026-06-03T10:00:00"}`, "1"},
		{"end before start", http.MethodPost, "/bookings", `{"itemId":3,"start":"2026-06-03T10:00:00","end":"2026-06-02T10:00:00"}`, "1"},
		{"blank item name", http.MethodPost, "/items", `{"name":"  ","description":"d","available":true}`, "1"},
		{"missing availability", http.MethodPost, "/items", `{"name":"n","description":"d"}`, "1"},
		{"blank comment", http.MethodPost, "/items/3/comment", `{"text":""}`, "1"},
		{"bad email", http.MethodPost, "/users", `{"name":"n","email":"nope"}`, ""},
		{"blank request", http.MethodPost, "/requests", `{"description":" "}`, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := send(r, tt.method, tt.path, tt.body, tt.userID)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
	assert.Zero(t, core.hits.Load(), "nothing reaches the core")
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	core := newFakeCore(t)
	core.status.Store(http.StatusInternalServerError)
	r := newTestGateway(t, core, nil)

	for range 3 {
		w := send(r, http.MethodGet, "/users", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	}

	w := send(r, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, int32(3), core.hits.Load())
}

func TestUnreachableCore(t *testing.T) {
	core := newFakeCore(t)
	r := newTestGateway(t, core, nil)
	core.server.Close()

	w := send(r, http.MethodGet, "/users", "", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRateLimit(t *testing.T) {
	core := newFakeCore(t)
	r := newTestGateway(t, core, func(c *Config) {
		c.RPS = 0.001
		c.Burst = 2
	})

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/users", "", "").Code)
	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/users", "", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(r, http.MethodGet, "/users", "", "").Code)

	assert.Equal(t, http.StatusOK, send(r, http.MethodGet, "/health", "", "").Code, "health is not limited")
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := NewClient(Config{ServerURL: "localhost"}, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GATEWAY_SERVER_URL", "http://core:8080")
	t.Setenv("GATEWAY_RPS", "5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://core:8080", cfg.ServerURL)
	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, float64(5), cfg.RPS)
}

func TestLoadConfigRequiresServerURL(t *testing.T) {
	t.Setenv("GATEWAY_SERVER_URL", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
