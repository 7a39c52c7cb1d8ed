package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-shorts-platform/internal/auth"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/pribylovaa/go-shorts-platform/internal/pkg/log"
)

// capHandler — тестовый slog.Handler: копит базовые attrs из With(...),
// а последнюю запись складывает в общий для всех копий capState.
type capHandler struct {
	base []slog.Attr
	*capState
}

type capState struct {
	mu      sync.Mutex
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func newCapHandler() *capHandler {
	return &capHandler{capState: &capState{}}
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capHandler{
		base:     append(append([]slog.Attr{}, h.base...), attrs...),
		capState: h.capState,
	}
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func makeReq(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = (&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 12345}).String()

	return req
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) errEnvelope {
	t.Helper()

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))

	return env
}

func TestChain_Order(t *testing.T) {
	order := []string{}

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-begin")
				next.ServeHTTP(w, r)
				order = append(order, name+"-end")
			})
		}
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Chain(final, mw("m1"), mw("m2")).ServeHTTP(rr, makeReq("/chain"))

	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	var seenHeader, seenCtx string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get(HeaderRequestID)
		seenCtx = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	Chain(h, RequestID()).ServeHTTP(rr, makeReq("/rid"))

	respID := rr.Header().Get(HeaderRequestID)
	require.Len(t, respID, 32)
	require.Equal(t, respID, seenHeader)
	require.Equal(t, respID, seenCtx)
}

func TestRequestID_UseExisting(t *testing.T) {
	const given = "abc123-existing-id"
	var seenCtx string

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtx = RequestIDFrom(r.Context())
	})

	rr := httptest.NewRecorder()
	req := makeReq("/rid2")
	req.Header.Set(HeaderRequestID, given)
	Chain(h, RequestID()).ServeHTTP(rr, req)

	require.Equal(t, given, rr.Header().Get(HeaderRequestID))
	require.Equal(t, given, seenCtx)
}

type stubVerifier struct {
	actor models.Actor
	err   error
	got   string
}

func (s *stubVerifier) Verify(token string) (models.Actor, error) {
	s.got = token
	return s.actor, s.err
}

func TestAuthBearer_PutsActorIntoContext(t *testing.T) {
	uid := uuid.New()
	v := &stubVerifier{actor: models.Actor{UserID: uid, Username: "alice", Role: models.RoleUser}}

	capLog := newCapHandler()
	var seen models.Actor
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.ActorFrom(r.Context())
		log.From(r.Context()).Info("probe")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := makeReq("/auth")
	req = req.WithContext(log.Into(req.Context(), slog.New(capLog)))
	req.Header.Set("Authorization", "Bearer test-token-123")
	Chain(h, AuthBearer(v)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "test-token-123", v.got)
	require.Equal(t, uid, seen.UserID)
	require.Equal(t, uid.String(), capLog.attrs["user_id"])
}

func TestAuthBearer_NoHeaderIsAnonymous(t *testing.T) {
	v := &stubVerifier{}
	var anonymous bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		anonymous = auth.ActorFrom(r.Context()).IsAnonymous()
	})

	rr := httptest.NewRecorder()
	Chain(h, AuthBearer(v)).ServeHTTP(rr, makeReq("/anon"))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, anonymous)
	require.Empty(t, v.got)
}

func TestAuthBearer_RejectsBadCredentials(t *testing.T) {
	tcs := []struct {
		name   string
		header string
		err    error
	}{
		{"basic_scheme", "Basic aaa", nil},
		{"empty_token", "Bearer    ", nil},
		{"verify_fails", "Bearer bad", errors.New("signature is invalid")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

			rr := httptest.NewRecorder()
			req := makeReq("/auth")
			req.Header.Set("Authorization", tc.header)
			Chain(h, AuthBearer(&stubVerifier{err: tc.err})).ServeHTTP(rr, req)

			require.False(t, called)
			require.Equal(t, http.StatusUnauthorized, rr.Code)
			require.Equal(t, "unauthenticated", decodeEnvelope(t, rr).Error.Code)
		})
	}
}

func TestTimeout_SetsDeadline_WhenAbsent(t *testing.T) {
	var left time.Duration
	var ok bool

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var dl time.Time
		dl, ok = r.Context().Deadline()
		left = time.Until(dl)
	})

	Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), makeReq("/timeout"))

	require.True(t, ok)
	require.Greater(t, left, time.Duration(0))
}

func TestTimeout_KeepsExistingDeadlineAndZeroIsNoop(t *testing.T) {
	var childDL time.Time
	var hasDL bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		childDL, hasDL = r.Context().Deadline()
	})

	parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), makeReq("/t").WithContext(parent))

	parentDL, _ := parent.Deadline()
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)

	Chain(h, Timeout(0)).ServeHTTP(httptest.NewRecorder(), makeReq("/t0"))
	require.False(t, hasDL)
}

func TestRecover_ConvertsPanicTo500(t *testing.T) {
	capLog := newCapHandler()
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	req := makeReq("/panic")
	req.Header.Set(HeaderRequestID, "rid-panic")
	Chain(panicHandler, Logging(slog.New(capLog)), Recover()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rr)
	require.Equal(t, "internal", env.Error.Code)
	require.Equal(t, "rid-panic", env.Error.RequestID)
	require.NotContains(t, rr.Body.String(), "boom")

	// Последней идёт access-запись, до неё была запись panic.
	require.Equal(t, 2, capLog.count)
	require.Equal(t, "http", capLog.lastMsg)
	require.Equal(t, slog.LevelError, capLog.lastLvl)
}

func TestLogging_WritesRecord_WithStatusDurBytesAndRequestID(t *testing.T) {
	capLog := newCapHandler()
	const rid = "rid-456"

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	})

	rr := httptest.NewRecorder()
	req := makeReq("/log")
	req.Header.Set(HeaderRequestID, rid)
	Chain(final, RequestID(), Logging(slog.New(capLog))).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, capLog.count)
	require.Equal(t, "http", capLog.lastMsg)
	require.Equal(t, slog.LevelInfo, capLog.lastLvl)

	require.Equal(t, http.MethodGet, capLog.attrs["method"])
	require.Equal(t, "/log", capLog.attrs["path"])
	require.EqualValues(t, http.StatusOK, capLog.attrs["status"])
	require.EqualValues(t, 10, capLog.attrs["bytes"])
	require.Equal(t, rid, capLog.attrs["request_id"])
	require.Contains(t, capLog.attrs, "dur")
}

type recObserver struct {
	route    string
	method   string
	status   int
	inFlight float64
	peak     float64
}

func (o *recObserver) ObserveRequest(route, method string, status int, _ time.Duration) {
	o.route, o.method, o.status = route, method, status
}

func (o *recObserver) InFlight(delta float64) {
	o.inFlight += delta
	if o.inFlight > o.peak {
		o.peak = o.inFlight
	}
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	obs := &recObserver{}

	r := chi.NewRouter()
	r.Use(Metrics(obs))
	r.Get("/comments/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, makeReq("/comments/abc"))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Equal(t, "/comments/{id}", obs.route)
	require.Equal(t, http.MethodGet, obs.method)
	require.Equal(t, http.StatusNoContent, obs.status)
	require.Equal(t, float64(1), obs.peak)
	require.Zero(t, obs.inFlight)
}

func TestMetrics_NilObserverIsNoop(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) })

	rr := httptest.NewRecorder()
	Chain(h, Metrics(nil)).ServeHTTP(rr, makeReq("/x"))
	require.Equal(t, http.StatusAccepted, rr.Code)
}

func TestStatusWriter_CountsBytes_AndDefaultStatus200(t *testing.T) {
	sw := newStatusWriter(httptest.NewRecorder())
	require.Equal(t, http.StatusOK, sw.Status())

	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}
