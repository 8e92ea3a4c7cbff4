package ports

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/ratelimiting"
	"github.com/Amund211/bosslevels/internal/reporting"
	"github.com/stretchr/testify/require"
)

type mockedRateLimiter struct {
	t           *testing.T
	allow       bool
	expectedKey string
}

func (m *mockedRateLimiter) Consume(key string) bool {
	m.t.Helper()
	require.Equal(m.t, m.expectedKey, key)
	return m.allow
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		keyFunc     func(r *http.Request) string
		expectedKey string
		allow       bool
	}{
		{
			name:        "ip allowed",
			keyFunc:     ratelimiting.IPKeyFunc,
			expectedKey: "ip: 169.254.169.126",
			allow:       true,
		},
		{
			name:        "ip limited",
			keyFunc:     ratelimiting.IPKeyFunc,
			expectedKey: "ip: 169.254.169.126",
			allow:       false,
		},
		{
			name:        "player limited",
			keyFunc:     ratelimiting.PlayerKeyFunc,
			expectedKey: "player: zezima",
			allow:       false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			limiter := ratelimiting.NewRequestBasedRateLimiter(
				&mockedRateLimiter{t: t, allow: c.allow, expectedKey: c.expectedKey},
				c.keyFunc,
			)

			handlerCalled := false
			handler := NewRateLimitMiddleware(limiter, makeOnLimitExceeded(limiter))(
				func(w http.ResponseWriter, r *http.Request) {
					handlerCalled = true
				},
			)

			req := httptest.NewRequest(http.MethodPost, "/v1/chat", nil)
			req.RemoteAddr = "169.254.169.126:58418"
			req.Header.Set(logging.PlayerHeader, "Zezima")
			w := httptest.NewRecorder()

			handler(w, req)

			require.Equal(t, c.allow, handlerCalled)
			if c.allow {
				require.Equal(t, http.StatusOK, w.Code)
			} else {
				require.Equal(t, http.StatusTooManyRequests, w.Code)
			}
		})
	}
}

func TestClientRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	middleware := newClientRateLimitMiddleware(
		limits{refillPerSecond: 0.01, burstSize: 4},
		limits{refillPerSecond: 0.01, burstSize: 2},
	)
	handler := middleware(func(w http.ResponseWriter, r *http.Request) {})

	send := func(player string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/bosses", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if player != "" {
			req.Header.Set(logging.PlayerHeader, player)
		}
		w := httptest.NewRecorder()
		handler(w, req)
		return w.Code
	}

	// The player budget runs out before the ip budget
	require.Equal(t, http.StatusOK, send("Zezima"))
	require.Equal(t, http.StatusOK, send("zezima "))
	require.Equal(t, http.StatusTooManyRequests, send("Zezima"))

	// Another player from the same ip uses the remaining ip budget
	require.Equal(t, http.StatusOK, send("Lynx Titan"))
	require.Equal(t, http.StatusTooManyRequests, send("Woox"))
}

func TestAddPlayerMiddleware(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		header   string
		expected string
	}{
		{name: "player set", header: "Zezima", expected: "Zezima"},
		{name: "player missing", header: "", expected: "<missing>"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			var reportedPlayer string
			handler := addPlayerMiddleware(func(w http.ResponseWriter, r *http.Request) {
				ctx := r.Context()
				logging.FromContext(ctx).InfoContext(ctx, "handled")
				reportedPlayer = reporting.MetaFromContext(ctx).Player()
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/bosses", nil)
			req = req.WithContext(logging.AddToContext(req.Context(), slog.New(slog.NewJSONHandler(buf, nil))))
			if c.header != "" {
				req.Header.Set(logging.PlayerHeader, c.header)
			}

			handler(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			require.Equal(t, c.expected, entry["player"])
			require.Equal(t, c.expected, reportedPlayer)
		})
	}
}

func TestComposeMiddlewares(t *testing.T) {
	t.Parallel()

	recording := func(name string, calls *[]string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				*calls = append(*calls, name+" pre")
				next(w, r)
				*calls = append(*calls, name+" post")
			}
		}
	}

	t.Run("single middleware", func(t *testing.T) {
		t.Parallel()

		var calls []string
		handler := ComposeMiddlewares(recording("metrics", &calls))(
			func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, "handler")
			},
		)

		handler(httptest.NewRecorder(), &http.Request{})

		require.Equal(t, []string{"metrics pre", "handler", "metrics post"}, calls)
	})

	t.Run("multiple middleware run outermost first", func(t *testing.T) {
		t.Parallel()

		var calls []string
		handler := ComposeMiddlewares(
			recording("metrics", &calls),
			recording("logger", &calls),
			recording("cors", &calls),
		)(
			func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, "handler")
			},
		)

		handler(httptest.NewRecorder(), &http.Request{})

		require.Equal(t, []string{
			"metrics pre",
			"logger pre",
			"cors pre",
			"handler",
			"cors post",
			"logger post",
			"metrics post",
		}, calls)
	})
}
