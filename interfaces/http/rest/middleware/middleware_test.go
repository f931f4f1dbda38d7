package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"journeybuilder/pkg/auth"
	pkgerrors "journeybuilder/pkg/errors"
)

type recordedRequest struct {
	route  string
	method string
	code   int
}

type fakeObserver struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (f *fakeObserver) ObserveRequest(route, method string, code int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, recordedRequest{route, method, code})
}

func TestLogger_RecordsRoutePattern(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	obs := &fakeObserver{}

	r := chi.NewRouter()
	r.Use(Logger(zap.New(core), obs))
	r.Get("/journeys/{journeyID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/implicit", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/journeys/j-1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/implicit", nil))

	require.Len(t, obs.seen, 2)
	assert.Equal(t, recordedRequest{"/journeys/{journeyID}", http.MethodGet, http.StatusTeapot}, obs.seen[0])
	assert.Equal(t, http.StatusOK, obs.seen[1].code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "/journeys/j-1", entries[0].ContextMap()["path"])
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer", "Bearer abc", "", "abc"},
		{"lowercase bearer", "bearer abc", "", "abc"},
		{"raw header", "abc", "", "abc"},
		{"cookie", "", "from-cookie", "from-cookie"},
		{"none", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "auth_token", Value: tt.cookie})
			}
			assert.Equal(t, tt.want, extractToken(req))
		})
	}
}

func TestAuthenticate_SetsUser(t *testing.T) {
	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: "s3cret"})
	require.NoError(t, err)
	gen, err := auth.NewJWTGenerator("s3cret", "", nil, time.Minute)
	require.NoError(t, err)
	token, err := gen.GenerateToken("user-42", "a@example.com", []string{"editor"})
	require.NoError(t, err)

	var got *auth.UserContext
	h := Authenticate(validator, pkgerrors.NewErrorHandler(nil, false), zap.NewNop())(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got, _ = auth.GetUserFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-42", got.UserID)
	assert.Equal(t, []string{"editor"}, got.Roles)
}
