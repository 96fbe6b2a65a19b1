package chi_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/scopekit/scopekit"
	scopekitchi "github.com/scopekit/scopekit/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionKey struct {
	id string
}

func sessionFromHeader(r *http.Request) scopekit.Key {
	return sessionKey{id: r.Header.Get("X-Session")}
}

func newTestManager(t *testing.T, factories ...scopekit.ServiceFactory) *scopekit.SynchronizedManager {
	t.Helper()

	return scopekit.Synchronized(
		scopekit.Configure().AddFactories(factories...).Build(),
	)
}

func TestScopeMiddleware(t *testing.T) {
	t.Run("handlers see the request scope's services", func(t *testing.T) {
		t.Parallel()

		factory := scopekit.NewFactory(func(builder *scopekit.Builder) error {
			builder.Put("session", builder.Key().(sessionKey).id)
			return nil
		}, nil)
		manager := newTestManager(t, factory)

		r := chiv5.NewRouter()
		r.Use(scopekitchi.ScopeMiddleware(manager, sessionFromHeader))
		r.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
			services, err := scopekitchi.FromContext(req.Context())
			require.NoError(t, err)

			session, ok := services.Get("session")
			require.True(t, ok)
			w.Write([]byte(session.(string)))
		})

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-Session", "abc123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "abc123", rec.Body.String())
	})

	t.Run("scope is torn down after the request", func(t *testing.T) {
		t.Parallel()

		manager := newTestManager(t)

		r := chiv5.NewRouter()
		r.Use(scopekitchi.ScopeMiddleware(manager, sessionFromHeader))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			assert.True(t, manager.HasServices(sessionKey{id: "abc123"}))
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Session", "abc123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.False(t, manager.HasServices(sessionKey{id: "abc123"}))
	})

	t.Run("setup failures return 500 by default", func(t *testing.T) {
		t.Parallel()

		factory := scopekit.NewFactory(func(*scopekit.Builder) error {
			return errors.New("bind failed")
		}, nil)
		manager := newTestManager(t, factory)

		handlerRan := false
		r := chiv5.NewRouter()
		r.Use(scopekitchi.ScopeMiddleware(manager, sessionFromHeader))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			handlerRan = true
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, handlerRan)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()

		factory := scopekit.NewFactory(func(*scopekit.Builder) error {
			return errors.New("bind failed")
		}, nil)
		manager := newTestManager(t, factory)

		var seen error
		r := chiv5.NewRouter()
		r.Use(scopekitchi.ScopeMiddleware(manager, sessionFromHeader,
			scopekitchi.WithErrorHandler(func(w http.ResponseWriter, req *http.Request, err error) {
				seen = err
				w.WriteHeader(http.StatusServiceUnavailable)
			}),
		))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.EqualError(t, seen, "bind failed")
	})

	t.Run("tear down error handler is invoked", func(t *testing.T) {
		t.Parallel()

		tearDownErr := errors.New("teardown failed")
		factory := scopekit.NewFactory(nil, func(*scopekit.Services) error {
			return tearDownErr
		})
		manager := newTestManager(t, factory)

		var seen error
		r := chiv5.NewRouter()
		r.Use(scopekitchi.ScopeMiddleware(manager, sessionFromHeader,
			scopekitchi.WithTearDownErrorHandler(func(err error) {
				seen = err
			}),
		))
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.ErrorIs(t, seen, tearDownErr)
	})
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, err := scopekitchi.FromContext(req.Context())
	assert.ErrorIs(t, err, scopekitchi.ErrNoServicesInContext)
}
