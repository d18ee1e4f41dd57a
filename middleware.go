package requests

import (
	"context"
	"net/http"

	"github.com/justinas/alice"
	"go.uber.org/zap"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying store.
func NewContext(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, contextKey{}, store)
}

// FromContext returns the *Store carried by ctx, if any.
func FromContext(ctx context.Context) (*Store, bool) {
	store, ok := ctx.Value(contextKey{}).(*Store)
	return store, ok && store != nil
}

// FromRequest returns the *Store that Middleware attached to request.
// If there is none, a new one is parsed from request and attached to
// it in place, so later calls see the same Store (and its changes)
// without reading the body again.
func FromRequest(request *http.Request) *Store {
	if store, ok := FromContext(request.Context()); ok {
		return store
	}
	store := New(request)
	*request = *request.WithContext(NewContext(request.Context(), store))
	return store
}

// Middleware creates a *Store for every request using cfg and makes it
// available to next through FromRequest.  EnvFiles are read once, when
// Middleware is called.  Requests for which no Store can be built are
// answered with 500 Internal Server Error.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	cfg = cfg.PreloadEnv()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			store, err := NewFromConfig(request, cfg)
			if err != nil {
				Logger().Error("could not create request store", zap.Error(err))
				http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(response, request.WithContext(NewContext(request.Context(), store)))
		})
	}
}

// Chain returns an alice.Chain that runs Middleware(cfg) ahead of
// constructors, so each of them can use FromRequest.
func Chain(cfg Config, constructors ...alice.Constructor) alice.Chain {
	return alice.New(Middleware(cfg)).Append(constructors...)
}
