// Package devserver serves the item handlers over plain HTTP for offline
// development, translating each request into an API Gateway proxy event.
package devserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/vinicius-dias23/roteiro3/internal/config"
)

const maxBodyBytes = 1 << 20 // 1 MB

// LambdaFunc is the signature of an API Gateway proxy handler.
type LambdaFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// ItemHandlers is the set of handlers mounted by the router. *api.Handler implements it.
type ItemHandlers interface {
	Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
	Get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
	List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
	Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
	Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
}

// NewRouter mounts the five item routes behind an allow-all CORS policy.
func NewRouter(h ItemHandlers, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Route("/items", func(r chi.Router) {
		r.Post("/", adapt("/items", h.Create, logger))
		r.Get("/", adapt("/items", h.List, logger))
		r.Get("/{id}", adapt("/items/{id}", h.Get, logger))
		r.Put("/{id}", adapt("/items/{id}", h.Update, logger))
		r.Delete("/{id}", adapt("/items/{id}", h.Delete, logger))
	})

	return r
}

// adapt converts an HTTP request into a proxy event, invokes fn and writes
// the proxy response back.
func adapt(resource string, fn LambdaFunc, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}

		req := events.APIGatewayProxyRequest{
			Resource:   resource,
			Path:       r.URL.Path,
			HTTPMethod: r.Method,
			Headers:    map[string]string{},
			Body:       string(body),
		}
		for k := range r.Header {
			req.Headers[k] = r.Header.Get(k)
		}
		if q := r.URL.Query(); len(q) > 0 {
			req.QueryStringParameters = map[string]string{}
			for k := range q {
				req.QueryStringParameters[k] = q.Get(k)
			}
		}
		if id := chi.URLParam(r, "id"); id != "" {
			req.PathParameters = map[string]string{"id": id}
		}

		res, err := fn(r.Context(), req)
		if err != nil {
			logger.ErrorContext(r.Context(), "handler returned error", "path", req.Path, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		out := []byte(res.Body)
		if res.IsBase64Encoded {
			if out, err = base64.StdEncoding.DecodeString(res.Body); err != nil {
				logger.ErrorContext(r.Context(), "error decoding response body", "error", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
		}
		for k, v := range res.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(res.StatusCode)
		if _, err := w.Write(out); err != nil {
			logger.WarnContext(r.Context(), "error writing response", "error", err)
		}
	}
}

// Run serves handler until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, cfg config.HTTP, handler http.Handler, logger *slog.Logger) error {
	srv := newServer(ctx, cfg, handler)

	errc := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "offline server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer builds the HTTP server. Request contexts keep ctx's values but
// not its cancellation, so Shutdown can drain in-flight requests.
func newServer(ctx context.Context, cfg config.HTTP, handler http.Handler) *http.Server {
	base := context.WithoutCancel(ctx)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return base
		},
	}
}
