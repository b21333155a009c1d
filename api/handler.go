// Package api implements the item CRUD handlers for API Gateway proxy events.
package api

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/vinicius-dias23/roteiro3/item"
)

// ItemStore is the storage the handlers depend on. *store.Store implements it.
type ItemStore interface {
	Get(ctx context.Context, id string) (*item.Item, error)
	Put(ctx context.Context, it item.Item) error
	Update(ctx context.Context, id string, patch item.Patch, updatedAt string) (*item.Item, error)
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]item.Item, error)
}

// Publisher announces item mutations. *notify.Publisher implements it.
type Publisher interface {
	Publish(ctx context.Context, ev item.Event) error
}

// Handler serves the item endpoints. It holds no per-request state and is
// safe for concurrent use.
type Handler struct {
	store     ItemStore
	publisher Publisher
	logger    *slog.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithIDGenerator overrides the item id generator.
func WithIDGenerator(newID func() string) Option {
	return func(h *Handler) { h.newID = newID }
}

// NewHandler creates a new Handler.
func NewHandler(s ItemStore, p Publisher, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		store:     s,
		publisher: p,
		logger:    logger.With("component", "api"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) logRequest(ctx context.Context, op string, req events.APIGatewayProxyRequest) {
	h.logger.InfoContext(ctx, "request received",
		"op", op,
		"method", req.HTTPMethod,
		"path", req.Path,
		"requestId", req.RequestContext.RequestID,
	)
}

// pathID returns the {id} path parameter as given.
func pathID(req events.APIGatewayProxyRequest) (string, error) {
	id := req.PathParameters["id"]
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

// body returns the raw request body, decoding it when API Gateway delivered
// it base64 encoded.
func body(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	b, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, item.ErrMalformedBody
	}
	return b, nil
}
