package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vinicius-dias23/roteiro3/item"
	"github.com/vinicius-dias23/roteiro3/store"
)

// ErrMissingID is returned when an id-scoped request has no {id} path parameter.
var ErrMissingID = errors.New("api: item id is required")

const (
	MsgInvalidBody   = "Invalid body. Expected valid JSON."
	MsgInvalidData   = "Invalid data"
	MsgMissingID     = "Item ID is required"
	MsgNotFound      = "Item not found"
	MsgInternalError = "Internal server error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
	Message string   `json:"message,omitempty"`
}

// classify maps an error to its status code and response body.
//
// Client input errors map to 400, a missing item to 404, and everything
// else, including store and publisher failures, to 500 with the failure
// detail in the message.
func classify(err error) (int, ErrorResponse) {
	var verr *item.ValidationError
	switch {
	case errors.Is(err, item.ErrMalformedBody):
		return http.StatusBadRequest, ErrorResponse{Error: MsgInvalidBody}
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Error: MsgInvalidData, Details: verr.Details}
	case errors.Is(err, ErrMissingID):
		return http.StatusBadRequest, ErrorResponse{Error: MsgMissingID}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Error: MsgNotFound}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: MsgInternalError, Message: err.Error()}
	}
}

// fail logs err and renders the matching error response.
func (h *Handler) fail(ctx context.Context, op string, err error) events.APIGatewayProxyResponse {
	status, res := classify(err)

	logLevel := slog.LevelInfo
	if status >= 500 {
		logLevel = slog.LevelError
	} else if status >= 400 {
		logLevel = slog.LevelWarn
	}
	h.logger.Log(ctx, logLevel, "request failed",
		"op", op,
		"status", status,
		"error", err,
	)

	return h.respond(ctx, status, res)
}
