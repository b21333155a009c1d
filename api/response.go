package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vinicius-dias23/roteiro3/item"
)

// ItemResponse is returned by create, read and update.
type ItemResponse struct {
	Message string    `json:"message"`
	Item    item.Item `json:"item"`
}

// ListResponse is returned by list.
type ListResponse struct {
	Message string      `json:"message"`
	Count   int         `json:"count"`
	Items   []item.Item `json:"items"`
}

// DeleteResponse is returned by delete.
type DeleteResponse struct {
	Message string `json:"message"`
	ItemID  string `json:"itemId"`
}

// Headers returns the headers sent on every response.
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	}
}

func (h *Handler) respond(ctx context.Context, status int, v any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.ErrorContext(ctx, "error encoding response", "error", err)
		status = http.StatusInternalServerError
		b, _ = json.Marshal(ErrorResponse{Error: MsgInternalError, Message: err.Error()})
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    Headers(),
		Body:       string(b),
	}
}
