package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vinicius-dias23/roteiro3/item"
)

// The handlers below return a nil error in every case. Failures are encoded
// in the response so API Gateway never sees a function error.

// Create handles POST /items.
func (h *Handler) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	const op = "create"
	h.logRequest(ctx, op, req)

	raw, err := body(req)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}
	fields, err := item.ParseFields(raw)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}
	in, details := item.ValidateCreate(fields)
	if len(details) > 0 {
		return h.fail(ctx, op, &item.ValidationError{Details: details}), nil
	}

	it := in.NewItem(h.newID(), h.now())
	if err := h.store.Put(ctx, it); err != nil {
		return h.fail(ctx, op, fmt.Errorf("put item: %w", err)), nil
	}

	// The item is already stored; a publish failure is reported as a 500.
	if err := h.publisher.Publish(ctx, item.CreatedEvent(it)); err != nil {
		return h.fail(ctx, op, fmt.Errorf("publish created event: %w", err)), nil
	}

	h.logger.InfoContext(ctx, "item created", "itemId", it.ID)
	return h.respond(ctx, http.StatusCreated, ItemResponse{
		Message: "Item created successfully",
		Item:    it,
	}), nil
}

// Get handles GET /items/{id}.
func (h *Handler) Get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	const op = "get"
	h.logRequest(ctx, op, req)

	id, err := pathID(req)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}

	it, err := h.store.Get(ctx, id)
	if err != nil {
		return h.fail(ctx, op, fmt.Errorf("get item %s: %w", id, err)), nil
	}

	return h.respond(ctx, http.StatusOK, ItemResponse{
		Message: "Item found",
		Item:    *it,
	}), nil
}

// List handles GET /items. It returns the whole table, unordered.
func (h *Handler) List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	const op = "list"
	h.logRequest(ctx, op, req)

	items, err := h.store.Scan(ctx)
	if err != nil {
		return h.fail(ctx, op, fmt.Errorf("scan items: %w", err)), nil
	}
	if items == nil {
		items = []item.Item{}
	}

	return h.respond(ctx, http.StatusOK, ListResponse{
		Message: "Items listed successfully",
		Count:   len(items),
		Items:   items,
	}), nil
}

// Update handles PUT /items/{id}. Only the fields present in the body are
// changed; updatedAt is always refreshed.
func (h *Handler) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	const op = "update"
	h.logRequest(ctx, op, req)

	id, err := pathID(req)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}
	raw, err := body(req)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}
	fields, err := item.ParseFields(raw)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}
	patch, details := item.ValidateUpdate(fields)
	if len(details) > 0 {
		return h.fail(ctx, op, &item.ValidationError{Details: details}), nil
	}

	existing, err := h.store.Get(ctx, id)
	if err != nil {
		return h.fail(ctx, op, fmt.Errorf("get item %s: %w", id, err)), nil
	}
	if patch.Empty() {
		h.logger.DebugContext(ctx, "update without recognized fields", "itemId", id)
	}

	updatedAt := item.NextTimestamp(existing.UpdatedAt, h.now())
	updated, err := h.store.Update(ctx, id, patch, updatedAt)
	if err != nil {
		return h.fail(ctx, op, fmt.Errorf("update item %s: %w", id, err)), nil
	}

	if err := h.publisher.Publish(ctx, item.UpdatedEvent(*updated)); err != nil {
		return h.fail(ctx, op, fmt.Errorf("publish updated event: %w", err)), nil
	}

	h.logger.InfoContext(ctx, "item updated", "itemId", id)
	return h.respond(ctx, http.StatusOK, ItemResponse{
		Message: "Item updated successfully",
		Item:    *updated,
	}), nil
}

// Delete handles DELETE /items/{id}.
func (h *Handler) Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	const op = "delete"
	h.logRequest(ctx, op, req)

	id, err := pathID(req)
	if err != nil {
		return h.fail(ctx, op, err), nil
	}

	if _, err := h.store.Get(ctx, id); err != nil {
		return h.fail(ctx, op, fmt.Errorf("get item %s: %w", id, err)), nil
	}
	if err := h.store.Delete(ctx, id); err != nil {
		return h.fail(ctx, op, fmt.Errorf("delete item %s: %w", id, err)), nil
	}

	h.logger.InfoContext(ctx, "item deleted", "itemId", id)
	return h.respond(ctx, http.StatusOK, DeleteResponse{
		Message: "Item deleted successfully",
		ItemID:  id,
	}), nil
}
