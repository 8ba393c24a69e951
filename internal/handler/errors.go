package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"rhiza/internal/adapter"
	"rhiza/internal/client"
	"rhiza/internal/domain"
	"rhiza/internal/engine"
	"rhiza/internal/service"
)

// classify maps a service error to an HTTP status and a short title
func classify(err error) (int, string) {
	var (
		integrity  *domain.DataIntegrityError
		validation *adapter.ValidationError
		mount      *domain.MountError
		apiErr     *client.APIError
		urlErr     *url.Error
	)

	switch {
	case errors.As(err, &integrity), errors.As(err, &validation), errors.Is(err, domain.ErrEmptyGraph):
		return http.StatusUnprocessableEntity, "Invalid graph data"
	case errors.As(err, &mount):
		return http.StatusNotFound, "Unknown container"
	case errors.Is(err, domain.ErrDisposed), errors.Is(err, domain.ErrNotInitialized):
		return http.StatusConflict, "No visualization in container"
	case errors.As(err, &apiErr):
		if apiErr.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, "Backend error"
		}
		return apiErr.Status, "Backend error"
	case errors.Is(err, client.ErrInvalidWord),
		errors.Is(err, domain.ErrUnknownNode),
		errors.Is(err, engine.ErrNotDragging),
		errors.Is(err, engine.ErrInvalidGesture),
		errors.Is(err, service.ErrInvalidPhase),
		errors.Is(err, service.ErrUnknownBackend):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Backend timeout"
	case errors.As(err, &urlErr):
		return http.StatusBadGateway, "Backend unavailable"
	}
	return http.StatusInternalServerError, "Internal error"
}
