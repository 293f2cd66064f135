package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruudy-sib/udpout/internal/domain/entity"
	"github.com/ruudy-sib/udpout/internal/port/primary"
)

// maxBodyBytes bounds a single ingest request.
const maxBodyBytes = 1 << 20

// EventsHandler handles POST /events requests.
type EventsHandler struct {
	forwarder primary.Forwarder
	logger    *zap.Logger
}

// NewEventsHandler creates a handler for event ingestion.
func NewEventsHandler(forwarder primary.Forwarder, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		forwarder: forwarder,
		logger:    logger.Named("events-handler"),
	}
}

// ServeHTTP accepts a JSON object or an array of objects and forwards each
// one. Delivery outcomes are not reported back to the caller.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: "method not allowed",
			Code:  "METHOD_NOT_ALLOWED",
		})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "request body too large",
				Code:  "BODY_TOO_LARGE",
			})
			return
		}
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "unreadable request body",
			Code:  "INVALID_BODY",
		})
		return
	}

	events, err := decodeEvents(body)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_BODY",
		})
		return
	}

	for _, event := range events {
		h.forwarder.Receive(r.Context(), event)
	}

	h.logger.Debug("events accepted", zap.Int("count", len(events)))
	respondJSON(w, http.StatusAccepted, AcceptedResponse{Accepted: len(events)})
}

func decodeEvents(body []byte) ([]*entity.Event, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty request body")
	}

	var objects []map[string]any
	switch body[0] {
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, errors.New("invalid JSON object")
		}
		objects = []map[string]any{obj}
	case '[':
		if err := json.Unmarshal(body, &objects); err != nil {
			return nil, errors.New("expected an array of JSON objects")
		}
	default:
		return nil, errors.New("expected a JSON object or array")
	}

	events := make([]*entity.Event, 0, len(objects))
	for _, obj := range objects {
		if obj == nil {
			return nil, errors.New("null is not an event")
		}
		events = append(events, entity.EventFromFields(obj))
	}
	return events, nil
}
