package handler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"petclinic-console/internal/model"
	"petclinic-console/internal/service"
	"petclinic-console/internal/sse"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps service errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		logger.Warn().Strs("errors", ve.Fields).Msg("validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error:  model.ErrCodeValidation,
			Errors: ve.Fields,
		})
		return
	}

	var de *model.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case model.ErrCodeInventoryNotFound, model.ErrCodeProductNotFound, model.ErrCodeVisitNotFound:
			status = http.StatusNotFound
		}
		logger.Warn().Str("code", de.Code).Int("status", status).Msg(de.Message)
		writeJSON(w, status, model.ErrorResponse{Error: de.Code, Message: de.Message})
		return
	}

	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, fallback, logger)
}

// wantsStream reports whether the client asked for text/event-stream.
func wantsStream(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mt, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mt == "text/event-stream" {
			return true
		}
	}
	return false
}

// writeList sends items as one SSE event per entity when the client streams,
// and as a JSON array otherwise.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T, logger zerolog.Logger) {
	if !wantsStream(r) {
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode stream item")
			return
		}
		if err := sse.WriteEvent(w, sse.Event{Data: string(data)}); err != nil {
			logger.Debug().Err(err).Msg("stream client went away")
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
	logger.Debug().Int("count", len(items)).Msg("stream sent")
}
