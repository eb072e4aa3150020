package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNotFound matches an *APIError with status 404.
	ErrNotFound = errors.New("not found")

	// ErrResponseTooLarge is returned when a body exceeds the client's read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// APIError is a non-2xx gateway response.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	switch {
	case len(e.Errors) > 0:
		return strings.Join(e.Errors, ", ")
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
}

// Is reports whether the error matches ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// newAPIError reads the gateway's error body. The backends answer with
// {"message": ...}, {"errors": [...]}, {"errors": {"field": "..."}} or a bare
// {"error": ...}.
func newAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Message = body.Message
	if apiErr.Message == "" {
		apiErr.Message = body.Error
	}
	apiErr.Errors = decodeErrors(body.Errors)
	return apiErr
}

func decodeErrors(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}

	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]string, 0, len(keys))
		for _, k := range keys {
			out = append(out, k+": "+fields[k])
		}
		return out
	}

	return nil
}
