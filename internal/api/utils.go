package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

// ErrorResponse writes the failure envelope advertised in the API docs,
// tagged with the chi request id.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, types.Response{
		Success:   false,
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// AuthErrorResponse writes a rejected authentication attempt. Only the
// rejection's public reason reaches the client.
func AuthErrorResponse(w http.ResponseWriter, r *http.Request, authErr *types.AuthError) {
	if authErr.Challenge {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	ErrorResponse(w, r, authErr.StatusCode(), authErr.Reason)
}

// WriteJSONResponse encodes the data to JSON and writes the response header and body.
func WriteJSONResponse(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	js, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal JSON response",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(js); err != nil {
		// Status is already on the wire.
		slog.ErrorContext(r.Context(), "Failed to write response body",
			slog.Any("error", err),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
}

// maxBodyBytes caps request bodies; every request in this API is a few
// short strings.
const maxBodyBytes = 64 << 10

// DecodeJSONBody decodes exactly one JSON value into dst, rejecting unknown
// fields. Failures wrap types.ErrBadRequest and their text is safe to return
// to the client.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s", types.ErrBadRequest, describeDecodeError(err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must only contain a single JSON value", types.ErrBadRequest)
	}
	return nil
}

func describeDecodeError(err error) string {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		maxBytesErr  *http.MaxBytesError
		invalidTgErr *json.InvalidUnmarshalError
	)
	switch {
	case errors.As(err, &invalidTgErr):
		panic(fmt.Errorf("decode target must be a non-nil pointer: %w", err))
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("body contains badly-formed JSON (at character %d)", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "body contains badly-formed JSON"
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf("body contains incorrect JSON type for field %q", typeErr.Field)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("body contains incorrect JSON type (at character %d)", typeErr.Offset)
	case errors.Is(err, io.EOF):
		return "body must not be empty"
	case errors.As(err, &maxBytesErr):
		return fmt.Sprintf("body must not be larger than %d bytes", maxBytesErr.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		// encoding/json has no typed error for this case.
		return fmt.Sprintf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
	default:
		return "body could not be decoded"
	}
}
