// internal/app/system/httpjson/respond.go

// Package httpjson writes the JSON response envelope used by every REST
// endpoint. Success responses carry a data payload, failures carry an error
// string; both always carry a success flag so clients can branch without
// inspecting status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
)

// Envelope is the wire shape of every REST response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// WriteData writes a success envelope with payload data at the given status.
func WriteData(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope with data and a human-readable
// message, for mutations whose callers expect confirmation text.
func WriteMessage(w http.ResponseWriter, status int, data any, msg string) {
	write(w, status, Envelope{Success: true, Data: data, Message: msg})
}

// WriteError maps err to an HTTP status and writes a failure envelope.
// Internal errors are logged with their cause and reported to the client
// with a generic message.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if apperr.KindOf(err) == apperr.KindInternal && log != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Err != nil {
			log.Error("request failed", zap.String("message", ae.Message), zap.Error(ae.Err))
		} else {
			log.Error("request failed", zap.Error(err))
		}
	}
	write(w, status, Envelope{Success: false, Error: apperr.MessageOf(err)})
}

// WriteFailure writes a failure envelope with an explicit status, for
// conditions outside the kinded-error taxonomy (rate limiting, bad verbs).
func WriteFailure(w http.ResponseWriter, status int, msg string) {
	write(w, status, Envelope{Success: false, Error: msg})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
