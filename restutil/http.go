// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package restutil holds the small HTTP handler conveniences shared
// by the relay's REST surface: wrapping a fallible handler into a
// plain http.HandlerFunc, status-coded errors, and strict JSON
// encode/decode helpers.
package restutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lightstake/sequencer/log"
)

var logger = log.WithContext("pkg", "restutil")

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError creates an error carrying an HTTP status code.
func HTTPError(cause error, status int) error {
	return &httpError{cause: cause, status: status}
}

// BadRequest is a convenience constructor for a 400 error.
func BadRequest(cause error) error {
	return &httpError{cause: cause, status: http.StatusBadRequest}
}

// Forbidden is a convenience constructor for a 403 error.
func Forbidden(cause error) error {
	return &httpError{cause: cause, status: http.StatusForbidden}
}

// HandlerFunc is like http.HandlerFunc but returns an error. If the
// returned error is an httpError, its status is responded with;
// otherwise http.StatusInternalServerError is used.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts a HandlerFunc to an http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}
		if he, ok := err.(*httpError); ok {
			if he.cause != nil {
				http.Error(w, he.cause.Error(), he.status)
			} else {
				w.WriteHeader(he.status)
			}
			return
		}
		logger.Debug("all errors should be wrapped in httpError", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// JSONContentType is the content-type header value for JSON responses.
const JSONContentType = "application/json; charset=utf-8"

// ParseJSON parses a JSON object in strict mode, rejecting unknown fields.
func ParseJSON(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON writes obj as a JSON response body.
func WriteJSON(w http.ResponseWriter, obj interface{}) error {
	w.Header().Set("Content-Type", JSONContentType)
	if err := json.NewEncoder(w).Encode(obj); err != nil {
		logger.Error("failed to write JSON response", "err", err)
	}
	return nil
}

// M is a shortcut for a loosely typed JSON object.
type M map[string]interface{}
