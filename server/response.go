package server

import (
	"encoding/json"
	"net/http"

	"github.com/teranos/qntx-dims/errors"
)

// maxBodyBytes caps request bodies and websocket frames
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeErrorFor maps err to a status: invalid input is the caller's fault,
// anything else is ours
func writeErrorFor(w http.ResponseWriter, err error) {
	if errors.IsInvalidInputError(err) {
		writeError(w, http.StatusBadRequest, errorMessage(err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

// errorMessage appends hints so callers see how to fix the request
func errorMessage(err error) string {
	msg := err.Error()
	if hint := errors.FlattenHints(err); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

// readJSON decodes a bounded JSON request body, rejecting unknown fields
func readJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		err = errors.WrapInvalidInput(err, "invalid request body")
		writeError(w, http.StatusBadRequest, err.Error())
		return err
	}
	return nil
}

// requireMethod checks if the request method matches the expected method
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}
