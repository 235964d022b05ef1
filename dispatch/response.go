package dispatch

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ResponseJSON writes v as an application/json body with status code.
// The body is encoded before any header is sent, so an encoding failure
// still produces a clean 500.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body.Bytes())
}
