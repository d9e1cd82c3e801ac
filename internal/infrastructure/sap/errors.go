package sap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// TransportError fallo al hablar con el middleware: red, timeout o HTTP no 2xx.
// Message ya trae el texto más útil disponible para el operario.
type TransportError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// extractMessage prioridad: Message → ModelState (JSON) → cuerpo crudo → estado HTTP.
func extractMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if m := strings.TrimSpace(eb.Message); m != "" {
			return m
		}
		if len(eb.ModelState) > 0 && string(eb.ModelState) != "null" {
			var compact bytes.Buffer
			if json.Compact(&compact, eb.ModelState) == nil {
				return compact.String()
			}
			return string(eb.ModelState)
		}
	}
	if raw := strings.TrimSpace(string(body)); raw != "" {
		return raw
	}
	return fmt.Sprintf("SAP middleware respondió HTTP %d %s", status, http.StatusText(status))
}
