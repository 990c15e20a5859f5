package util

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteMessage writes the {msg} error/success body every endpoint uses.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"msg": msg})
}

type FieldError struct {
	Msg string `json:"msg"`
}

func WriteValidationErrors(w http.ResponseWriter, errs []FieldError) {
	WriteJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
}
