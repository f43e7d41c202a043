package helpers

import (
	"encoding/json"
	"net/http"

	"blogapi/internal/validation"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

type ValidationResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: data, Error: ""})
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, errMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{Data: nil, Error: errMsg})
	if err != nil {
		return
	}
}

// ValidationError отдаёт 400 с пофиловыми диагностиками.
func ValidationError(w http.ResponseWriter, verrs *validation.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(ValidationResponse{
		Error:  "невалидные данные",
		Fields: verrs.Fields,
	})
}
