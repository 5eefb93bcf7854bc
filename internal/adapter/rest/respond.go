package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kpalmer/balancecal-backend/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a use-case error to a status code: ErrNotFound is
// 404, date parse failures are 400, everything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var parseErr *domain.ParseError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &parseErr):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
