package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/codecraft/backend/internal/repository"
	"github.com/codecraft/backend/internal/service"
	"github.com/go-playground/validator/v10"
)

const maxJSONBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

type normalizer interface {
	Normalize()
}

// decodeBody decodes a JSON body into dst, normalizes it when dst supports
// that, and runs its validate tags. On failure it writes the 400 response and
// returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationCode(err))
		return false
	}
	return true
}

// validationCode turns the first failed rule into "<field>_<rule>",
// e.g. "email_required".
func validationCode(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return ve[0].Field() + "_" + ve[0].Tag()
	}
	return "invalid_input"
}

// errorStatus maps service and repository errors to an HTTP status and an
// error code.
func errorStatus(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	}
	switch repository.KindOf(err) {
	case repository.KindValidation:
		return http.StatusBadRequest, "invalid_input"
	case repository.KindConflict:
		return http.StatusConflict, "conflict"
	}
	return http.StatusInternalServerError, fallback
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	status, code := errorStatus(err, fallback)
	writeError(w, status, code)
}
