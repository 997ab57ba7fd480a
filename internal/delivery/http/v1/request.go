package v1

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"jbfsport-backend/internal/domain"
	"jbfsport-backend/internal/usecase"
	"jbfsport-backend/pkg/logger"
	"jbfsport-backend/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// report json field names rather than Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// decodeJSON reads a size-limited JSON body into dst and validates it.
// On failure it writes the 400 response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// writeUsecaseError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as a bare 500.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	var bulkErr *usecase.BulkError
	switch {
	case errors.As(err, &bulkErr):
		utils.WriteErrorDetails(w, http.StatusBadRequest, bulkErr.Message, bulkErr.Details)
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		utils.WriteError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrHasChildren),
		errors.Is(err, domain.ErrParentNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	utils.WriteJSON(w, status, map[string]string{"message": msg})
}
