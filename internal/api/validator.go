package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "yanyu/backend/internal/errors"
)

// The validator caches struct metadata, so a single instance is shared.
var (
	validate *validator.Validate
	once     sync.Once
)

// maxBodyBytes caps request bodies; file uploads are the largest payloads.
const maxBodyBytes = 32 << 20

func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks a payload struct against its `validate` tags and returns a
// wrapped app_errors.ErrValidation listing every failed field.
func validateRequest(payload interface{}) error {
	v := getInstance()
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	var errorMessages []string
	for _, fieldErr := range validationErrors {
		// Example output: "Field 'Role' failed on the 'oneof' tag"
		errMsg := fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag())
		errorMessages = append(errorMessages, errMsg)
	}

	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(errorMessages, "; "))
}

// decodeAndValidate reads a JSON body into payload and validates it. Malformed JSON,
// including a field of the wrong type, is a validation error.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, payload interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid request payload: %s", app_errors.ErrValidation, err.Error())
	}
	return validateRequest(payload)
}
