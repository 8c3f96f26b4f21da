package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"nco-classifier-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and returns an INVALID_REQUEST error listing the failing fields.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInvalidRequest(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	fields := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		fields[fe.Field()] = fe.Tag()
	}

	appErr := apperror.NewInvalidRequest(strings.Join(msgs, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}
