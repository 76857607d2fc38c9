package validation

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// Use a singleton validator instance to avoid recreating it
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their form name so messages line up with inputs
		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})

	return validatorInstance
}

// Validate checks input against its `validate` struct tags and returns one
// message per failing field, looked up in messages by "field.tag".
// Only the first failing rule of a field is reported.
// A nil result means the input is valid.
func Validate(input any, messages map[string]string) map[string]string {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		slog.Error("validation failed to run", "error", err)
		return map[string]string{"_": "invalid input"}
	}

	result := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := result[field]; seen {
			continue
		}

		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			slog.Debug("validation error message not found", "key", field+"."+fe.Tag())
			msg = "invalid"
		}
		result[field] = msg
	}

	return result
}
