package property

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Validate checks a single record against its declared constraints.
// Returns a readable error naming the offending field.
func Validate(p *FederalProperty) error {
	if p == nil {
		return errors.New("property cannot be nil")
	}

	if err := validate.Struct(p); err != nil {
		return formatValidationError(p.ID, err)
	}

	return nil
}

// ValidateAll checks every record in a dataset and reports the invalid ones.
// Valid records are returned so callers can index a partially clean feed
// while surfacing the rejects.
func ValidateAll(props []*FederalProperty) (valid []*FederalProperty, errs []error) {
	valid = make([]*FederalProperty, 0, len(props))
	for _, p := range props {
		if err := Validate(p); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, p)
	}
	return valid, errs
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(id string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fieldErr.Field()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be >= %s", fieldErr.Field(), fieldErr.Param()))
		case "lte":
			messages = append(messages, fmt.Sprintf("%s must be <= %s", fieldErr.Field(), fieldErr.Param()))
		case "ltefield":
			messages = append(messages, fmt.Sprintf("%s must not exceed %s", fieldErr.Field(), fieldErr.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag()))
		}
	}

	if id != "" {
		return fmt.Errorf("property %s: %s", id, strings.Join(messages, "; "))
	}
	return errors.New(strings.Join(messages, "; "))
}
