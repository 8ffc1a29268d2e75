package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ndewijer/Stock-Valuation-Backend/internal/apperrors"
	"github.com/ndewijer/Stock-Valuation-Backend/internal/model"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSymbol checks the ticker format. Universe membership is checked by
// the stock service, not here.
func ValidateSymbol(symbol string) error {
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidSymbol, symbol)
	}
	return nil
}

// ParsePeriod parses the period query value. Empty means annual.
func ParsePeriod(raw string) (model.Period, error) {
	if strings.TrimSpace(raw) == "" {
		return model.PeriodAnnual, nil
	}
	p := model.Period(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidPeriod, raw)
	}
	return p, nil
}

// ValidateAssumptions checks every assumption against its allowed range.
// WACC or required return not exceeding terminal growth is accepted here;
// the affected model returns zero instead.
func ValidateAssumptions(a model.Assumptions) error {
	err := validate.Struct(a)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fieldName(fe)] = describe(fe)
	}
	return &Error{Fields: fields}
}

// fieldName flattens map-key and map-value paths such as
// "Assumptions.model_weights[capm]" to "model_weights[capm]".
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Map {
			return fmt.Sprintf("must have at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("unknown model, must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
