package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"localeats/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var _ echo.Validator = (*requestValidator)(nil)

// requestValidator checks bound request bodies against their validate
// tags and reports failures as validation errors named by JSON field.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	errList := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errList = append(errList, fieldError(fe))
	}
	return errors.Join(errList...)
}

func fieldError(fe validator.FieldError) error {
	name := fe.Namespace()
	if _, rest, ok := strings.Cut(name, "."); ok {
		name = rest
	}
	switch fe.Tag() {
	case "required":
		return errs.NewValueIsRequiredError(name)
	case "min", "gte":
		return errs.NewValueIsOutOfRangeError(name, fe.Value(), fe.Param(), nil)
	default:
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("must satisfy %s %s", fe.Tag(), fe.Param()))
	}
}

// bindBody decodes the JSON body into dst and validates it.
func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return c.Validate(dst)
}
