package http

import (
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds a required uuid path parameter.
func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// queryString binds an optional string query parameter; absent yields "".
func queryString(c echo.Context, name string) (string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

// queryDay reads the optional day and tz parameters. The result is
// midnight of the requested day in the requested zone; today in UTC when
// both are absent.
func queryDay(c echo.Context, now time.Time) (time.Time, error) {
	tz, err := queryString(c, "tz")
	if err != nil {
		return time.Time{}, err
	}
	loc := time.UTC
	if tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return time.Time{}, errs.NewValueIsInvalidErrorWithCause("tz", err)
		}
	}

	var day *openapi_types.Date
	if err = runtime.BindQueryParameter("form", true, false, "day", c.QueryParams(), &day); err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("day", err)
	}
	if day == nil {
		now = now.In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc), nil
}
