package http

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"localeats/internal/adapters/out/metrics"
	"localeats/internal/core/application/views"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"
)

const sessionKey = "session"

// bearerAuth verifies the JWT in the Authorization header and stores the
// resulting views.Session on the context.
func bearerAuth(tokens ports.TokenIssuer) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			userID, role, err := tokens.Verify(token)
			if err != nil {
				return false, err
			}
			session, err := views.NewSession(userID, role)
			if err != nil {
				return false, errs.NewUnauthorizedError("token names no valid user")
			}
			c.Set(sessionKey, session)
			return true, nil
		},
		ErrorHandler: func(err error, _ echo.Context) error {
			if errors.Is(err, errs.ErrUnauthorized) {
				return err
			}
			return errs.NewUnauthorizedError("missing or malformed bearer token")
		},
	})
}

func sessionFrom(c echo.Context) (views.Session, error) {
	session, ok := c.Get(sessionKey).(views.Session)
	if !ok {
		return views.Session{}, errs.NewUnauthorizedError("not signed in")
	}
	return session, nil
}

// observe records request counts and durations by route template.
func observe(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := m.StartRequest(c.Request().Method, c.Path())
			err := next(c)
			if err != nil {
				// Render now so the recorded status is the one sent.
				c.Error(err)
			}
			done(c.Response().Status)
			return nil
		}
	}
}

// validateRequests checks requests against the OpenAPI document. Routes
// the document does not describe pass through untouched.
func validateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err = openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}
			return next(c)
		}
	}, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			)
			return nil
		},
	})
}

var registerDocsOnce sync.Once

// registerDocs publishes the OpenAPI document to the swag registry that
// the Swagger UI handler reads from.
func registerDocs(doc *openapi3.T) error {
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerDocsOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(raw),
			LeftDelim:        "{%",
			RightDelim:       "%}",
		})
	})
	return nil
}
