// Package http is the JSON API of LocalEats. Handlers authenticate the
// caller, open the role view for the session and translate between wire
// DTOs and the application layer.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// Server holds the use cases the HTTP handlers delegate to.
type Server struct {
	views   *views.Factory
	signUp  commands.SignUpCommandHandler
	signIn  queries.SignInQueryHandler
	getUser queries.GetUserQueryHandler
	tokens  ports.TokenIssuer
	now     func() time.Time
	logger  *slog.Logger
}

func NewServer(
	factory *views.Factory,
	signUp commands.SignUpCommandHandler,
	signIn queries.SignInQueryHandler,
	getUser queries.GetUserQueryHandler,
	tokens ports.TokenIssuer,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		views:   factory,
		signUp:  signUp,
		signIn:  signIn,
		getUser: getUser,
		tokens:  tokens,
		now:     time.Now,
		logger:  logger.With("component", "http"),
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// SignUp handles POST /api/v1/auth/signup.
func (s *Server) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSignUpCommand(req.Email, req.Password, req.Name, role, req.Phone, req.Address)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID, err := s.signUp.Handle(ctx, cmd)
	if err != nil {
		return err
	}
	query, err := queries.NewGetUserQuery(userID)
	if err != nil {
		return err
	}
	profile, err := s.getUser.Handle(ctx, query)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user signed up", "user_id", userID.String(), "role", role.String())
	return s.respondWithToken(c, http.StatusCreated, profile)
}

// SignIn handles POST /api/v1/auth/signin.
func (s *Server) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	query, err := queries.NewSignInQuery(req.Email, req.Password)
	if err != nil {
		return err
	}
	profile, err := s.signIn.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return s.respondWithToken(c, http.StatusOK, profile)
}

// GetProfile handles GET /api/v1/me.
func (s *Server) GetProfile(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}
	account, err := s.views.Account(session)
	if err != nil {
		return err
	}
	profile, err := account.Profile(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetOrder handles GET /api/v1/orders/{orderId} for any role allowed to
// see the order.
func (s *Server) GetOrder(c echo.Context) error {
	session, err := sessionFrom(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	account, err := s.views.Account(session)
	if err != nil {
		return err
	}
	details, err := account.Order(c.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

func (s *Server) respondWithToken(c echo.Context, status int, profile queries.UserView) error {
	token, expiresAt, err := s.tokens.Issue(profile.ID, profile.Role)
	if err != nil {
		return err
	}
	return c.JSON(status, AuthResponse{Token: token, ExpiresAt: expiresAt, User: profile})
}
