package ports

import (
	"context"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
)

// IdentityProvider owns credentials. Users are created in the user
// repository with the id it assigns.
type IdentityProvider interface {
	Register(ctx context.Context, email, password string) (kernel.UUID, error)
	Authenticate(ctx context.Context, email, password string) (kernel.UUID, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(userID kernel.UUID, role user.Role) (token string, expiresAt time.Time, err error)
	Verify(token string) (kernel.UUID, user.Role, error)
}
