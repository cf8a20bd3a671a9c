package order

import (
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
)

// StatusChange is one audited lifecycle move.
type StatusChange struct {
	OrderID   kernel.UUID
	From      Status
	To        Status
	ActorID   kernel.UUID
	ActorRole user.Role
	At        time.Time
}
