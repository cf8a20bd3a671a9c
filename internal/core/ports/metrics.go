package ports

import (
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"
)

// TransitionRecorder counts accepted lifecycle moves and lost claim races.
type TransitionRecorder interface {
	RecordTransition(from, to order.Status, role user.Role)
	RecordClaimConflict()
}
