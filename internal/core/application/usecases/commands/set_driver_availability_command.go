package commands

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

type SetDriverAvailabilityCommand struct {
	driverID kernel.UUID
	online   bool

	guard guard.ConstructorGuard
}

func NewSetDriverAvailabilityCommand(driverID kernel.UUID, online bool) (SetDriverAvailabilityCommand, error) {
	if err := driverID.Validate(); err != nil {
		return SetDriverAvailabilityCommand{}, errs.NewValueIsRequiredErrorWithCause("driverId", err)
	}
	return SetDriverAvailabilityCommand{
		driverID: driverID,
		online:   online,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

func (c SetDriverAvailabilityCommand) DriverID() kernel.UUID { return c.driverID }
func (c SetDriverAvailabilityCommand) Online() bool          { return c.online }
