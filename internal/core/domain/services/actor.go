package services

import (
	"errors"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"
)

// Actor is the authenticated user requesting an operation.
type Actor struct {
	ID   kernel.UUID
	Role user.Role
}

func NewActor(id kernel.UUID, role user.Role) (Actor, error) {
	a := Actor{ID: id, Role: role}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func (a Actor) Validate() error {
	var errList []error
	if err := a.ID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("actor.id", err))
	}
	if err := a.Role.Validate(); err != nil {
		errList = append(errList, err)
	}
	return errors.Join(errList...)
}
