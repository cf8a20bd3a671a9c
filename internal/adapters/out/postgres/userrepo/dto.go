package userrepo

import (
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"

	"github.com/google/uuid"
)

type UserDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"uniqueIndex;not null"`
	Name         string     `gorm:"not null"`
	Role         int        `gorm:"not null"`
	Phone        string     `gorm:"not null;default:''"`
	Address      string     `gorm:"not null;default:''"`
	IsOnline     bool       `gorm:"not null;default:false"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	var restaurantID *uuid.UUID
	if id := u.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	return UserDTO{
		ID:           u.ID().Bytes(),
		Email:        u.Email(),
		Name:         u.Name(),
		Role:         int(u.Role()),
		Phone:        u.Phone(),
		Address:      u.Address(),
		IsOnline:     u.IsOnline(),
		RestaurantID: restaurantID,
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, idErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if idErr != nil {
			return nil, idErr
		}
		restaurantID = &rID
	}

	return user.RestoreUser(
		id,
		dto.Email,
		dto.Name,
		user.Role(dto.Role),
		dto.Phone,
		dto.Address,
		dto.IsOnline,
		restaurantID,
	)
}
