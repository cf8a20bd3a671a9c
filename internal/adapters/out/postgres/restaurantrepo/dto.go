package restaurantrepo

import (
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Name         string          `gorm:"index;not null"`
	Description  string          `gorm:"not null;default:''"`
	Address      string          `gorm:"not null"`
	Phone        string          `gorm:"not null;default:''"`
	DeliveryTime string          `gorm:"not null;default:''"`
	DeliveryFee  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Rating       float64         `gorm:"not null;default:0"`
	IsOpen       bool            `gorm:"not null"`
	// Menu is replaced as a whole on every update.
	Menu []MenuItemDTO `gorm:"type:text;serializer:json;not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

type MenuItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	IsAvailable bool            `json:"isAvailable"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

func fromDomain(r *restaurant.Restaurant) RestaurantDTO {
	profile := r.Profile()
	menu := r.Menu()
	items := make([]MenuItemDTO, 0, len(menu))
	for _, item := range menu {
		items = append(items, MenuItemDTO{
			ID:          item.ID().Bytes(),
			Name:        item.Name(),
			Description: item.Description(),
			Price:       item.Price().Decimal(),
			Category:    item.Category(),
			IsAvailable: item.IsAvailable(),
			ImageURL:    item.ImageURL(),
		})
	}

	return RestaurantDTO{
		ID:           r.ID().Bytes(),
		OwnerID:      r.OwnerID().Bytes(),
		Name:         profile.Name,
		Description:  profile.Description,
		Address:      profile.Address,
		Phone:        profile.Phone,
		DeliveryTime: profile.DeliveryTime,
		DeliveryFee:  profile.DeliveryFee.Decimal(),
		Rating:       r.Rating(),
		IsOpen:       r.IsOpen(),
		Menu:         items,
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	menu := make([]restaurant.MenuItem, 0, len(dto.Menu))
	for _, itemDTO := range dto.Menu {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(itemDTO.Price)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := restaurant.NewMenuItem(
			itemID,
			itemDTO.Name,
			itemDTO.Description,
			price,
			itemDTO.Category,
			itemDTO.IsAvailable,
			itemDTO.ImageURL,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		menu = append(menu, item)
	}

	return restaurant.RestoreRestaurant(
		id,
		ownerID,
		restaurant.Profile{
			Name:         dto.Name,
			Description:  dto.Description,
			Address:      dto.Address,
			Phone:        dto.Phone,
			DeliveryTime: dto.DeliveryTime,
			DeliveryFee:  fee,
		},
		dto.Rating,
		dto.IsOpen,
		menu,
	)
}
