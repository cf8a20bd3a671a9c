package http

import (
	"time"

	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
)

type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=customer driver restaurant"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      queries.UserView `json:"user"`
}

type RestaurantProfileRequest struct {
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Address      string  `json:"address" validate:"required"`
	Phone        string  `json:"phone"`
	DeliveryTime string  `json:"deliveryTime"`
	DeliveryFee  float64 `json:"deliveryFee" validate:"gte=0"`
}

func (r RestaurantProfileRequest) toProfile() (restaurant.Profile, error) {
	fee, err := kernel.MoneyFromFloat(r.DeliveryFee)
	if err != nil {
		return restaurant.Profile{}, err
	}
	return restaurant.Profile{
		Name:         r.Name,
		Description:  r.Description,
		Address:      r.Address,
		Phone:        r.Phone,
		DeliveryTime: r.DeliveryTime,
		DeliveryFee:  fee,
	}, nil
}

// MenuItemRequest describes one menu entry. A missing id creates a new
// item; a missing isAvailable means available.
type MenuItemRequest struct {
	ID          string   `json:"id" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	IsAvailable *bool    `json:"isAvailable"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}

func (r MenuItemRequest) toMenuItem() (restaurant.MenuItem, error) {
	id := kernel.NewUUID()
	if r.ID != "" {
		var err error
		if id, err = kernel.UUIDFromString(r.ID); err != nil {
			return restaurant.MenuItem{}, err
		}
	}
	var price kernel.Money
	if r.Price != nil {
		var err error
		if price, err = kernel.MoneyFromFloat(*r.Price); err != nil {
			return restaurant.MenuItem{}, err
		}
	}
	available := r.IsAvailable == nil || *r.IsAvailable
	return restaurant.NewMenuItem(id, r.Name, r.Description, price, r.Category, available, r.ImageURL)
}

type ReplaceMenuRequest struct {
	Items []MenuItemRequest `json:"items" validate:"dive"`
}

type OpenRequest struct {
	IsOpen *bool `json:"isOpen" validate:"required"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

type OnlineRequest struct {
	Online *bool `json:"online" validate:"required"`
}

type OrderLineRequest struct {
	MenuItemID string `json:"menuItemId" validate:"required,uuid"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	RestaurantID  string             `json:"restaurantId" validate:"required,uuid"`
	Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"required,oneof=cash bank_transfer"`
}
