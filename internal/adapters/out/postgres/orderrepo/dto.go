package orderrepo

import (
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerName    string     `gorm:"not null"`
	CustomerPhone   string     `gorm:"not null;default:''"`
	CustomerAddress string     `gorm:"not null;default:''"`
	RestaurantID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	RestaurantName  string     `gorm:"not null"`
	DriverID        *uuid.UUID `gorm:"type:uuid;index"`
	// Items are stored as one JSON document, written once at placement.
	Items         []ItemDTO       `gorm:"type:text;serializer:json;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentMethod int             `gorm:"not null"`
	Status        int             `gorm:"index;not null"`
	CreatedAt     time.Time       `gorm:"index;autoCreateTime:false"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ItemDTO struct {
	MenuItemID uuid.UUID       `json:"menuItemId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
}

// StatusChangeDTO is one row of an order's audit trail.
type StatusChangeDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	From      int       `gorm:"column:from_status;not null"`
	To        int       `gorm:"column:to_status;not null"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null"`
	ActorRole int       `gorm:"not null"`
	At        time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_changes"
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := o.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			Price:      item.Price().Decimal(),
			Quantity:   item.Quantity(),
		})
	}

	customer := o.Customer()
	return OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      customer.ID.Bytes(),
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		RestaurantID:    o.RestaurantID().Bytes(),
		RestaurantName:  o.RestaurantName(),
		DriverID:        driverID,
		Items:           itemDTOs,
		TotalAmount:     o.Total().Decimal(),
		PaymentMethod:   int(o.PaymentMethod()),
		Status:          int(o.Status()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		order.Customer{
			ID:      customerID,
			Name:    dto.CustomerName,
			Phone:   dto.CustomerPhone,
			Address: dto.CustomerAddress,
		},
		restaurantID,
		dto.RestaurantName,
		driverID,
		items,
		total,
		order.PaymentMethod(dto.PaymentMethod),
		order.Status(dto.Status),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	menuItemID, err := kernel.UUIDFromBytes(dto.MenuItemID[:])
	if err != nil {
		return order.Item{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(menuItemID, dto.Name, price, dto.Quantity)
}

func statusChangeFromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:   change.OrderID.Bytes(),
		From:      int(change.From),
		To:        int(change.To),
		ActorID:   change.ActorID.Bytes(),
		ActorRole: int(change.ActorRole),
		At:        change.At.UTC(),
	}
}

func statusChangeToDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	return order.StatusChange{
		OrderID:   orderID,
		From:      order.Status(dto.From),
		To:        order.Status(dto.To),
		ActorID:   actorID,
		ActorRole: user.Role(dto.ActorRole),
		At:        dto.At.UTC(),
	}, nil
}
