// Package queries contains the read side of LocalEats: restaurant browsing,
// order lookups, role-scoped order partitions and the restaurant dashboard
// statistics. Read models carry JSON tags and are returned to the inbound
// adapters unchanged.
package queries

import (
	"sort"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"

	"github.com/shopspring/decimal"
)

// DriverEarningShare is the part of an order total shown to drivers as
// their estimated earning.
var DriverEarningShare = decimal.RequireFromString("0.1")

type UserView struct {
	ID           kernel.UUID  `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	Role         user.Role    `json:"role"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	IsOnline     bool         `json:"isOnline"`
	RestaurantID *kernel.UUID `json:"restaurantId,omitempty"`
}

func NewUserView(u *user.User) UserView {
	return UserView{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		Role:         u.Role(),
		Phone:        u.Phone(),
		Address:      u.Address(),
		IsOnline:     u.IsOnline(),
		RestaurantID: u.RestaurantID(),
	}
}

type MenuItemView struct {
	ID          kernel.UUID `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Category    string      `json:"category"`
	Available   bool        `json:"isAvailable"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}

type RestaurantView struct {
	ID           kernel.UUID    `json:"id"`
	OwnerID      kernel.UUID    `json:"ownerId"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Address      string         `json:"address"`
	Phone        string         `json:"phone"`
	Rating       float64        `json:"rating"`
	DeliveryTime string         `json:"deliveryTime"`
	DeliveryFee  float64        `json:"deliveryFee"`
	IsOpen       bool           `json:"isOpen"`
	Menu         []MenuItemView `json:"menu"`
}

func NewRestaurantView(r *restaurant.Restaurant) RestaurantView {
	profile := r.Profile()
	menu := r.Menu()
	items := make([]MenuItemView, 0, len(menu))
	for _, item := range menu {
		items = append(items, MenuItemView{
			ID:          item.ID(),
			Name:        item.Name(),
			Description: item.Description(),
			Price:       item.Price().Float64(),
			Category:    item.Category(),
			Available:   item.IsAvailable(),
			ImageURL:    item.ImageURL(),
		})
	}

	return RestaurantView{
		ID:           r.ID(),
		OwnerID:      r.OwnerID(),
		Name:         profile.Name,
		Description:  profile.Description,
		Address:      profile.Address,
		Phone:        profile.Phone,
		Rating:       r.Rating(),
		DeliveryTime: profile.DeliveryTime,
		DeliveryFee:  profile.DeliveryFee.Float64(),
		IsOpen:       r.IsOpen(),
		Menu:         items,
	}
}

type OrderItemView struct {
	MenuItemID kernel.UUID `json:"menuItemId"`
	Name       string      `json:"name"`
	Price      float64     `json:"price"`
	Quantity   int         `json:"quantity"`
}

type OrderView struct {
	ID              kernel.UUID         `json:"id"`
	CustomerID      kernel.UUID         `json:"customerId"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress"`
	RestaurantID    kernel.UUID         `json:"restaurantId"`
	RestaurantName  string              `json:"restaurantName"`
	DriverID        *kernel.UUID        `json:"driverId,omitempty"`
	Items           []OrderItemView     `json:"items"`
	TotalAmount     float64             `json:"totalAmount"`
	PaymentMethod   order.PaymentMethod `json:"paymentMethod"`
	Status          order.Status        `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func NewOrderView(o *order.Order) OrderView {
	items := o.Items()
	itemViews := make([]OrderItemView, 0, len(items))
	for _, item := range items {
		itemViews = append(itemViews, OrderItemView{
			MenuItemID: item.MenuItemID(),
			Name:       item.Name(),
			Price:      item.Price().Float64(),
			Quantity:   item.Quantity(),
		})
	}

	customer := o.Customer()
	return OrderView{
		ID:              o.ID(),
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CustomerAddress: customer.Address,
		RestaurantID:    o.RestaurantID(),
		RestaurantName:  o.RestaurantName(),
		DriverID:        o.Driver(),
		Items:           itemViews,
		TotalAmount:     o.Total().Float64(),
		PaymentMethod:   o.PaymentMethod(),
		Status:          o.Status(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func NewOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

type StatusChangeView struct {
	From      order.Status `json:"from"`
	To        order.Status `json:"to"`
	ActorID   kernel.UUID  `json:"actorId"`
	ActorRole user.Role    `json:"actorRole"`
	At        time.Time    `json:"at"`
}

// CustomerOrders splits a customer's orders into those still moving and
// those that reached a terminal status. Both halves are newest first.
type CustomerOrders struct {
	Active  []OrderView `json:"active"`
	History []OrderView `json:"history"`
}

func PartitionCustomerOrders(orders []*order.Order) CustomerOrders {
	result := CustomerOrders{Active: []OrderView{}, History: []OrderView{}}
	for _, o := range newestFirst(orders) {
		if o.IsTerminal() {
			result.History = append(result.History, NewOrderView(o))
		} else {
			result.Active = append(result.Active, NewOrderView(o))
		}
	}
	return result
}

// RestaurantOrders is the kitchen board: orders awaiting a decision and
// orders accepted but not yet handed to a driver.
type RestaurantOrders struct {
	New        []OrderView `json:"new"`
	InProgress []OrderView `json:"inProgress"`
}

func RestaurantBoardStatuses() []order.Status {
	return []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready}
}

func PartitionRestaurantOrders(orders []*order.Order) RestaurantOrders {
	result := RestaurantOrders{New: []OrderView{}, InProgress: []OrderView{}}
	for _, o := range newestFirst(orders) {
		switch o.Status() {
		case order.Pending:
			result.New = append(result.New, NewOrderView(o))
		case order.Confirmed, order.Preparing, order.Ready:
			result.InProgress = append(result.InProgress, NewOrderView(o))
		default:
		}
	}
	return result
}

// PoolEntry is an unclaimed ready order as offered to drivers.
type PoolEntry struct {
	OrderView
	EstimatedEarning float64 `json:"estimatedEarning"`
}

func NewPoolEntries(orders []*order.Order) []PoolEntry {
	entries := make([]PoolEntry, 0, len(orders))
	for _, o := range orders {
		if o.Status() != order.Ready || o.Driver() != nil {
			continue
		}
		entries = append(entries, PoolEntry{
			OrderView:        NewOrderView(o),
			EstimatedEarning: o.Total().Share(DriverEarningShare).Float64(),
		})
	}
	return entries
}

// DriverDeliveryStatuses are the statuses in which an order is on the road
// with its driver.
func DriverDeliveryStatuses() []order.Status {
	return []order.Status{order.PickedUp, order.OutForDelivery}
}

func newestFirst(orders []*order.Order) []*order.Order {
	sorted := make([]*order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt().After(sorted[j].CreatedAt())
	})
	return sorted
}
