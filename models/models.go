package models

import "time"

// User is the profile snapshot carried alongside the auth token.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// MenuItem is a dish as served by GET /menu.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       Cents   `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
	Rating      float64 `json:"rating,omitempty"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    Cents  `json:"price"`
}

// Order statuses as displayed in the order history screen.
const (
	OrderStatusPreparing = "Preparando"
	OrderStatusOnTheWay  = "A Caminho"
	OrderStatusDelivered = "Entregue"
	OrderStatusCancelled = "Cancelado"
)

// Order is a placed order as served by GET /orders.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id,omitempty"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           Cents       `json:"total"`
	EstimatedTime   string      `json:"estimated_time,omitempty"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Observations    string      `json:"observations,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Address is a saved delivery address.
type Address struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Review is a rating left on a menu item.
type Review struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	UserID    string    `json:"user_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is an entry in the notification feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
