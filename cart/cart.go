// Package cart implements the in-memory shopping cart: an ordered
// collection of line items keyed by menu item id, with derived totals in
// exact centavos.
package cart

import (
	"context"
	"sync"

	"github.com/dev-7msolution/restaurante-mobile/client"
	"github.com/dev-7msolution/restaurante-mobile/models"
)

// Line is one cart entry. Display fields are copied from the menu item at
// add-time; a later catalog price change does not affect lines already in
// the cart.
type Line struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	UnitPrice   models.Cents `json:"price"`
	Quantity    int          `json:"quantity"`
	Category    string       `json:"category"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
}

// Cart holds the current order-in-progress. All operations are total:
// unknown ids are tolerated silently.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem inserts item with quantity 1, or increments the existing line.
func (c *Cart) AddItem(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:          item.ID,
		Name:        item.Name,
		UnitPrice:   item.Price,
		Quantity:    1,
		Category:    item.Category,
		Description: item.Description,
		Image:       item.Image,
	})
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line. Absent ids are a no-op.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line if present.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id string) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for i := range c.lines {
		total += c.lines[i].Quantity
	}
	return total
}

// TotalPrice is the exact sum of unitPrice×quantity across all lines.
func (c *Cart) TotalPrice() models.Cents {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total models.Cents
	for i := range c.lines {
		total += c.lines[i].UnitPrice * models.Cents(c.lines[i].Quantity)
	}
	return total
}

// CheckoutInfo carries the delivery details for order placement.
type CheckoutInfo struct {
	DeliveryAddress string
	Observations    string
}

// Checkout places the order through POST /orders and clears the cart only
// after the server accepts it. A failed checkout leaves the cart intact.
func (c *Cart) Checkout(ctx context.Context, api *client.Client, info CheckoutInfo) (*models.Order, error) {
	lines := c.Items()
	if len(lines) == 0 {
		return nil, &client.APIError{Kind: client.KindValidation, Message: "Carrinho vazio"}
	}

	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		}
	}

	order, err := api.CreateOrder(ctx, models.CreateOrderRequest{
		Items:           items,
		DeliveryAddress: info.DeliveryAddress,
		Observations:    info.Observations,
	})
	if err != nil {
		return nil, err
	}

	c.Clear()
	return order, nil
}
