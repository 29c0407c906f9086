package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dev-7msolution/restaurante-mobile/models"
)

// Menu fetches the full menu via GET /menu.
func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MenuItem fetches one dish via GET /menu/:id.
func (c *Client) MenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var out models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMenu queries GET /menu/search. Filters are passed through as
// query parameters alongside the text query.
func (c *Client) SearchMenu(ctx context.Context, query string, filters map[string]string) ([]models.MenuItem, error) {
	q := url.Values{"query": {query}}
	for k, v := range filters {
		q.Set(k, v)
	}
	var out []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/menu/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateOrder places an order via POST /orders.
func (c *Client) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists the order history via GET /orders.
func (c *Client) Orders(ctx context.Context, page, limit int) ([]models.Order, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches one order via GET /orders/:id.
func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus patches PATCH /orders/:id/status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	var out models.Order
	err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil,
		models.UpdateOrderStatusRequest{Status: status}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelOrder posts POST /orders/:id/cancel.
func (c *Client) CancelOrder(ctx context.Context, id, reason string) error {
	return c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(id)+"/cancel", nil,
		models.CancelOrderRequest{Reason: reason}, nil)
}

// Favorites lists the favorite dishes via GET /favorites.
func (c *Client) Favorites(ctx context.Context) ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := c.do(ctx, http.MethodGet, "/favorites", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavorite marks a dish as favorite via POST /favorites.
func (c *Client) AddFavorite(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodPost, "/favorites", nil, map[string]string{"itemId": itemID}, nil)
}

// RemoveFavorite unmarks a favorite via DELETE /favorites/:id.
func (c *Client) RemoveFavorite(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(itemID), nil, nil, nil)
}

// Reviews lists reviews for a dish via GET /reviews/:itemId.
func (c *Client) Reviews(ctx context.Context, itemID string) ([]models.Review, error) {
	var out []models.Review
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(itemID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReview posts POST /reviews.
func (c *Client) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	var out models.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Addresses lists saved addresses via GET /addresses.
func (c *Client) Addresses(ctx context.Context) ([]models.Address, error) {
	var out []models.Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAddress posts POST /addresses.
func (c *Client) CreateAddress(ctx context.Context, req models.AddressRequest) (*models.Address, error) {
	var out models.Address
	if err := c.do(ctx, http.MethodPost, "/addresses", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAddress patches PATCH /addresses/:id.
func (c *Client) UpdateAddress(ctx context.Context, id string, req models.AddressRequest) (*models.Address, error) {
	var out models.Address
	if err := c.do(ctx, http.MethodPatch, "/addresses/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAddress deletes DELETE /addresses/:id.
func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(id), nil, nil, nil)
}

// Notifications lists the feed via GET /notifications.
func (c *Client) Notifications(ctx context.Context, page, limit int) ([]models.Notification, error) {
	q := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead patches PATCH /notifications/:id/read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

// MarkAllNotificationsRead patches PATCH /notifications/read-all.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, nil)
}

// Health reports whether GET /health answers 200.
func (c *Client) Health(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, "/health", nil, nil, nil)
	return err == nil
}
