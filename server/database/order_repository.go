package database

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/dev-7msolution/restaurante-mobile/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]Order, error) {
	var orders []Order
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Update(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ToWire converts the persisted record into the API payload shape.
func (o *Order) ToWire() models.Order {
	var items []models.OrderItem
	if err := json.Unmarshal([]byte(o.ItemsJSON), &items); err != nil {
		items = nil
	}
	return models.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		Items:           items,
		Total:           models.Cents(o.TotalCents),
		EstimatedTime:   o.EstimatedTime,
		DeliveryAddress: o.DeliveryAddress,
		Observations:    o.Observations,
		CreatedAt:       o.CreatedAt,
	}
}
