package database

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dev-7msolution/restaurante-mobile/config"
	"github.com/dev-7msolution/restaurante-mobile/models"
)

// Seed inserts the dev test user and a small order history so a fresh
// database behaves like the mocked app. Idempotent: existing rows are
// left alone.
func Seed(ctx context.Context, db *gorm.DB, creds config.TestCredentials) error {
	users := NewUserRepository(db)

	if _, err := users.FindByEmail(ctx, creds.Email); err == gorm.ErrRecordNotFound {
		hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, &User{
			ID:       creds.UserID,
			Email:    creds.Email,
			Password: string(hashed),
			Name:     creds.Name,
			Role:     creds.Role,
		}); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	orders := NewOrderRepository(db)
	for _, o := range seedOrders(creds.UserID) {
		if _, err := orders.FindByID(ctx, o.ID); err == gorm.ErrRecordNotFound {
			if err := orders.Create(ctx, &o); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

func seedOrders(userID string) []Order {
	mk := func(id, status, estimated, address string, created time.Time, items []models.OrderItem) Order {
		var total models.Cents
		for _, it := range items {
			total += it.Price * models.Cents(it.Quantity)
		}
		data, _ := json.Marshal(items)
		return Order{
			ID:              id,
			UserID:          userID,
			Status:          status,
			ItemsJSON:       string(data),
			TotalCents:      int64(total),
			EstimatedTime:   estimated,
			DeliveryAddress: address,
			CreatedAt:       created,
		}
	}

	return []Order{
		mk("ORD-2024-001", models.OrderStatusPreparing, "25-35 min", "Rua das Flores, 123 - Centro",
			time.Date(2024, 1, 15, 19, 30, 0, 0, time.Local),
			[]models.OrderItem{
				{Name: "Risotto de Camarão", Quantity: 1, Price: 5890},
				{Name: "Tiramisu da Casa", Quantity: 1, Price: 1890},
			}),
		mk("ORD-2024-002", models.OrderStatusDelivered, "", "",
			time.Date(2024, 1, 10, 20, 15, 0, 0, time.Local),
			[]models.OrderItem{
				{Name: "Salmão Grelhado", Quantity: 1, Price: 7290},
				{Name: "Bruschetta Especial", Quantity: 2, Price: 2490},
				{Name: "Vinho Tinto Reserva", Quantity: 1, Price: 8990},
			}),
		mk("ORD-2024-003", models.OrderStatusOnTheWay, "10-15 min", "",
			time.Date(2024, 1, 8, 18, 45, 0, 0, time.Local),
			[]models.OrderItem{
				{Name: "Carpaccio de Carne", Quantity: 1, Price: 4290},
			}),
	}
}
