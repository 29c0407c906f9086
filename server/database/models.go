package database

import "time"

// User is the persisted account record.
type User struct {
	ID               string `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null"`
	Password         string `gorm:"not null"`
	Name             string `gorm:"not null"`
	Role             string `gorm:"type:varchar(50);default:'customer'"`
	Avatar           string
	ResetToken       string    `gorm:"index"`
	VerificationCode string    `gorm:"size:6"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

// RefreshToken stores issued refresh tokens for rotation and revocation.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey"`
	TokenID   string    `gorm:"uniqueIndex;not null"`
	UserID    string    `gorm:"not null;index"`
	Revoked   bool      `gorm:"default:false"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Order is the persisted order record. Items are stored as a JSON blob;
// the stub server has no need to query into individual lines.
type Order struct {
	ID              string `gorm:"primaryKey"`
	UserID          string `gorm:"not null;index"`
	Status          string `gorm:"not null"`
	ItemsJSON       string `gorm:"not null"`
	TotalCents      int64  `gorm:"not null"`
	EstimatedTime   string
	DeliveryAddress string
	Observations    string
	CancelReason    string
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
