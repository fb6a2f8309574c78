package models

import "time"

// Client represents a customer that places orders.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=1,max=255"`
	CreatedAt time.Time `json:"created_at"`
	Orders    []Order   `json:"-" gorm:"foreignKey:ClientID"`
}
