package models

import "gorm.io/gorm"

// Roles recognized by the API. Order mutation requires Admin or Employee,
// statistics and product mutation require Admin.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// User represents an API user (staff, not a Client).
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       string `json:"role" gorm:"type:varchar(20);default:'Employee'" validate:"omitempty,oneof=Admin Employee"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
