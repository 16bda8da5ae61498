package models

import "time"

// Role staff yang dikenal sistem
const (
	RoleWaiter  = "waiter"
	RoleCashier = "cashier"
	RoleManager = "manager"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(255); not null" json:"name"`
	Email     string `gorm:"type:varchar(255); unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255); not null" json:"-"`
	Role      string `gorm:"type:varchar(20); not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole -> cek role terdaftar
func ValidRole(role string) bool {
	switch role {
	case RoleWaiter, RoleCashier, RoleManager:
		return true
	}
	return false
}
