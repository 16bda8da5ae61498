package models

import "time"

// Status meja
const (
	TableFree     = "free"
	TableOccupied = "occupied"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"uniqueIndex;not null" json:"table_number"`
	Status      string    `gorm:"type:varchar(20);not null;default:'free'" json:"status"`
	DisplayName *string   `gorm:"type:varchar(50)" json:"display_name,omitempty"`
	WaiterID    *uint     `gorm:"index" json:"waiter_id,omitempty"`
	Waiter      *User     `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
