package models

import "time"

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	TableNumber int         `gorm:"index;not null" json:"table_number"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'paid'" json:"status"`
	Paid        bool        `gorm:"not null;default:false" json:"paid"`
	TotalAmount int64       `gorm:"not null;default:0" json:"total_amount"`
	// CashReceived hanya terisi sekali order dibayar (selalu, dalam desain ini)
	CashReceived *int64      `json:"cash_received,omitempty"`
	WaiterID     *uint       `gorm:"index" json:"waiter_id,omitempty"`
	Waiter       *User       `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`
	CashierID    *uint       `gorm:"index" json:"cashier_id,omitempty"`
	Cashier      *User       `gorm:"foreignKey:CashierID" json:"cashier,omitempty"`
	OrderItems   []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	StartPrepAt  *time.Time  `json:"start_prep_at,omitempty"`
	ReadyAt      *time.Time  `json:"ready_at,omitempty"`
	ClosedAt     *time.Time  `json:"closed_at,omitempty"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// Change -> kembalian kas untuk order yang sudah dibayar
func (o Order) Change() int64 {
	if o.CashReceived == nil {
		return 0
	}
	return *o.CashReceived - o.TotalAmount
}
