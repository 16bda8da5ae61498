package models

import "time"

type Receipt struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"uniqueIndex;not null" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID" json:"order"`

	Total        int64 `gorm:"not null" json:"total"`
	RoundedTotal int64 `gorm:"not null" json:"rounded_total"`

	// Detail Pembayaran (kas)
	AmountPaid int64 `gorm:"not null" json:"amount_paid"`
	Change     int64 `gorm:"not null" json:"change"`

	ReceiptItems []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"receipt_items"`

	ReceiptNumber string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"receipt_number"`
	CashierID     *uint     `json:"cashier_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

type ReceiptItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ReceiptID uint    `gorm:"not null" json:"receipt_id"`
	Receipt   Receipt `gorm:"-" json:"-"`

	MenuID    uint   `gorm:"not null" json:"menu_id"`
	MenuName  string `gorm:"type:varchar(100);not null" json:"menu_name"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	UnitPrice int64  `gorm:"not null" json:"unit_price"`
	Subtotal  int64  `gorm:"not null" json:"subtotal"`
	Notes     string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
