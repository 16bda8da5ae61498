package models

import "time"

// Urgensi notifikasi; urgent tampil lebih lama di layar
const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

// Notification adalah arsip notifikasi yang sudah dikirim lewat websocket,
// supaya staff yang baru login tetap bisa membuka riwayatnya. Routing sendiri
// tidak pernah membaca tabel ini.
type Notification struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	RecipientRole *string `gorm:"type:varchar(20);index" json:"recipient_role,omitempty"`
	RecipientID   *uint   `gorm:"index" json:"recipient_id,omitempty"`
	Recipient     *User   `gorm:"foreignKey:RecipientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"recipient,omitempty"`
	OrderID       *uint   `gorm:"index" json:"order_id,omitempty"`
	Title         string  `gorm:"type:varchar(100);not null" json:"title"`
	Message       string  `gorm:"type:text;not null" json:"message"`
	Urgency       string  `gorm:"type:varchar(10);not null;default:'normal'" json:"urgency"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
