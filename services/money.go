package services

import "github.com/yeremiapane/restaurant-foh/models"

// Semua nilai uang dalam satuan terkecil (Rupiah utuh, int64). Tidak ada
// float supaya penjumlahan berulang tidak melenceng.

// Settlement hasil validasi pembayaran kas
type Settlement struct {
	Accepted bool  `json:"accepted"`
	Change   int64 `json:"change"`
}

// ComputeTotal -> jumlah unit_price x quantity seluruh item
func ComputeTotal(items []models.OrderItem) (int64, error) {
	var total int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return 0, newDomainError(KindInvalidLineItem,
				"quantity %d tidak valid untuk menu %d", item.Quantity, item.MenuID)
		}
		if item.UnitPrice < 0 {
			return 0, newDomainError(KindInvalidLineItem,
				"harga negatif untuk menu %d", item.MenuID)
		}
		total += item.Subtotal()
	}
	return total, nil
}

// ValidateSettlement -> terima jika tendered >= total (boleh pas), hitung
// kembalian. Penolakan tidak menyentuh state order mana pun.
func ValidateSettlement(total, tendered int64) (Settlement, error) {
	if tendered < total {
		return Settlement{}, newDomainError(KindInsufficientPayment,
			"uang diterima %d kurang dari total %d", tendered, total)
	}
	change := tendered - total
	if change < 0 {
		change = 0
	}
	return Settlement{Accepted: true, Change: change}, nil
}

// RoundToCashUnit membulatkan ke kelipatan unit terdekat, setengah ke atas.
// Dipakai untuk rounded total di struk (mis. kelipatan Rp100).
func RoundToCashUnit(amount, unit int64) int64 {
	if unit <= 1 {
		return amount
	}
	return (amount + unit/2) / unit * unit
}
