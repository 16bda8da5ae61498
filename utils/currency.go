package utils

import "fmt"

// FormatCurrencyIDR memformat nilai satuan terkecil (Rupiah utuh) jadi string
// mata uang. Example: 1500050 -> "Rp 1.500.050"
func FormatCurrencyIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	// Susun bagian integer dengan pemisah ribuan
	str := fmt.Sprintf("%d", amount)
	var result string
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result += "."
		}
		result += string(digit)
	}

	if negative {
		return "-Rp " + result
	}
	return "Rp " + result
}
