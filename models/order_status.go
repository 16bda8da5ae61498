package models

type OrderStatus string

// Status order. Order selalu lahir dalam keadaan paid (settlement kas sudah
// lolos saat create); tidak ada state draft yang disimpan.
const (
	StatusPaid       OrderStatus = "paid"
	StatusInProgress OrderStatus = "in_progress"
	StatusReady      OrderStatus = "ready"
	StatusServed     OrderStatus = "served"
	StatusCancelled  OrderStatus = "cancelled"
)

// transitions -> tabel transisi legal; tidak ada jalan mundur
var transitions = map[OrderStatus][]OrderStatus{
	StatusPaid:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusReady, StatusCancelled},
	StatusReady:      {StatusServed, StatusCancelled},
	StatusServed:     {},
	StatusCancelled:  {},
}

// ValidStatus -> cek status dikenal
func ValidStatus(s OrderStatus) bool {
	_, ok := transitions[s]
	return ok
}

// Terminal -> served dan cancelled tidak punya transisi lanjutan
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0 && ValidStatus(s)
}

// CanAdvanceTo -> true jika next ada di daftar transisi legal dari s
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ActiveStatuses -> status non-terminal (dipakai untuk hitung okupansi meja)
func ActiveStatuses() []OrderStatus {
	return []OrderStatus{StatusPaid, StatusInProgress, StatusReady}
}
