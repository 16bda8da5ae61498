package services

import "fmt"

// Kind untuk setiap kegagalan validasi, supaya caller bisa membedakan
// "pembayaran kurang" dari "order sudah selesai" dst.
const (
	KindInvalidLineItem      = "invalid_line_item"
	KindInsufficientPayment  = "insufficient_payment"
	KindTableAlreadyAssigned = "table_already_assigned"
	KindIllegalTransition    = "illegal_transition"
	KindOrderNotFound        = "order_not_found"
	KindTableNotFound        = "table_not_found"
)

// DomainError adalah error validasi lokal; tidak pernah fatal dan tidak
// meninggalkan mutasi parsial.
type DomainError struct {
	Kind    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func newDomainError(kind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// ErrorKind -> kind dari sebuah error, atau "" kalau bukan DomainError
func ErrorKind(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Kind
	}
	return ""
}
