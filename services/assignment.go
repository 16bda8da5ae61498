package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yeremiapane/restaurant-foh/models"
	"gorm.io/gorm"
)

// AssignmentRegistry memetakan nomor meja ke satu waiter pemilik (0 atau 1).
// Kepemilikan disimpan di kolom waiter_id tabel tables; mutex menserialisasi
// assign/unassign supaya aturan single-owner tidak balapan.
type AssignmentRegistry struct {
	DB *gorm.DB
	mu sync.Mutex
}

func NewAssignmentRegistry(db *gorm.DB) *AssignmentRegistry {
	return &AssignmentRegistry{DB: db}
}

// Assign -> set pemilik meja; idempotent untuk waiter yang sama, gagal
// table_already_assigned kalau sudah dimiliki waiter lain.
func (ar *AssignmentRegistry) Assign(tableNumber int, waiterID uint) (*models.Table, error) {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	var waiter models.User
	if err := ar.DB.First(&waiter, waiterID).Error; err != nil {
		return nil, fmt.Errorf("waiter %d tidak ditemukan", waiterID)
	}
	// Manager tidak pernah menjadi pemilik meja
	if waiter.Role != models.RoleWaiter {
		return nil, fmt.Errorf("hanya waiter yang bisa memiliki meja")
	}

	var table models.Table
	if err := ar.DB.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
		return nil, newDomainError(KindTableNotFound, "meja %d tidak ditemukan", tableNumber)
	}

	if table.WaiterID != nil && *table.WaiterID != waiterID {
		return nil, newDomainError(KindTableAlreadyAssigned,
			"meja %d sudah dipegang waiter lain", tableNumber)
	}

	table.WaiterID = &waiterID
	if err := ar.DB.Save(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// Unassign -> lepaskan pemilik meja (no-op kalau memang kosong)
func (ar *AssignmentRegistry) Unassign(tableNumber int) error {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	var table models.Table
	if err := ar.DB.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
		return newDomainError(KindTableNotFound, "meja %d tidak ditemukan", tableNumber)
	}
	table.WaiterID = nil
	return ar.DB.Model(&table).Update("waiter_id", nil).Error
}

// OwnerOf -> waiter pemilik meja, nil kalau tidak ada
func (ar *AssignmentRegistry) OwnerOf(tableNumber int) (*uint, error) {
	var table models.Table
	if err := ar.DB.Where("table_number = ?", tableNumber).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return table.WaiterID, nil
}

// IsForeignTable -> true kalau meja punya pemilik dan pemiliknya bukan
// waiter yang sedang bertindak. Predicate ini yang memicu notifikasi
// lintas-waiter di router.
func (ar *AssignmentRegistry) IsForeignTable(tableNumber int, actingWaiterID uint) bool {
	owner, err := ar.OwnerOf(tableNumber)
	if err != nil || owner == nil {
		return false
	}
	return *owner != actingWaiterID
}
