package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB menyimpan koneksi gorm untuk handler yang tidak menerima DB lewat
// constructor (mis. handler websocket); hanya panggilan pertama yang dipakai
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB -> koneksi yang disimpan InitDB, nil sebelum bootstrap
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
