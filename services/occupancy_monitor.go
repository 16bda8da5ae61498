package services

import (
	"log"
	"time"

	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/models"
	"gorm.io/gorm"
)

// OccupancyMonitor menjaga invariant okupansi: meja occupied hanya jika masih
// ada order non-terminal yang memakai nomornya. Drift (mis. karena perubahan
// manual di DB) dikoreksi dan disiarkan ke semua client.
type OccupancyMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewOccupancyMonitor(db *gorm.DB) *OccupancyMonitor {
	return &OccupancyMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 5 * time.Second,
	}
}

func (om *OccupancyMonitor) Start() {
	go func() {
		ticker := time.NewTicker(om.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				om.Reconcile()
			case <-om.StopChan:
				return
			}
		}
	}()
}

func (om *OccupancyMonitor) Stop() {
	close(om.StopChan)
}

// Reconcile -> satu putaran koreksi untuk seluruh meja
func (om *OccupancyMonitor) Reconcile() {
	var tables []models.Table
	if err := om.DB.Find(&tables).Error; err != nil {
		log.Printf("Error fetching tables: %v", err)
		return
	}

	for _, table := range tables {
		var active int64
		if err := om.DB.Model(&models.Order{}).
			Where("table_number = ? AND status IN ?", table.TableNumber, models.ActiveStatuses()).
			Count(&active).Error; err != nil {
			log.Printf("Error counting active orders for table %d: %v", table.TableNumber, err)
			continue
		}

		want := models.TableFree
		if active > 0 {
			want = models.TableOccupied
		}
		if table.Status == want {
			continue
		}

		log.Printf("Occupancy drift on table %d: %s -> %s", table.TableNumber, table.Status, want)
		table.Status = want
		if err := om.DB.Save(&table).Error; err != nil {
			log.Printf("Error fixing table %d: %v", table.TableNumber, err)
			continue
		}
		kds.BroadcastTableUpdate(table)
	}
}
