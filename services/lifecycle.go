package services

import (
	"errors"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-foh/models"
	"gorm.io/gorm"
)

// Staff identitas pelaku aksi, diambil dari JWT di controller. Tidak ada
// state global "session sekarang"; identitas selalu dioper eksplisit.
type Staff struct {
	ID   uint
	Role string
}

// TransitionEvent dikembalikan setiap Create/Advance yang sukses; satu-satunya
// titik integrasi dengan router notifikasi.
type TransitionEvent struct {
	Order      models.Order
	PrevStatus models.OrderStatus // kosong saat create
	NewStatus  models.OrderStatus
	Actor      Staff
	Created    bool
	Change     int64 // kembalian, hanya berarti saat create
}

// OrderItemInput satu baris pesanan dari client
type OrderItemInput struct {
	MenuID   uint   `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// CreateOrderInput request pembuatan order; kas diserahkan di depan, order
// tidak pernah dibuat dalam keadaan belum bayar.
type CreateOrderInput struct {
	TableNumber  int              `json:"table_number"`
	CashReceived int64            `json:"cash_received"`
	Items        []OrderItemInput `json:"items"`
}

// Lifecycle memegang status kanonik order dan tabel transisinya. Semua mutasi
// diserialisasi per order (dan per meja saat create) lewat mutex ber-key;
// tidak ada lock global.
type Lifecycle struct {
	DB *gorm.DB

	orderLocks sync.Map // orderID -> *sync.Mutex
	tableLocks sync.Map // tableNumber -> *sync.Mutex
}

func NewLifecycle(db *gorm.DB) *Lifecycle {
	return &Lifecycle{DB: db}
}

func lockKeyed(m *sync.Map, key interface{}) func() {
	v, _ := m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Create -> validasi settlement kas lalu buat order langsung berstatus paid
// dan tandai meja occupied. Penolakan tidak membuat record apa pun.
func (l *Lifecycle) Create(input CreateOrderInput, actor Staff) (*TransitionEvent, error) {
	unlock := lockKeyed(&l.tableLocks, input.TableNumber)
	defer unlock()

	var table models.Table
	if err := l.DB.Where("table_number = ?", input.TableNumber).First(&table).Error; err != nil {
		return nil, newDomainError(KindTableNotFound, "meja %d tidak ditemukan", input.TableNumber)
	}

	if len(input.Items) == 0 {
		return nil, newDomainError(KindInvalidLineItem, "order tanpa item")
	}

	// Harga selalu diambil dari menu, bukan dari client
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		var menu models.Menu
		if err := l.DB.First(&menu, in.MenuID).Error; err != nil {
			return nil, newDomainError(KindInvalidLineItem, "menu %d tidak ditemukan", in.MenuID)
		}
		items = append(items, models.OrderItem{
			MenuID:    menu.ID,
			Quantity:  in.Quantity,
			UnitPrice: menu.Price,
			Notes:     in.Notes,
		})
	}

	total, err := ComputeTotal(items)
	if err != nil {
		return nil, err
	}
	settlement, err := ValidateSettlement(total, input.CashReceived)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cash := input.CashReceived
	order := models.Order{
		TableNumber:  input.TableNumber,
		Status:       models.StatusPaid,
		Paid:         true,
		TotalAmount:  total,
		CashReceived: &cash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch actor.Role {
	case models.RoleWaiter:
		order.WaiterID = &actor.ID
	case models.RoleCashier:
		order.CashierID = &actor.ID
	}

	tx := l.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for i := range items {
		items[i].OrderID = order.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if table.Status != models.TableOccupied {
		table.Status = models.TableOccupied
		if err := tx.Save(&table).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	order.OrderItems = items
	return &TransitionEvent{
		Order:     order,
		NewStatus: models.StatusPaid,
		Actor:     actor,
		Created:   true,
		Change:    settlement.Change,
	}, nil
}

// Advance -> pindahkan order ke target status sesuai tabel transisi. Saat
// masuk status terminal, meja dibebaskan hanya jika tidak ada order aktif
// lain yang memakai nomor meja itu.
func (l *Lifecycle) Advance(orderID uint, target models.OrderStatus, actor Staff) (*TransitionEvent, error) {
	if !models.ValidStatus(target) {
		return nil, newDomainError(KindIllegalTransition, "status %q tidak dikenal", target)
	}

	unlock := lockKeyed(&l.orderLocks, orderID)
	defer unlock()

	var order models.Order
	if err := l.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newDomainError(KindOrderNotFound, "order %d tidak ditemukan", orderID)
		}
		return nil, err
	}

	if !order.Status.CanAdvanceTo(target) {
		return nil, newDomainError(KindIllegalTransition,
			"transisi %s -> %s tidak diizinkan", order.Status, target)
	}

	// Transisi terminal menyentuh okupansi meja; serialisasi dengan Create
	// di meja yang sama supaya hitungan order aktif tidak balapan
	if target.Terminal() {
		unlockTable := lockKeyed(&l.tableLocks, order.TableNumber)
		defer unlockTable()
	}

	prev := order.Status
	now := time.Now()
	order.Status = target
	order.UpdatedAt = now
	switch target {
	case models.StatusInProgress:
		order.StartPrepAt = &now
	case models.StatusReady:
		order.ReadyAt = &now
	case models.StatusServed, models.StatusCancelled:
		order.ClosedAt = &now
	}
	if target == models.StatusServed && actor.Role == models.RoleCashier && order.CashierID == nil {
		order.CashierID = &actor.ID
	}

	tx := l.DB.Begin()
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if target.Terminal() {
		// Re-check invariant okupansi: bebas hanya kalau tidak ada order
		// aktif lain di meja yang sama
		var active int64
		if err := tx.Model(&models.Order{}).
			Where("table_number = ? AND id != ? AND status IN ?",
				order.TableNumber, order.ID, models.ActiveStatuses()).
			Count(&active).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if active == 0 {
			if err := tx.Model(&models.Table{}).
				Where("table_number = ?", order.TableNumber).
				Update("status", models.TableFree).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return &TransitionEvent{
		Order:      order,
		PrevStatus: prev,
		NewStatus:  target,
		Actor:      actor,
	}, nil
}
