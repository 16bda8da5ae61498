package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/utils"
	"gorm.io/gorm"
)

// Durasi tampil di layar (ms); urgent lebih lama karena sensitif waktu
const (
	durationNormal = 5000
	durationUrgent = 12000
)

// Publisher mengirim satu delivery ke channel real-time. Hub websocket
// memenuhinya; test memakai publisher palsu.
type Publisher interface {
	Publish(d kds.Delivery)
}

// OwnerLookup dipakai router untuk cek pemilik meja
type OwnerLookup interface {
	OwnerOf(tableNumber int) (*uint, error)
}

type routeRule struct {
	role    string
	urgency string
}

// Tabel kebijakan routing: kind event -> siapa yang menerima dan seberapa
// mendesak. Teks pesan disusun terpisah di buildNotice.
var creationRoutes = []routeRule{
	{models.RoleCashier, models.UrgencyNormal},
	{models.RoleManager, models.UrgencyNormal},
}

var advanceRoutes = map[models.OrderStatus][]routeRule{
	// cashier yang memicu paid -> in_progress, jadi tidak perlu dikabari
	models.StatusInProgress: {
		{models.RoleWaiter, models.UrgencyNormal},
		{models.RoleManager, models.UrgencyNormal},
	},
	models.StatusReady: {
		{models.RoleWaiter, models.UrgencyUrgent},
		{models.RoleCashier, models.UrgencyNormal},
		{models.RoleManager, models.UrgencyNormal},
	},
	models.StatusServed: {
		{models.RoleManager, models.UrgencyNormal},
		{models.RoleCashier, models.UrgencyNormal},
	},
	models.StatusCancelled: {
		{models.RoleWaiter, models.UrgencyUrgent},
		{models.RoleCashier, models.UrgencyUrgent},
		{models.RoleManager, models.UrgencyUrgent},
	},
}

// Route adalah fungsi murni (event, registry) -> daftar delivery terurut.
// Satu-satunya pengiriman per identitas: order dibuat di meja yang pemiliknya
// bukan si pembuat -> pemilik meja dikabari langsung.
func Route(ev TransitionEvent, owners OwnerLookup) []kds.Delivery {
	var rules []routeRule
	if ev.Created {
		rules = creationRoutes
	} else {
		rules = advanceRoutes[ev.NewStatus]
	}

	deliveries := make([]kds.Delivery, 0, len(rules)+1)
	for _, rule := range rules {
		deliveries = append(deliveries, kds.Delivery{
			Target: kds.Target{Role: rule.role},
			Notice: buildNotice(ev, rule.role, rule.urgency),
		})
	}

	if ev.Created && owners != nil {
		owner, err := owners.OwnerOf(ev.Order.TableNumber)
		if err == nil && owner != nil && *owner != ev.Actor.ID {
			deliveries = append(deliveries, kds.Delivery{
				Target: kds.Target{UserID: *owner},
				Notice: ownerNotice(ev),
			})
		}
	}
	return deliveries
}

func durationFor(urgency string) int {
	if urgency == models.UrgencyUrgent {
		return durationUrgent
	}
	return durationNormal
}

// buildNotice menyusun teks per role; kebijakan routing tidak bergantung
// pada kata-katanya.
func buildNotice(ev TransitionEvent, role, urgency string) kds.Notice {
	n := kds.Notice{
		Urgency:  urgency,
		Duration: durationFor(urgency),
		OrderID:  ev.Order.ID,
	}
	o := ev.Order

	if ev.Created {
		switch role {
		case models.RoleCashier:
			n.Title = "Order baru (lunas)"
			n.Body = fmt.Sprintf("Order #%d meja %d sudah dibayar %s",
				o.ID, o.TableNumber, utils.FormatCurrencyIDR(o.TotalAmount))
		case models.RoleManager:
			n.Title = "Order baru"
			n.Body = fmt.Sprintf("Order #%d masuk di meja %d, total %s",
				o.ID, o.TableNumber, utils.FormatCurrencyIDR(o.TotalAmount))
		}
		return n
	}

	switch ev.NewStatus {
	case models.StatusInProgress:
		n.Title = "Order disiapkan"
		n.Body = fmt.Sprintf("Order #%d meja %d mulai disiapkan dapur", o.ID, o.TableNumber)
	case models.StatusReady:
		if role == models.RoleWaiter {
			n.Title = "Order siap disajikan"
			n.Body = fmt.Sprintf("Order #%d meja %d siap diantar sekarang", o.ID, o.TableNumber)
		} else {
			n.Title = "Order siap"
			n.Body = fmt.Sprintf("Order #%d meja %d sudah siap", o.ID, o.TableNumber)
		}
	case models.StatusServed:
		n.Title = "Order selesai"
		n.Body = fmt.Sprintf("Order #%d meja %d selesai disajikan, total %s, kembalian %s",
			o.ID, o.TableNumber,
			utils.FormatCurrencyIDR(o.TotalAmount),
			utils.FormatCurrencyIDR(o.Change()))
	case models.StatusCancelled:
		n.Title = "Order dibatalkan"
		n.Body = fmt.Sprintf("Order #%d meja %d dibatalkan", o.ID, o.TableNumber)
		if role == models.RoleManager {
			n.Body += " - order sudah lunas, pertimbangkan refund"
		}
	}
	return n
}

// ownerNotice pesan khusus ke waiter pemilik meja saat staff lain membuat
// order di mejanya
func ownerNotice(ev TransitionEvent) kds.Notice {
	return kds.Notice{
		Title:    "Order dibuat atas nama Anda",
		Body:     fmt.Sprintf("Order #%d dibuat di meja Anda (meja %d) oleh staff lain", ev.Order.ID, ev.Order.TableNumber),
		Urgency:  models.UrgencyNormal,
		Duration: durationNormal,
		OrderID:  ev.Order.ID,
	}
}

// Notifier menyalurkan hasil Route ke hub dan mengarsipkan salinannya.
type Notifier struct {
	Registry OwnerLookup
	Pub      Publisher
	DB       *gorm.DB // boleh nil; arsip notifikasi best-effort
}

func NewNotifier(registry OwnerLookup, pub Publisher, db *gorm.DB) *Notifier {
	return &Notifier{Registry: registry, Pub: pub, DB: db}
}

// Dispatch dipanggil setelah mutasi state commit; gagal kirim tidak pernah
// membatalkan atau mengulang mutasinya.
func (nf *Notifier) Dispatch(ev TransitionEvent) {
	for _, d := range Route(ev, nf.Registry) {
		nf.Pub.Publish(d)
		nf.archive(d, ev)
	}
	kds.BroadcastOrderUpdate(ev.Order)
}

func (nf *Notifier) archive(d kds.Delivery, ev TransitionEvent) {
	if nf.DB == nil {
		return
	}
	rec := models.Notification{
		OrderID: &ev.Order.ID,
		Title:   d.Notice.Title,
		Message: d.Notice.Body,
		Urgency: d.Notice.Urgency,
	}
	if d.Target.UserID != 0 {
		uid := d.Target.UserID
		rec.RecipientID = &uid
	} else {
		role := d.Target.Role
		rec.RecipientRole = &role
	}
	if err := nf.DB.Create(&rec).Error; err != nil {
		utils.ErrorLogger.Printf("Error archiving notification: %v", err)
	}
}
