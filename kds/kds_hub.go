package kds

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-foh/models"
)

// Event types
const (
	EventOrderUpdate   = "order_update"
	EventTableUpdate   = "table_update"
	EventStaffNotif    = "staff_notification"
	EventTableCreate   = "table_create"
	EventTableDelete   = "table_delete"
	EventReceiptUpdate = "receipt_generated"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Target alamat pengiriman: per role (UserID == 0) atau per identitas staff.
type Target struct {
	Role   string `json:"role,omitempty"`
	UserID uint   `json:"user_id,omitempty"`
}

// Notice payload notifikasi yang dirender client
type Notice struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Urgency  string `json:"urgency"`
	Duration int    `json:"duration_ms"`
	OrderID  uint   `json:"order_id,omitempty"`
}

type Delivery struct {
	Target Target `json:"target"`
	Notice Notice `json:"notice"`
}

type session struct {
	userID uint
	role   string
}

// Hub menampung semua koneksi staff (waiter, cashier, manager) beserta
// identitasnya untuk publish per role maupun per user.
type Hub struct {
	clients map[*websocket.Conn]session
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]session)}
}

var defaultHub = NewHub()

// DefaultHub -> hub yang dipakai controller & service
func DefaultHub() *Hub { return defaultHub }

// Register -> menambahkan connection dengan identitas dan role-nya
func (h *Hub) Register(conn *websocket.Conn, userID uint, role string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[conn] = session{userID: userID, role: role}
}

// Unregister -> melepaskan connection
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.clients, conn)
	conn.Close()
}

// Publish mengirim satu delivery ke sesi yang cocok dengan target.
// Role-addressed: semua sesi dengan role itu. Identity-addressed: hanya sesi
// milik user itu; kalau tidak ada yang terhubung, pesan dibuang (tanpa replay).
func (h *Hub) Publish(d Delivery) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(Message{Event: EventStaffNotif, Data: d})
	if err != nil {
		log.Printf("Error marshaling delivery: %v", err)
		return
	}

	for conn, sess := range h.clients {
		if !matches(d.Target, sess) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending notification to client: %v", err)
		}
	}
}

// Send mengirim satu message ke satu koneksi saja. Menahan mutex hub yang
// sama dengan Publish/Broadcast karena gorilla/websocket melarang dua
// goroutine menulis ke koneksi yang sama.
func (h *Hub) Send(conn *websocket.Conn, msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("Error sending message to client: %v", err)
	}
}

func matches(t Target, s session) bool {
	if t.UserID != 0 {
		return s.userID == t.UserID
	}
	return t.Role == "" || s.role == t.Role
}

// Broadcast -> kirim message ke semua sesi tanpa filter
func (h *Hub) Broadcast(msg Message) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}

// ClientCount -> jumlah sesi aktif (untuk dashboard/debug)
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Wrapper paket memakai defaultHub, gaya lama dipertahankan.

// RegisterClient -> menambahkan connection ke hub default
func RegisterClient(conn *websocket.Conn, userID uint, role string) {
	defaultHub.Register(conn, userID, role)
}

// UnregisterClient -> melepaskan connection dari hub default
func UnregisterClient(conn *websocket.Conn) {
	defaultHub.Unregister(conn)
}

// Publish -> kirim delivery lewat hub default
func Publish(d Delivery) {
	defaultHub.Publish(d)
}

// Send -> kirim message ke satu koneksi lewat hub default
func Send(conn *websocket.Conn, msg Message) {
	defaultHub.Send(conn, msg)
}

// BroadcastOrderUpdate -> menyiarkan snapshot order ke semua client
func BroadcastOrderUpdate(order models.Order) {
	defaultHub.Broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastTableUpdate -> update status meja
func BroadcastTableUpdate(table models.Table) {
	defaultHub.Broadcast(Message{Event: EventTableUpdate, Data: table})
}

// BroadcastTableCreate -> notifikasi meja baru dibuat
func BroadcastTableCreate(table models.Table) {
	defaultHub.Broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableDelete -> notifikasi meja dihapus
func BroadcastTableDelete(table models.Table) {
	defaultHub.Broadcast(Message{Event: EventTableDelete, Data: table})
}

// BroadcastReceipt -> notifikasi struk dibuat
func BroadcastReceipt(receipt models.Receipt) {
	defaultHub.Broadcast(Message{Event: EventReceiptUpdate, Data: receipt})
}

// BroadcastMessage -> broadcast pesan umum
func BroadcastMessage(msg Message) {
	defaultHub.Broadcast(msg)
}
