package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-foh/kds"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

// KDSHandler -> endpoint WebSocket; sesi terdaftar dengan identitas + role
// supaya hub bisa mengirim per role maupun per user
func KDSHandler(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID := userIDInterface.(uint)

	if !models.ValidRole(role) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	kds.RegisterClient(ws, userID, role)

	// Hidrasi awal: client baru langsung menerima snapshot order aktif
	// supaya board-nya tidak kosong sampai event berikutnya. Kirim lewat
	// hub agar tulisan ke koneksi tidak balapan dengan Publish/Broadcast.
	if db := utils.GetDB(); db != nil {
		var orders []models.Order
		if err := db.Preload("OrderItems").
			Where("status IN ?", models.ActiveStatuses()).
			Find(&orders).Error; err == nil {
			for _, order := range orders {
				kds.Send(ws, kds.Message{Event: kds.EventOrderUpdate, Data: order})
			}
		}
	}

	// Baca pesan (jika perlu)
	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	kds.UnregisterClient(ws)
}
