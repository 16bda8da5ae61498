package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> riwayat notifikasi untuk staff yang login: yang
// dialamatkan ke role-nya atau ke identitasnya langsung
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	userIDInterface, _ := c.Get("user_id")

	var notifications []models.Notification
	query := nc.DB.Order("created_at desc").Limit(100)

	role, _ := roleInterface.(string)
	userID, _ := userIDInterface.(uint)
	if role == models.RoleManager {
		// Manager bisa melihat semua
		if err := query.Find(&notifications).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	} else {
		if err := query.Where("recipient_role = ? OR recipient_id = ?", role, userID).
			Find(&notifications).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}

// GetNotificationByID -> detail 1 notifikasi
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	notifID := c.Param("notif_id")

	var notification models.Notification
	if err := nc.DB.First(&notification, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification detail", notification)
}

// DeleteNotification -> hapus dari riwayat
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	notifID := c.Param("notif_id")

	if err := nc.DB.Delete(&models.Notification{}, notifID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": notifID})
}
