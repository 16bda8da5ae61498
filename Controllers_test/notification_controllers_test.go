package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-foh/controllers"
	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/utils"
)

func setupTestDBForNotifications(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedNotifications(t *testing.T, db *gorm.DB) {
	t.Helper()
	waiterRole := models.RoleWaiter
	cashierRole := models.RoleCashier
	userFive := uint(5)
	rows := []models.Notification{
		{Title: "Order siap", Message: "Order #1 siap", Urgency: models.UrgencyUrgent, RecipientRole: &waiterRole},
		{Title: "Order baru", Message: "Order #2 masuk", Urgency: models.UrgencyNormal, RecipientRole: &cashierRole},
		{Title: "Order di meja Anda", Message: "Order #3", Urgency: models.UrgencyNormal, RecipientID: &userFive},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}
}

func setupNotificationRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	notifCtrl := controllers.NewNotificationController(db)

	auth := router.Group("", fakeAuth(userID, role))
	auth.GET("/notifications", notifCtrl.GetAllNotifications)
	auth.GET("/notifications/:notif_id", notifCtrl.GetNotificationByID)
	auth.DELETE("/notifications/:notif_id", notifCtrl.DeleteNotification)
	return router
}

func listNotifications(t *testing.T, router *gin.Engine) []interface{} {
	t.Helper()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if resp.Data == nil {
		return nil
	}
	return resp.Data.([]interface{})
}

func TestNotificationsFilteredByRoleAndIdentity(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t, "nc_filter")
	seedNotifications(t, db)

	// Waiter 5: notifikasi role waiter + yang dialamatkan langsung ke dia
	router := setupNotificationRouter(db, 5, models.RoleWaiter)
	assert.Len(t, listNotifications(t, router), 2)

	// Waiter lain hanya lihat notifikasi role-nya
	router = setupNotificationRouter(db, 8, models.RoleWaiter)
	assert.Len(t, listNotifications(t, router), 1)

	// Cashier hanya notifikasi cashier
	router = setupNotificationRouter(db, 2, models.RoleCashier)
	assert.Len(t, listNotifications(t, router), 1)
}

func TestManagerSeesAllNotifications(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t, "nc_manager")
	seedNotifications(t, db)

	router := setupNotificationRouter(db, 9, models.RoleManager)
	assert.Len(t, listNotifications(t, router), 3)
}

func TestDeleteNotification(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForNotifications(t, "nc_delete")
	seedNotifications(t, db)

	router := setupNotificationRouter(db, 9, models.RoleManager)

	req, _ := http.NewRequest("DELETE", "/notifications/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Len(t, listNotifications(t, router), 2)
}
