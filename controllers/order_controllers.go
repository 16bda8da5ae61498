package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-foh/models"
	"github.com/yeremiapane/restaurant-foh/services"
	"github.com/yeremiapane/restaurant-foh/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Lifecycle *services.Lifecycle
	Notifier  *services.Notifier
}

func NewOrderController(db *gorm.DB, lifecycle *services.Lifecycle, notifier *services.Notifier) *OrderController {
	return &OrderController{DB: db, Lifecycle: lifecycle, Notifier: notifier}
}

// actorFromContext -> identitas staff dari JWT di context
func actorFromContext(c *gin.Context) (services.Staff, bool) {
	userIDInterface, okID := c.Get("user_id")
	roleInterface, okRole := c.Get("role")
	if !okID || !okRole {
		return services.Staff{}, false
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		return services.Staff{}, false
	}
	role, ok := roleInterface.(string)
	if !ok {
		return services.Staff{}, false
	}
	return services.Staff{ID: userID, Role: role}, true
}

// respondDomainError memetakan kind error domain ke status HTTP; setiap
// penolakan tetap bisa dibedakan client lewat field kind.
func respondDomainError(c *gin.Context, err error) {
	switch services.ErrorKind(err) {
	case services.KindOrderNotFound:
		utils.RespondErrorKind(c, http.StatusNotFound, services.KindOrderNotFound, err)
	case services.KindTableNotFound:
		utils.RespondErrorKind(c, http.StatusNotFound, services.KindTableNotFound, err)
	case services.KindIllegalTransition:
		utils.RespondErrorKind(c, http.StatusConflict, services.KindIllegalTransition, err)
	case services.KindInsufficientPayment:
		utils.RespondErrorKind(c, http.StatusBadRequest, services.KindInsufficientPayment, err)
	case services.KindInvalidLineItem:
		utils.RespondErrorKind(c, http.StatusBadRequest, services.KindInvalidLineItem, err)
	case services.KindTableAlreadyAssigned:
		utils.RespondErrorKind(c, http.StatusConflict, services.KindTableAlreadyAssigned, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// GetAllOrders -> list orders beserta items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> buat order dengan settlement kas di depan. Kas kurang ->
// ditolak tanpa membuat record apa pun; sukses -> order langsung paid,
// meja occupied, kembalian dikembalikan untuk ditampilkan.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("identitas staff tidak ditemukan"))
		return
	}

	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	event, err := oc.Lifecycle.Create(input, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	// Notifikasi dikirim setelah mutasi commit; gagal kirim tidak
	// membatalkan ordernya
	oc.Notifier.Dispatch(*event)

	utils.InfoLogger.Printf("Order #%d created on table %d by %s %d (total=%d, change=%d)",
		event.Order.ID, event.Order.TableNumber, actor.Role, actor.ID,
		event.Order.TotalAmount, event.Change)

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":            event.Order,
		"change":           event.Change,
		"change_formatted": utils.FormatCurrencyIDR(event.Change),
	})
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order id tidak valid"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// advance menjalankan satu transisi status lewat state machine lalu
// menyalurkan notifikasinya
func (oc *OrderController) advance(c *gin.Context, target models.OrderStatus, message string) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("identitas staff tidak ditemukan"))
		return
	}

	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order id tidak valid"))
		return
	}

	event, err := oc.Lifecycle.Advance(uint(id), target, actor)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	oc.Notifier.Dispatch(*event)

	utils.InfoLogger.Printf("Order #%d: %s -> %s by %s %d",
		event.Order.ID, event.PrevStatus, event.NewStatus, actor.Role, actor.ID)

	utils.RespondJSON(c, http.StatusOK, message, event.Order)
}

// StartPrep -> order paid mulai disiapkan dapur
func (oc *OrderController) StartPrep(c *gin.Context) {
	oc.advance(c, models.StatusInProgress, "Order in progress")
}

// MarkReady -> masakan selesai, siap diantar
func (oc *OrderController) MarkReady(c *gin.Context) {
	oc.advance(c, models.StatusReady, "Order is ready")
}

// ServeOrder -> order sudah diantar ke meja
func (oc *OrderController) ServeOrder(c *gin.Context) {
	oc.advance(c, models.StatusServed, "Order served")
}

// CancelOrder -> batalkan order dari status non-terminal mana pun
func (oc *OrderController) CancelOrder(c *gin.Context) {
	oc.advance(c, models.StatusCancelled, "Order cancelled")
}

// UpdateOrderStatus -> endpoint generik PATCH status, target di body
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.advance(c, req.Status, "Order status updated")
}

// GetKitchenDisplay -> overview order aktif untuk layar dapur/FOH
func (oc *OrderController) GetKitchenDisplay(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").
		Preload("OrderItems.Menu").
		Where("status IN ?", models.ActiveStatuses()).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}
